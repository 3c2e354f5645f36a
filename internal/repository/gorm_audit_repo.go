package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// GormAuditLogRepository implements AuditLogRepository on gorm/Postgres.
// Entries are append-only; no update or delete methods exist.
type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

func (r *GormAuditLogRepository) Append(ctx context.Context, entry *model.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Query returns entries newest-first. Ties on created_at are broken by the
// auto-increment id so pagination stays deterministic under concurrent
// writers.
func (r *GormAuditLogRepository) Query(ctx context.Context, filter model.AuditFilter) ([]model.AuditLog, error) {
	q := r.db.WithContext(ctx).Model(&model.AuditLog{})

	if filter.Action != "" {
		if filter.ActionPrefix {
			q = q.Where("action LIKE ?", escapeLike(filter.Action)+"%")
		} else {
			q = q.Where("action = ?", filter.Action)
		}
	}
	if filter.ActorUserID != nil {
		q = q.Where("actor_user_id = ?", *filter.ActorUserID)
	}
	if filter.From != nil {
		q = q.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("created_at < ?", *filter.To)
	}

	var logs []model.AuditLog
	err := q.Order("created_at DESC, id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&logs).Error
	return logs, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE metacharacters so an action prefix matches
// literally. Postgres uses backslash as the default LIKE escape character.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// GormMessageRepository implements MessageRepository on gorm/Postgres.
type GormMessageRepository struct {
	db *gorm.DB
}

func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error
	return count, err
}
