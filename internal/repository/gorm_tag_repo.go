package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// GormGlobalTagRepository implements GlobalTagRepository on gorm/Postgres.
type GormGlobalTagRepository struct {
	db *gorm.DB
}

func NewGormGlobalTagRepository(db *gorm.DB) *GormGlobalTagRepository {
	return &GormGlobalTagRepository{db: db}
}

func (r *GormGlobalTagRepository) Create(ctx context.Context, tag *model.GlobalTag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *GormGlobalTagRepository) GetByID(ctx context.Context, id uint) (*model.GlobalTag, error) {
	var tag model.GlobalTag
	err := r.db.WithContext(ctx).First(&tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("global tag %d: %w", id, model.ErrNotFound)
		}
		return nil, err
	}
	return &tag, nil
}

func (r *GormGlobalTagRepository) Update(ctx context.Context, tag *model.GlobalTag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

func (r *GormGlobalTagRepository) List(ctx context.Context) ([]model.GlobalTag, error) {
	var tags []model.GlobalTag
	err := r.db.WithContext(ctx).Order("id").Find(&tags).Error
	return tags, err
}

func (r *GormGlobalTagRepository) ListActive(ctx context.Context) ([]model.GlobalTag, error) {
	var tags []model.GlobalTag
	err := r.db.WithContext(ctx).
		Where("status = ?", model.TagStatusActive).
		Order("id").
		Find(&tags).Error
	return tags, err
}

func (r *GormGlobalTagRepository) FindActiveByName(ctx context.Context, name string) (*model.GlobalTag, error) {
	var tag model.GlobalTag
	err := r.db.WithContext(ctx).
		Where("name = ? AND status <> ?", name, model.TagStatusArchived).
		First(&tag).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("global tag %q: %w", name, model.ErrNotFound)
		}
		return nil, err
	}
	return &tag, nil
}

// GormTenantTagRepository implements TenantTagRepository on gorm/Postgres.
type GormTenantTagRepository struct {
	db *gorm.DB
}

func NewGormTenantTagRepository(db *gorm.DB) *GormTenantTagRepository {
	return &GormTenantTagRepository{db: db}
}

func (r *GormTenantTagRepository) ListNames(ctx context.Context, tenantID uint) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).
		Model(&model.TenantTag{}).
		Where("tenant_id = ?", tenantID).
		Order("name").
		Pluck("name", &names).Error
	return names, err
}

// InsertMissing bulk-inserts tag copies, skipping names the tenant already
// holds via the (tenant_id, name) unique index. The returned count reflects
// rows actually written, which keeps concurrent synchronizations additive.
func (r *GormTenantTagRepository) InsertMissing(ctx context.Context, tenantID uint, names []string) (int, error) {
	if len(names) == 0 {
		return 0, nil
	}

	tags := make([]model.TenantTag, 0, len(names))
	for _, name := range names {
		tags = append(tags, model.TenantTag{TenantID: tenantID, Name: name})
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&tags)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
