package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jigardalal/engageNinja-sub004/internal/model"
)

// GormMembershipRepository implements MembershipRepository on gorm/Postgres.
type GormMembershipRepository struct {
	db *gorm.DB
}

func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

func (r *GormMembershipRepository) ListByUser(ctx context.Context, userID uint) ([]model.Membership, error) {
	var memberships []model.Membership
	err := r.db.WithContext(ctx).
		Preload("Tenant").
		Where("user_id = ?", userID).
		Order("id").
		Find(&memberships).Error
	return memberships, err
}

// Upsert inserts the membership, treating a (user_id, tenant_id) conflict as
// success. Two concurrent calls for the same pair converge on a single row;
// neither caller sees an error.
func (r *GormMembershipRepository) Upsert(ctx context.Context, membership *model.Membership) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "tenant_id"}},
			DoNothing: true,
		}).
		Create(membership).Error
}

func (r *GormMembershipRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Membership{}).Count(&count).Error
	return count, err
}
