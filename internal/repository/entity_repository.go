package repository

import (
	"context"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"gorm.io/gorm"
)

type EntityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *EntityRepository {
	return &EntityRepository{db}
}

func (r *EntityRepository) Create(ctx context.Context, entity *model.Entity) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *EntityRepository) Update(ctx context.Context, entity *model.Entity) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

func (r *EntityRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Entity{}, id).Error
}

func (r *EntityRepository) FindByID(ctx context.Context, id uint) (*model.Entity, error) {
	var e model.Entity
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

// List returns every entity, newest first.
func (r *EntityRepository) List(ctx context.Context) ([]model.Entity, error) {
	var entities []model.Entity
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&entities).Error
	return entities, err
}

// NameTaken reports whether another entity already uses name. excludeID of 0 checks all entities.
func (r *EntityRepository) NameTaken(ctx context.Context, name string, excludeID uint) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.Entity{}).Where("name = ?", name)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&n).Error
	return n > 0, err
}

func (r *EntityRepository) CountJobs(ctx context.Context, entityID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).Where("entity_id = ?", entityID).Count(&n).Error
	return n, err
}
