package repository

import (
	"context"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"gorm.io/gorm"
)

type CriteriaRepository struct {
	db *gorm.DB
}

func NewCriteriaRepository(db *gorm.DB) *CriteriaRepository {
	return &CriteriaRepository{db}
}

func (r *CriteriaRepository) ListMinQualification(ctx context.Context, jobID uint) ([]model.MinQualificationCriterion, error) {
	var rows []model.MinQualificationCriterion
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("order_index ASC, id ASC").Find(&rows).Error
	return rows, err
}

func (r *CriteriaRepository) ListFormal(ctx context.Context, jobID uint) ([]model.FormalAssessmentCriterion, error) {
	var rows []model.FormalAssessmentCriterion
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Order("order_index ASC, id ASC").Find(&rows).Error
	return rows, err
}

// NextMinQualificationOrder returns max(order_index)+1 for the job, 1 when it has none.
func (r *CriteriaRepository) NextMinQualificationOrder(ctx context.Context, jobID uint) (int, error) {
	return r.nextOrder(ctx, &model.MinQualificationCriterion{}, jobID)
}

func (r *CriteriaRepository) NextFormalOrder(ctx context.Context, jobID uint) (int, error) {
	return r.nextOrder(ctx, &model.FormalAssessmentCriterion{}, jobID)
}

func (r *CriteriaRepository) nextOrder(ctx context.Context, m any, jobID uint) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).Model(m).
		Where("job_id = ?", jobID).
		Select("COALESCE(MAX(order_index), 0)").
		Scan(&maxOrder).Error
	return maxOrder + 1, err
}

func (r *CriteriaRepository) CreateMinQualification(ctx context.Context, c *model.MinQualificationCriterion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CriteriaRepository) CreateFormal(ctx context.Context, c *model.FormalAssessmentCriterion) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// BulkCreateMinQualification inserts all rows or none.
func (r *CriteriaRepository) BulkCreateMinQualification(ctx context.Context, rows []model.MinQualificationCriterion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CriteriaRepository) BulkCreateFormal(ctx context.Context, rows []model.FormalAssessmentCriterion) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rows {
			if err := tx.Create(&rows[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *CriteriaRepository) FindMinQualification(ctx context.Context, id uint) (*model.MinQualificationCriterion, error) {
	var c model.MinQualificationCriterion
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *CriteriaRepository) FindFormal(ctx context.Context, id uint) (*model.FormalAssessmentCriterion, error) {
	var c model.FormalAssessmentCriterion
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *CriteriaRepository) SaveMinQualification(ctx context.Context, c *model.MinQualificationCriterion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CriteriaRepository) SaveFormal(ctx context.Context, c *model.FormalAssessmentCriterion) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CriteriaRepository) DeleteMinQualification(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.MinQualificationCriterion{}, id).Error
}

func (r *CriteriaRepository) DeleteFormal(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.FormalAssessmentCriterion{}, id).Error
}
