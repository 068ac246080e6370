package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"gorm.io/gorm"
)

var ErrUnitOfWorkDone = errors.New("unit of work already committed or rolled back")

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db}
}

// UnitOfWork collects the result rows of one assessment run in a single transaction.
// Nothing it writes is visible until Commit.
type UnitOfWork struct {
	tx   *gorm.DB
	done bool
}

func (r *ResultRepository) Begin(ctx context.Context) (*UnitOfWork, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &UnitOfWork{tx: tx}, nil
}

func (u *UnitOfWork) AddAreaResult(row *model.MinQualificationResult) error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	return u.tx.Create(row).Error
}

func (u *UnitOfWork) AddAreaScore(row *model.FormalAssessmentResult) error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	return u.tx.Create(row).Error
}

func (u *UnitOfWork) Commit() error {
	if u.done {
		return ErrUnitOfWorkDone
	}
	u.done = true
	return u.tx.Commit().Error
}

// Rollback discards pending rows. It is a no-op after Commit, so it is safe to defer.
func (u *UnitOfWork) Rollback() error {
	if u.done {
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}

func (r *ResultRepository) ListMinQualification(ctx context.Context, jobID uint, candidateID string) ([]model.MinQualificationResult, error) {
	var rows []model.MinQualificationResult
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ResultRepository) ListFormal(ctx context.Context, jobID uint, candidateID string) ([]model.FormalAssessmentResult, error) {
	var rows []model.FormalAssessmentResult
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}
