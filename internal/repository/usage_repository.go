package repository

import (
	"context"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"gorm.io/gorm"
)

type UsageRepository struct {
	db *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{db}
}

func (r *UsageRepository) Create(ctx context.Context, record *model.UsageRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// UsageTotals is the raw aggregate over usage rows.
type UsageTotals struct {
	Count        int64
	SuccessCount int64
	TotalTokens  int64
	TotalCost    float64
}

// Totals aggregates usage rows, optionally for one job. jobID of 0 means all jobs.
func (r *UsageRepository) Totals(ctx context.Context, jobID uint) (UsageTotals, error) {
	var totals UsageTotals
	q := r.db.WithContext(ctx).Model(&model.UsageRecord{})
	if jobID != 0 {
		q = q.Where("job_id = ?", jobID)
	}
	err := q.Select(`COUNT(*) AS count,
		COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0) AS success_count,
		COALESCE(SUM(total_tokens), 0) AS total_tokens,
		COALESCE(SUM(estimated_cost), 0) AS total_cost`).
		Scan(&totals).Error
	return totals, err
}

func (r *UsageRepository) ListByRun(ctx context.Context, runID string) ([]model.UsageRecord, error) {
	var rows []model.UsageRecord
	err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("id ASC").Find(&rows).Error
	return rows, err
}
