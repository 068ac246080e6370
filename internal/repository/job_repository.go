package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/response"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

type JobFilter struct {
	EntityID uint
	Status   string
	Page     int
	PageSize int
}

// JobMatch is a job ranked by embedding distance to a query.
type JobMatch struct {
	ID              uint
	EntityID        uint
	ReferenceNumber string
	Title           string
	Description     string
	CutoffGrade     *float64
	Status          string
	CreatedAt       time.Time
	Distance        float64
}

func (r *JobRepository) SearchJobs(ctx context.Context, embedding pgvector.Vector, topK int) ([]JobMatch, error) {
	var jobs []JobMatch

	// pgvector <-> is euclidean distance
	err := r.db.WithContext(ctx).Raw(`
        SELECT id, entity_id, reference_number, title, description, cutoff_grade, status, created_at,
            embedding <-> ? AS distance
        FROM jobs
        WHERE embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, embedding, topK).Scan(&jobs).Error

	return jobs, err
}

func (r *JobRepository) CreateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *JobRepository) UpdateJob(ctx context.Context, job *model.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

func (r *JobRepository) UpdateEmbedding(ctx context.Context, jobID uint, embedding pgvector.Vector) error {
	return r.db.WithContext(ctx).Model(&model.Job{}).Where("id = ?", jobID).Update("embedding", embedding).Error
}

func (r *JobRepository) FindJobByID(ctx context.Context, id uint) (*model.Job, error) {
	var j model.Job
	err := r.db.WithContext(ctx).First(&j, id).Error
	return &j, err
}

// GetJobs lists jobs newest first, filtered and paginated.
func (r *JobRepository) GetJobs(ctx context.Context, filter JobFilter) ([]model.Job, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Job{})
	if filter.EntityID != 0 {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page, pageSize := response.NormalizePage(filter.Page, filter.PageSize)
	var jobs []model.Job
	err := q.Order("created_at DESC, id DESC").
		Offset(response.Offset(page, pageSize)).
		Limit(pageSize).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepository) ReferenceTaken(ctx context.Context, ref string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Job{}).Where("reference_number = ?", ref).Count(&n).Error
	return n > 0, err
}

// CountCriteria returns the number of min-qualification and formal criteria of a job.
func (r *JobRepository) CountCriteria(ctx context.Context, jobID uint) (minCount int64, formalCount int64, err error) {
	db := r.db.WithContext(ctx)
	if err = db.Model(&model.MinQualificationCriterion{}).Where("job_id = ?", jobID).Count(&minCount).Error; err != nil {
		return 0, 0, err
	}
	err = db.Model(&model.FormalAssessmentCriterion{}).Where("job_id = ?", jobID).Count(&formalCount).Error
	return minCount, formalCount, err
}

// DeleteJob removes the job together with its criteria.
func (r *JobRepository) DeleteJob(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&model.MinQualificationCriterion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&model.FormalAssessmentCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Job{}, id).Error
	})
}
