package repository

import (
	"context"
	"errors"

	"github.com/fadilmartias/ai-assessment/internal/model"
	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

// JobStore is the read-only view of jobs and their criteria used by assessments.
type JobStore interface {
	GetJob(ctx context.Context, jobID uint) (*model.Job, error)
	GetJobCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error)
}

// LocalJobStore reads jobs and criteria straight from the database.
type LocalJobStore struct {
	jobs     *JobRepository
	criteria *CriteriaRepository
}

func NewLocalJobStore(jobs *JobRepository, criteria *CriteriaRepository) *LocalJobStore {
	return &LocalJobStore{jobs: jobs, criteria: criteria}
}

func (s *LocalJobStore) GetJob(ctx context.Context, jobID uint) (*model.Job, error) {
	job, err := s.jobs.FindJobByID(ctx, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (s *LocalJobStore) GetJobCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error) {
	if _, err := s.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	minRows, err := s.criteria.ListMinQualification(ctx, jobID)
	if err != nil {
		return nil, err
	}
	formalRows, err := s.criteria.ListFormal(ctx, jobID)
	if err != nil {
		return nil, err
	}

	out := &model.JobCriteria{
		JobID:            jobID,
		MinQualification: make([]model.Criterion, 0, len(minRows)),
		FormalAssessment: make([]model.Criterion, 0, len(formalRows)),
	}
	for i := range minRows {
		out.MinQualification = append(out.MinQualification, minRows[i].Criterion())
	}
	for i := range formalRows {
		out.FormalAssessment = append(out.FormalAssessment, formalRows[i].Criterion())
	}
	return out, nil
}
