package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultMaxScore = 10.0
	DefaultWeight   = 1.0
)

type CriteriaUsecase struct {
	criteria *repository.CriteriaRepository
	jobs     *repository.JobRepository
	cache    *repository.JobCache
	log      *zap.Logger
}

func NewCriteriaUsecase(criteria *repository.CriteriaRepository, jobs *repository.JobRepository, cache *repository.JobCache, log *zap.Logger) *CriteriaUsecase {
	return &CriteriaUsecase{criteria: criteria, jobs: jobs, cache: cache, log: logger.OrNop(log)}
}

func (uc *CriteriaUsecase) requireJob(ctx context.Context, jobID uint) error {
	if jobID == 0 {
		return newError(ErrValidation, "job_id is required")
	}
	_, err := uc.jobs.FindJobByID(ctx, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrJobNotFound, "Job not found")
	}
	return err
}

func requireRule(area, criteria string) error {
	if strings.TrimSpace(area) == "" || strings.TrimSpace(criteria) == "" {
		return newError(ErrValidation, "Missing required fields: area, criteria")
	}
	return nil
}

func validateScoring(maxScore, weight *float64) error {
	if maxScore != nil && *maxScore <= 0 {
		return newError(ErrValidation, "max_score must be greater than 0")
	}
	if weight != nil && *weight < 0 {
		return newError(ErrValidation, "weight cannot be negative")
	}
	return nil
}

func (uc *CriteriaUsecase) CreateMinQualification(ctx context.Context, req dto.CreateMinQualificationCriterionRequest) (*model.MinQualificationCriterion, error) {
	if err := requireRule(req.Area, req.Criteria); err != nil {
		return nil, err
	}
	if err := uc.requireJob(ctx, req.JobID); err != nil {
		return nil, err
	}

	c := &model.MinQualificationCriterion{
		JobID:       req.JobID,
		Area:        strings.TrimSpace(req.Area),
		Criteria:    req.Criteria,
		Explanation: req.Explanation,
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	} else {
		next, err := uc.criteria.NextMinQualificationOrder(ctx, req.JobID)
		if err != nil {
			return nil, err
		}
		c.OrderIndex = next
	}

	if err := uc.criteria.CreateMinQualification(ctx, c); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return c, nil
}

func (uc *CriteriaUsecase) UpdateMinQualification(ctx context.Context, id uint, req dto.UpdateMinQualificationCriterionRequest) (*model.MinQualificationCriterion, error) {
	c, err := uc.criteria.FindMinQualification(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Criterion not found")
	}
	if err != nil {
		return nil, err
	}

	if req.Area != nil {
		if strings.TrimSpace(*req.Area) == "" {
			return nil, newError(ErrValidation, "area cannot be empty")
		}
		c.Area = strings.TrimSpace(*req.Area)
	}
	if req.Criteria != nil {
		if strings.TrimSpace(*req.Criteria) == "" {
			return nil, newError(ErrValidation, "criteria cannot be empty")
		}
		c.Criteria = *req.Criteria
	}
	if req.Explanation != nil {
		c.Explanation = req.Explanation
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}

	if err := uc.criteria.SaveMinQualification(ctx, c); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return c, nil
}

func (uc *CriteriaUsecase) DeleteMinQualification(ctx context.Context, id uint) error {
	c, err := uc.criteria.FindMinQualification(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, "Criterion not found")
	}
	if err != nil {
		return err
	}
	if err := uc.criteria.DeleteMinQualification(ctx, id); err != nil {
		return err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return nil
}

// BulkCreateMinQualification inserts every criterion or none of them.
func (uc *CriteriaUsecase) BulkCreateMinQualification(ctx context.Context, req dto.BulkMinQualificationRequest) ([]model.MinQualificationCriterion, error) {
	if len(req.CriteriaList) == 0 {
		return nil, newError(ErrValidation, "criteria_list must be a non-empty array")
	}
	for i, item := range req.CriteriaList {
		if err := requireRule(item.Area, item.Criteria); err != nil {
			return nil, newError(ErrValidation, "criteria_list[%d]: %s", i, err.Error())
		}
	}
	if err := uc.requireJob(ctx, req.JobID); err != nil {
		return nil, err
	}

	rows := make([]model.MinQualificationCriterion, len(req.CriteriaList))
	for i, item := range req.CriteriaList {
		rows[i] = model.MinQualificationCriterion{
			JobID:       req.JobID,
			Area:        strings.TrimSpace(item.Area),
			Criteria:    item.Criteria,
			Explanation: item.Explanation,
			OrderIndex:  i + 1,
		}
		if item.OrderIndex != nil {
			rows[i].OrderIndex = *item.OrderIndex
		}
	}

	if err := uc.criteria.BulkCreateMinQualification(ctx, rows); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, req.JobID)
	return rows, nil
}

func (uc *CriteriaUsecase) CreateFormal(ctx context.Context, req dto.CreateFormalCriterionRequest) (*model.FormalAssessmentCriterion, error) {
	if err := requireRule(req.Area, req.Criteria); err != nil {
		return nil, err
	}
	if err := validateScoring(req.MaxScore, req.Weight); err != nil {
		return nil, err
	}
	if err := uc.requireJob(ctx, req.JobID); err != nil {
		return nil, err
	}

	c := newFormalCriterion(req.JobID, req)
	if req.OrderIndex == nil {
		next, err := uc.criteria.NextFormalOrder(ctx, req.JobID)
		if err != nil {
			return nil, err
		}
		c.OrderIndex = next
	}

	if err := uc.criteria.CreateFormal(ctx, &c); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return &c, nil
}

func newFormalCriterion(jobID uint, req dto.CreateFormalCriterionRequest) model.FormalAssessmentCriterion {
	c := model.FormalAssessmentCriterion{
		JobID:       jobID,
		Area:        strings.TrimSpace(req.Area),
		Criteria:    req.Criteria,
		Explanation: req.Explanation,
		MaxScore:    DefaultMaxScore,
		Weight:      DefaultWeight,
	}
	if req.MaxScore != nil {
		c.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		c.Weight = *req.Weight
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}
	return c
}

func (uc *CriteriaUsecase) UpdateFormal(ctx context.Context, id uint, req dto.UpdateFormalCriterionRequest) (*model.FormalAssessmentCriterion, error) {
	c, err := uc.criteria.FindFormal(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrNotFound, "Criterion not found")
	}
	if err != nil {
		return nil, err
	}
	if err := validateScoring(req.MaxScore, req.Weight); err != nil {
		return nil, err
	}

	if req.Area != nil {
		if strings.TrimSpace(*req.Area) == "" {
			return nil, newError(ErrValidation, "area cannot be empty")
		}
		c.Area = strings.TrimSpace(*req.Area)
	}
	if req.Criteria != nil {
		if strings.TrimSpace(*req.Criteria) == "" {
			return nil, newError(ErrValidation, "criteria cannot be empty")
		}
		c.Criteria = *req.Criteria
	}
	if req.Explanation != nil {
		c.Explanation = req.Explanation
	}
	if req.MaxScore != nil {
		c.MaxScore = *req.MaxScore
	}
	if req.Weight != nil {
		c.Weight = *req.Weight
	}
	if req.OrderIndex != nil {
		c.OrderIndex = *req.OrderIndex
	}

	if err := uc.criteria.SaveFormal(ctx, c); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return c, nil
}

func (uc *CriteriaUsecase) DeleteFormal(ctx context.Context, id uint) error {
	c, err := uc.criteria.FindFormal(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newError(ErrNotFound, "Criterion not found")
	}
	if err != nil {
		return err
	}
	if err := uc.criteria.DeleteFormal(ctx, id); err != nil {
		return err
	}
	invalidateJob(ctx, uc.cache, uc.log, c.JobID)
	return nil
}

// BulkCreateFormal inserts every criterion or none of them.
func (uc *CriteriaUsecase) BulkCreateFormal(ctx context.Context, req dto.BulkFormalRequest) ([]model.FormalAssessmentCriterion, error) {
	if len(req.CriteriaList) == 0 {
		return nil, newError(ErrValidation, "criteria_list must be a non-empty array")
	}
	for i, item := range req.CriteriaList {
		if err := requireRule(item.Area, item.Criteria); err != nil {
			return nil, newError(ErrValidation, "criteria_list[%d]: %s", i, err.Error())
		}
		if err := validateScoring(item.MaxScore, item.Weight); err != nil {
			return nil, newError(ErrValidation, "criteria_list[%d]: %s", i, err.Error())
		}
	}
	if err := uc.requireJob(ctx, req.JobID); err != nil {
		return nil, err
	}

	rows := make([]model.FormalAssessmentCriterion, len(req.CriteriaList))
	for i, item := range req.CriteriaList {
		rows[i] = newFormalCriterion(req.JobID, item)
		if item.OrderIndex == nil {
			rows[i].OrderIndex = i + 1
		}
	}

	if err := uc.criteria.BulkCreateFormal(ctx, rows); err != nil {
		return nil, err
	}
	invalidateJob(ctx, uc.cache, uc.log, req.JobID)
	return rows, nil
}
