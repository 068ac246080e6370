package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/response"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 50
)

// JobUsecase manages jobs. The embedder and cache are optional.
type JobUsecase struct {
	jobs     *repository.JobRepository
	entities *repository.EntityRepository
	criteria *repository.CriteriaRepository
	embedder service.Embedder
	cache    *repository.JobCache
	log      *zap.Logger
}

func NewJobUsecase(
	jobs *repository.JobRepository,
	entities *repository.EntityRepository,
	criteria *repository.CriteriaRepository,
	embedder service.Embedder,
	cache *repository.JobCache,
	log *zap.Logger,
) *JobUsecase {
	return &JobUsecase{
		jobs:     jobs,
		entities: entities,
		criteria: criteria,
		embedder: embedder,
		cache:    cache,
		log:      logger.OrNop(log),
	}
}

func (uc *JobUsecase) find(ctx context.Context, id uint) (*model.Job, error) {
	job, err := uc.jobs.FindJobByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, newError(ErrJobNotFound, "Job not found")
	}
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (uc *JobUsecase) toDTO(ctx context.Context, job *model.Job) (dto.JobDTO, error) {
	minCount, formalCount, err := uc.jobs.CountCriteria(ctx, job.ID)
	if err != nil {
		return dto.JobDTO{}, err
	}
	return dto.NewJobDTO(job, minCount, formalCount), nil
}

// List returns one page of jobs, newest first.
func (uc *JobUsecase) List(ctx context.Context, filter repository.JobFilter) ([]dto.JobDTO, *response.Pagination, error) {
	if filter.Status != "" && !model.ValidJobStatus(filter.Status) {
		return nil, nil, newError(ErrValidation, "status must be one of draft, active, closed")
	}
	jobs, total, err := uc.jobs.GetJobs(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	out := make([]dto.JobDTO, 0, len(jobs))
	for i := range jobs {
		d, err := uc.toDTO(ctx, &jobs[i])
		if err != nil {
			return nil, nil, err
		}
		out = append(out, d)
	}
	return out, response.NewPagination(filter.Page, filter.PageSize, total, len(out)), nil
}

func (uc *JobUsecase) Get(ctx context.Context, id uint) (*dto.JobDTO, error) {
	job, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := uc.toDTO(ctx, job)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (uc *JobUsecase) Create(ctx context.Context, req dto.CreateJobRequest) (*dto.JobDTO, error) {
	ref := strings.TrimSpace(req.ReferenceNumber)
	title := strings.TrimSpace(req.Title)
	if req.EntityID == 0 || ref == "" || title == "" || strings.TrimSpace(req.Description) == "" {
		return nil, newError(ErrValidation, "Missing required fields: entity_id, reference_number, title, description")
	}
	status := req.Status
	if status == "" {
		status = model.JobStatusDraft
	}
	if !model.ValidJobStatus(status) {
		return nil, newError(ErrValidation, "status must be one of draft, active, closed")
	}
	if err := validateCutoff(req.CutoffGrade); err != nil {
		return nil, err
	}

	if _, err := uc.entities.FindByID(ctx, req.EntityID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(ErrNotFound, "Entity not found")
		}
		return nil, err
	}
	taken, err := uc.jobs.ReferenceTaken(ctx, ref)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, newError(ErrConflict, "Job with reference number %q already exists", ref)
	}

	job := &model.Job{
		EntityID:        req.EntityID,
		ReferenceNumber: ref,
		Title:           title,
		Description:     req.Description,
		CutoffGrade:     req.CutoffGrade,
		Status:          status,
	}
	if err := uc.jobs.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	uc.embed(ctx, job)

	d := dto.NewJobDTO(job, 0, 0)
	return &d, nil
}

func (uc *JobUsecase) Update(ctx context.Context, id uint, req dto.UpdateJobRequest) (*dto.JobDTO, error) {
	job, err := uc.find(ctx, id)
	if err != nil {
		return nil, err
	}

	reembed := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, newError(ErrValidation, "title cannot be empty")
		}
		reembed = reembed || title != job.Title
		job.Title = title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return nil, newError(ErrValidation, "description cannot be empty")
		}
		reembed = reembed || *req.Description != job.Description
		job.Description = *req.Description
	}
	if req.CutoffGrade != nil {
		if err := validateCutoff(req.CutoffGrade); err != nil {
			return nil, err
		}
		job.CutoffGrade = req.CutoffGrade
	}
	if req.Status != nil {
		if !model.ValidJobStatus(*req.Status) {
			return nil, newError(ErrValidation, "status must be one of draft, active, closed")
		}
		job.Status = *req.Status
	}

	if err := uc.jobs.UpdateJob(ctx, job); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, job.ID)
	if reembed {
		uc.embed(ctx, job)
	}
	return uc.Get(ctx, job.ID)
}

// Delete removes the job and all of its criteria.
func (uc *JobUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := uc.find(ctx, id); err != nil {
		return err
	}
	if err := uc.jobs.DeleteJob(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx, id)
	return nil
}

// Criteria returns both rubrics of a job ordered by order_index.
func (uc *JobUsecase) Criteria(ctx context.Context, id uint) (*dto.JobCriteriaResponse, error) {
	if _, err := uc.find(ctx, id); err != nil {
		return nil, err
	}
	minCriteria, err := uc.criteria.ListMinQualification(ctx, id)
	if err != nil {
		return nil, err
	}
	formalCriteria, err := uc.criteria.ListFormal(ctx, id)
	if err != nil {
		return nil, err
	}
	if minCriteria == nil {
		minCriteria = []model.MinQualificationCriterion{}
	}
	if formalCriteria == nil {
		formalCriteria = []model.FormalAssessmentCriterion{}
	}
	return &dto.JobCriteriaResponse{
		JobID:                    id,
		MinQualificationCriteria: minCriteria,
		FormalAssessmentCriteria: formalCriteria,
	}, nil
}

// Search ranks embedded jobs by vector distance to the query text.
func (uc *JobUsecase) Search(ctx context.Context, query string, limit int) ([]dto.JobSearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, newError(ErrValidation, "query parameter q is required")
	}
	if uc.embedder == nil {
		return nil, newError(ErrEmbeddingUnavailable, "Embedding service is not configured")
	}
	if limit < 1 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	vec, err := uc.embedder.Embed(ctx, query)
	if err != nil {
		return nil, newError(ErrEmbeddingUnavailable, "Failed to embed query: %v", err)
	}
	matches, err := uc.jobs.SearchJobs(ctx, pgvector.NewVector(vec), limit)
	if err != nil {
		return nil, err
	}

	out := make([]dto.JobSearchResult, 0, len(matches))
	for _, m := range matches {
		job := &model.Job{
			ID:              m.ID,
			EntityID:        m.EntityID,
			ReferenceNumber: m.ReferenceNumber,
			Title:           m.Title,
			Description:     m.Description,
			CutoffGrade:     m.CutoffGrade,
			Status:          m.Status,
			CreatedAt:       m.CreatedAt,
		}
		d, err := uc.toDTO(ctx, job)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.JobSearchResult{JobDTO: d, Distance: m.Distance})
	}
	return out, nil
}

// embed stores the job's description vector. Failures only log; the job is already saved.
func (uc *JobUsecase) embed(ctx context.Context, job *model.Job) {
	if uc.embedder == nil {
		return
	}
	vec, err := uc.embedder.Embed(ctx, job.Title+"\n\n"+job.Description)
	if err != nil {
		uc.log.Warn("failed to embed job", zap.Uint(logger.FieldJobID, job.ID), zap.Error(err))
		return
	}
	if err := uc.jobs.UpdateEmbedding(ctx, job.ID, pgvector.NewVector(vec)); err != nil {
		uc.log.Warn("failed to store job embedding", zap.Uint(logger.FieldJobID, job.ID), zap.Error(err))
	}
}

func (uc *JobUsecase) invalidate(ctx context.Context, jobID uint) {
	invalidateJob(ctx, uc.cache, uc.log, jobID)
}

func invalidateJob(ctx context.Context, cache *repository.JobCache, log *zap.Logger, jobID uint) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, jobID); err != nil {
		log.Warn("failed to invalidate job cache", zap.Uint(logger.FieldJobID, jobID), zap.Error(err))
	}
}

func validateCutoff(cutoff *float64) error {
	if cutoff != nil && (*cutoff < 0 || *cutoff > 100) {
		return newError(ErrValidation, "cutoff_grade must be between 0 and 100")
	}
	return nil
}
