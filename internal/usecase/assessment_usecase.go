package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/prompt"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
)

// FailurePolicy decides what a criterion whose model call failed means for the run.
type FailurePolicy string

const (
	// PolicyFailClosed treats an unevaluable criterion as failed. For scored runs the
	// criterion still counts toward the maximum with zero points.
	PolicyFailClosed FailurePolicy = "fail_closed"
	// PolicySkip leaves an unevaluable criterion out of the result entirely.
	PolicySkip FailurePolicy = "skip"
)

const malformedReplyWarning = "model reply was not valid JSON"

type AssessmentUsecase struct {
	jobs        repository.JobStore
	results     *repository.ResultRepository
	ledger      *UsageLedger
	gateway     service.LanguageModelGateway
	concurrency int
	log         *zap.Logger

	minQualificationPolicy FailurePolicy
	formalPolicy           FailurePolicy
}

func NewAssessmentUsecase(
	jobs repository.JobStore,
	results *repository.ResultRepository,
	ledger *UsageLedger,
	gateway service.LanguageModelGateway,
	concurrency int,
	log *zap.Logger,
) *AssessmentUsecase {
	if concurrency < 1 {
		concurrency = 1
	}
	return &AssessmentUsecase{
		jobs:                   jobs,
		results:                results,
		ledger:                 ledger,
		gateway:                gateway,
		concurrency:            concurrency,
		log:                    logger.OrNop(log),
		minQualificationPolicy: PolicyFailClosed,
		formalPolicy:           PolicySkip,
	}
}

type run struct {
	id             uuid.UUID
	assessmentType string
	jobID          uint
	candidateID    string
	log            *zap.Logger
}

func (uc *AssessmentUsecase) newRun(assessmentType string, jobID uint, candidateID string) run {
	id := uuid.New()
	return run{
		id:             id,
		assessmentType: assessmentType,
		jobID:          jobID,
		candidateID:    candidateID,
		log:            uc.log.With(logger.RunFields(id.String(), assessmentType, jobID, candidateID)...),
	}
}

type outcome struct {
	criterion  model.Criterion
	completion *service.Completion
	err        error
}

// evaluate calls the gateway once per criterion. Results keep the criteria order
// whether the calls run sequentially or fan out.
func (uc *AssessmentUsecase) evaluate(ctx context.Context, r run, criteria []model.Criterion, systemPrompt string, render func(model.Criterion) string) []outcome {
	outcomes := make([]outcome, len(criteria))

	call := func(i int) {
		c := criteria[i]
		start := time.Now()
		completion, err := uc.gateway.Complete(ctx, render(c), systemPrompt)
		elapsed := time.Since(start)

		entry := UsageEntry{
			RunID:          r.id,
			JobID:          r.jobID,
			AssessmentType: r.assessmentType,
			CandidateID:    r.candidateID,
			Model:          uc.gateway.Model(),
			Success:        err == nil,
			Elapsed:        elapsed,
		}
		if err == nil {
			entry.Usage = completion.Usage
			entry.Model = completion.Model
		}
		uc.ledger.Log(context.WithoutCancel(ctx), entry)

		outcomes[i] = outcome{criterion: c, completion: completion, err: err}
	}

	if uc.concurrency <= 1 || len(criteria) <= 1 {
		for i := range criteria {
			call(i)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i := range criteria {
		g.Go(func() error {
			call(i)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// persist writes one run's rows in a single transaction. Any error or panic rolls it back.
func (uc *AssessmentUsecase) persist(ctx context.Context, write func(*repository.UnitOfWork) error) (err error) {
	uow, beginErr := uc.results.Begin(ctx)
	if beginErr != nil {
		return newError(ErrPersistence, "failed to start transaction: %v", beginErr)
	}
	defer func() {
		if p := recover(); p != nil {
			err = newError(ErrPersistence, "failed to save results: %v", p)
		}
		if err != nil {
			_ = uow.Rollback()
		}
	}()

	if werr := write(uow); werr != nil {
		return newError(ErrPersistence, "failed to save results: %v", werr)
	}
	if cerr := uow.Commit(); cerr != nil {
		return newError(ErrPersistence, "failed to commit results: %v", cerr)
	}
	return nil
}

func (uc *AssessmentUsecase) fetchJob(ctx context.Context, jobID uint) (*model.Job, error) {
	job, err := uc.jobs.GetJob(ctx, jobID)
	if errors.Is(err, ErrJobNotFound) {
		return nil, newError(ErrJobNotFound, "Job not found")
	}
	if err != nil {
		return nil, newError(ErrUpstreamFetch, "Failed to fetch job data: %v", err)
	}
	return job, nil
}

func (uc *AssessmentUsecase) fetchCriteria(ctx context.Context, jobID uint) (*model.JobCriteria, error) {
	criteria, err := uc.jobs.GetJobCriteria(ctx, jobID)
	if errors.Is(err, ErrJobNotFound) {
		return nil, newError(ErrJobNotFound, "Job not found")
	}
	if err != nil {
		return nil, newError(ErrUpstreamFetch, "Failed to fetch job criteria: %v", err)
	}
	return criteria, nil
}

// AssessMinQualification runs a pass/fail assessment of one candidate.
func (uc *AssessmentUsecase) AssessMinQualification(ctx context.Context, req dto.AssessRequest) (*dto.MinQualificationReport, error) {
	jobID, candidateID, profile, err := parseAssessRequest(req)
	if err != nil {
		return nil, err
	}
	return uc.runMinQualification(ctx, jobID, candidateID, profile)
}

func (uc *AssessmentUsecase) runMinQualification(ctx context.Context, jobID uint, candidateID string, profile map[string]any) (*dto.MinQualificationReport, error) {
	start := time.Now()

	criteria, err := uc.fetchCriteria(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(criteria.MinQualification) == 0 {
		return nil, newError(ErrNoCriteria, "No minimum qualification criteria found")
	}

	r := uc.newRun(model.AssessmentMinQualification, jobID, candidateID)
	outcomes := uc.evaluate(ctx, r, criteria.MinQualification, prompt.SystemMinQualification, func(c model.Criterion) string {
		return prompt.MinQualification(c, prompt.ExtractAreaData(profile, c.Area))
	})

	overallPass := true
	rows := make([]model.MinQualificationResult, 0, len(outcomes))
	warnings := make([]string, 0, len(outcomes))
	failed := make([]dto.FailedCriterion, 0)

	for _, o := range outcomes {
		c := o.criterion
		if o.err != nil {
			r.log.Warn("criterion not evaluated",
				zap.Uint(logger.FieldCriterionID, c.ID),
				zap.String(logger.FieldArea, c.Area),
				zap.String("policy", string(uc.minQualificationPolicy)),
				zap.Error(o.err),
			)
			failed = append(failed, dto.FailedCriterion{CriterionID: c.ID, Area: c.Area, Error: o.err.Error()})
			if uc.minQualificationPolicy == PolicyFailClosed {
				overallPass = false
			}
			continue
		}

		content := o.completion.Content
		result := normalizeResult(gjson.Get(content, "result").String())
		if result != model.ResultPass {
			overallPass = false
		}

		rows = append(rows, model.MinQualificationResult{
			RunID:         r.id,
			JobID:         jobID,
			CandidateID:   candidateID,
			CriteriaID:    c.ID,
			Area:          c.Area,
			Result:        result,
			Justification: gjson.Get(content, "justification").String(),
			EvidenceFound: gjson.Get(content, "evidence_found").String(),
			RawReply:      datatypes.JSON(content),
		})
		warnings = append(warnings, replyWarning(o.completion, prompt.ValidateMinQualificationReply))

		r.log.Info("criterion evaluated",
			zap.Uint(logger.FieldCriterionID, c.ID),
			zap.String(logger.FieldArea, c.Area),
			zap.String("result", result),
		)
	}

	err = uc.persist(ctx, func(uow *repository.UnitOfWork) error {
		for i := range rows {
			if err := uow.AddAreaResult(&rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to persist assessment", zap.Error(err))
		return nil, err
	}

	overall := model.ResultFail
	if overallPass {
		overall = model.ResultPass
	}

	areaResults := make([]dto.MinQualificationAreaResult, 0, len(rows))
	for i := range rows {
		areaResults = append(areaResults, dto.MinQualificationAreaResult{MinQualificationResult: rows[i], Warning: warnings[i]})
	}

	elapsed := time.Since(start)
	r.log.Info("minimum qualification assessment done",
		zap.String("overall_result", overall),
		zap.Int("evaluated", len(rows)),
		zap.Int("failed_calls", len(failed)),
		zap.Duration("elapsed", elapsed),
	)

	return &dto.MinQualificationReport{
		Success:          true,
		AssessmentType:   model.AssessmentMinQualification,
		RunID:            r.id.String(),
		JobID:            jobID,
		CandidateID:      candidateID,
		OverallResult:    overall,
		AreaResults:      areaResults,
		FailedCriteria:   failed,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}, nil
}

// AssessFormal scores one candidate against the job's formal assessment rubric.
func (uc *AssessmentUsecase) AssessFormal(ctx context.Context, req dto.AssessRequest) (*dto.FormalReport, error) {
	jobID, candidateID, profile, err := parseAssessRequest(req)
	if err != nil {
		return nil, err
	}
	return uc.runFormal(ctx, jobID, candidateID, profile)
}

func (uc *AssessmentUsecase) runFormal(ctx context.Context, jobID uint, candidateID string, profile map[string]any) (*dto.FormalReport, error) {
	start := time.Now()

	job, err := uc.fetchJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	criteria, err := uc.fetchCriteria(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if len(criteria.FormalAssessment) == 0 {
		return nil, newError(ErrNoCriteria, "No formal assessment criteria found")
	}

	r := uc.newRun(model.AssessmentFormal, jobID, candidateID)
	outcomes := uc.evaluate(ctx, r, criteria.FormalAssessment, prompt.SystemFormalAssessment, func(c model.Criterion) string {
		return prompt.Formal(c, prompt.ExtractAreaData(profile, c.Area), job)
	})

	var totalScore, totalMaxScore float64
	rows := make([]model.FormalAssessmentResult, 0, len(outcomes))
	warnings := make([]string, 0, len(outcomes))
	skipped := make([]dto.FailedCriterion, 0)

	for _, o := range outcomes {
		c := o.criterion
		if o.err != nil {
			r.log.Warn("criterion not scored",
				zap.Uint(logger.FieldCriterionID, c.ID),
				zap.String(logger.FieldArea, c.Area),
				zap.String("policy", string(uc.formalPolicy)),
				zap.Error(o.err),
			)
			skipped = append(skipped, dto.FailedCriterion{CriterionID: c.ID, Area: c.Area, Error: o.err.Error()})
			if uc.formalPolicy == PolicyFailClosed {
				totalMaxScore += c.MaxScore
			}
			continue
		}

		content := o.completion.Content
		rawScore := ClampScore(parseScore(gjson.Get(content, "raw_score")), c.MaxScore)
		percentage := Percentage(rawScore, c.MaxScore)

		rows = append(rows, model.FormalAssessmentResult{
			RunID:         r.id,
			JobID:         jobID,
			CandidateID:   candidateID,
			CriteriaID:    c.ID,
			Area:          c.Area,
			RawScore:      rawScore,
			MaxScore:      c.MaxScore,
			Percentage:    round(percentage, 2),
			Evidence:      gjson.Get(content, "evidence").String(),
			Justification: gjson.Get(content, "justification").String(),
			RawReply:      datatypes.JSON(content),
		})
		warnings = append(warnings, replyWarning(o.completion, prompt.ValidateFormalReply))

		totalScore += rawScore
		totalMaxScore += c.MaxScore

		r.log.Info("criterion scored",
			zap.Uint(logger.FieldCriterionID, c.ID),
			zap.String(logger.FieldArea, c.Area),
			zap.Float64("raw_score", rawScore),
			zap.Float64("max_score", c.MaxScore),
		)
	}

	err = uc.persist(ctx, func(uow *repository.UnitOfWork) error {
		for i := range rows {
			if err := uow.AddAreaScore(&rows[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		r.log.Error("failed to persist assessment", zap.Error(err))
		return nil, err
	}

	overall := dto.OverallScore{
		TotalScore:    round(totalScore, 2),
		TotalMaxScore: round(totalMaxScore, 2),
		Percentage:    round(Percentage(totalScore, totalMaxScore), 2),
	}
	// grade and cutoff both follow the reported percentage
	overall.Grade = Grade(overall.Percentage)
	if job.CutoffGrade != nil {
		meets := overall.Percentage >= *job.CutoffGrade
		overall.MeetsCutoff = &meets
	}

	areaResults := make([]dto.FormalAreaResult, 0, len(rows))
	for i := range rows {
		areaResults = append(areaResults, dto.FormalAreaResult{FormalAssessmentResult: rows[i], Warning: warnings[i]})
	}

	elapsed := time.Since(start)
	r.log.Info("formal assessment done",
		zap.Float64("percentage", overall.Percentage),
		zap.String("grade", overall.Grade),
		zap.Int("scored", len(rows)),
		zap.Int("skipped", len(skipped)),
		zap.Duration("elapsed", elapsed),
	)

	return &dto.FormalReport{
		Success:          true,
		AssessmentType:   model.AssessmentFormal,
		RunID:            r.id.String(),
		JobID:            jobID,
		CandidateID:      candidateID,
		OverallScore:     overall,
		AreaResults:      areaResults,
		SkippedCriteria:  skipped,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}, nil
}

func normalizeResult(s string) string {
	if strings.EqualFold(strings.TrimSpace(s), model.ResultPass) {
		return model.ResultPass
	}
	return model.ResultFail
}

// parseScore accepts a JSON number or a numeric string. Anything else scores 0.
func parseScore(v gjson.Result) float64 {
	var score float64
	switch v.Type {
	case gjson.Number:
		score = v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		score = f
	default:
		return 0
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	return score
}

func replyWarning(c *service.Completion, validate func(string) error) string {
	if c.Malformed {
		return malformedReplyWarning
	}
	if err := validate(c.Content); err != nil {
		return err.Error()
	}
	return ""
}

const missingAssessFields = "Missing required fields: job_id, candidate_id, candidate_data"

func parseAssessRequest(req dto.AssessRequest) (uint, string, map[string]any, error) {
	candidateID := strings.TrimSpace(req.CandidateID)
	if req.JobID == nil || candidateID == "" || len(req.CandidateData) == 0 {
		return 0, "", nil, newError(ErrValidation, missingAssessFields)
	}
	profile, err := parseProfile(req.CandidateData)
	if err != nil {
		return 0, "", nil, err
	}
	return uint(*req.JobID), candidateID, profile, nil
}

func parseProfile(raw json.RawMessage) (map[string]any, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, newError(ErrValidation, "candidate_data must be a non-empty object")
	}
	var profile map[string]any
	if err := json.Unmarshal(raw, &profile); err != nil || len(profile) == 0 {
		return nil, newError(ErrValidation, "candidate_data must be a non-empty object")
	}
	return profile, nil
}
