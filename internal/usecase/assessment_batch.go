package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	MaxMinQualificationBatch = 10
	MaxFormalBatch           = 5
)

type batchCandidate struct {
	id      string
	profile map[string]any
	err     error
}

func parseBatch(req dto.BatchAssessRequest, limit int) (uint, []batchCandidate, error) {
	if req.JobID == nil {
		return 0, nil, newError(ErrValidation, "Missing required field: job_id")
	}
	if len(req.Candidates) == 0 {
		return 0, nil, newError(ErrValidation, "candidates must be a non-empty array")
	}
	if len(req.Candidates) > limit {
		return 0, nil, newError(ErrValidation, "Batch size cannot exceed %d candidates", limit)
	}

	candidates := make([]batchCandidate, len(req.Candidates))
	for i, raw := range req.Candidates {
		candidates[i] = parseBatchCandidate(raw, i)
	}
	return uint(*req.JobID), candidates, nil
}

func parseBatchCandidate(raw json.RawMessage, index int) batchCandidate {
	c := batchCandidate{id: fmt.Sprintf("candidate_%d", index)}
	item := gjson.ParseBytes(raw)
	if !gjson.ValidBytes(raw) || !item.IsObject() {
		c.err = newError(ErrValidation, "candidate must be an object")
		return c
	}
	if id := strings.TrimSpace(item.Get("candidate_id").String()); id != "" {
		c.id = id
	}
	data := item.Get("candidate_data")
	if !data.Exists() {
		c.err = newError(ErrValidation, "candidate_data must be a non-empty object")
		return c
	}
	c.profile, c.err = parseProfile(json.RawMessage(data.Raw))
	return c
}

// BatchMinQualification assesses up to MaxMinQualificationBatch candidates one after another.
// A failing candidate is reported in its slot and does not stop the batch.
func (uc *AssessmentUsecase) BatchMinQualification(ctx context.Context, req dto.BatchAssessRequest) (*dto.MinQualificationBatchResponse, error) {
	jobID, candidates, err := parseBatch(req, MaxMinQualificationBatch)
	if err != nil {
		return nil, err
	}

	resp := &dto.MinQualificationBatchResponse{
		Success: true,
		JobID:   jobID,
		Results: make([]dto.BatchItem[dto.MinQualificationReport], 0, len(candidates)),
	}
	resp.Summary.TotalCandidates = len(candidates)

	for i, c := range candidates {
		item := dto.BatchItem[dto.MinQualificationReport]{CandidateIndex: i, CandidateID: c.id}
		report, err := uc.batchMinQualification(ctx, jobID, c)
		if err != nil {
			uc.logBatchFailure(model.AssessmentMinQualification, jobID, c.id, err)
			item.Error = err.Error()
			resp.Summary.ProcessingErrors++
		} else {
			item.Success = true
			item.Report = report
			resp.Summary.SuccessfulAssessments++
			if report.OverallResult == model.ResultPass {
				resp.Summary.PassedCandidates++
			} else {
				resp.Summary.FailedCandidates++
			}
		}
		resp.Results = append(resp.Results, item)
	}
	return resp, nil
}

func (uc *AssessmentUsecase) batchMinQualification(ctx context.Context, jobID uint, c batchCandidate) (*dto.MinQualificationReport, error) {
	if c.err != nil {
		return nil, c.err
	}
	return uc.runMinQualification(ctx, jobID, c.id, c.profile)
}

// BatchFormal scores up to MaxFormalBatch candidates and summarizes the grade spread.
func (uc *AssessmentUsecase) BatchFormal(ctx context.Context, req dto.BatchAssessRequest) (*dto.FormalBatchResponse, error) {
	jobID, candidates, err := parseBatch(req, MaxFormalBatch)
	if err != nil {
		return nil, err
	}

	resp := &dto.FormalBatchResponse{
		Success: true,
		JobID:   jobID,
		Results: make([]dto.BatchItem[dto.FormalReport], 0, len(candidates)),
	}
	resp.Summary.TotalCandidates = len(candidates)
	resp.Summary.GradeDistribution = map[string]int{"A": 0, "B": 0, "C": 0, "D": 0, "F": 0}

	var sum float64
	lowest, highest := math.Inf(1), math.Inf(-1)

	for i, c := range candidates {
		item := dto.BatchItem[dto.FormalReport]{CandidateIndex: i, CandidateID: c.id}
		report, err := uc.batchFormal(ctx, jobID, c)
		if err != nil {
			uc.logBatchFailure(model.AssessmentFormal, jobID, c.id, err)
			item.Error = err.Error()
			resp.Summary.ProcessingErrors++
		} else {
			item.Success = true
			item.Report = report
			resp.Summary.SuccessfulAssessments++
			resp.Summary.GradeDistribution[report.OverallScore.Grade]++

			pct := report.OverallScore.Percentage
			sum += pct
			lowest = math.Min(lowest, pct)
			highest = math.Max(highest, pct)
		}
		resp.Results = append(resp.Results, item)
	}

	if n := resp.Summary.SuccessfulAssessments; n > 0 {
		resp.Summary.ScoreStatistics = dto.ScoreStatistics{
			Average: round(sum/float64(n), 2),
			Maximum: highest,
			Minimum: lowest,
		}
	}
	return resp, nil
}

func (uc *AssessmentUsecase) batchFormal(ctx context.Context, jobID uint, c batchCandidate) (*dto.FormalReport, error) {
	if c.err != nil {
		return nil, c.err
	}
	return uc.runFormal(ctx, jobID, c.id, c.profile)
}

func (uc *AssessmentUsecase) logBatchFailure(assessmentType string, jobID uint, candidateID string, err error) {
	uc.log.Warn("batch candidate failed",
		zap.String(logger.FieldAssessmentType, assessmentType),
		zap.Uint(logger.FieldJobID, jobID),
		zap.String(logger.FieldCandidateID, candidateID),
		zap.Error(err),
	)
}

// PreviewMinQualification lists the criteria a minimum qualification run would evaluate.
func (uc *AssessmentUsecase) PreviewMinQualification(ctx context.Context, req dto.PreviewRequest) (*dto.PreviewResponse, error) {
	job, criteria, err := uc.preview(ctx, req)
	if err != nil {
		return nil, err
	}
	return &dto.PreviewResponse{
		Success:        true,
		AssessmentType: model.AssessmentMinQualification,
		JobData:        previewJob(job),
		CriteriaCount:  len(criteria.MinQualification),
		Criteria:       nonNil(criteria.MinQualification),
	}, nil
}

// PreviewFormal lists the formal rubric together with its scoring totals.
func (uc *AssessmentUsecase) PreviewFormal(ctx context.Context, req dto.PreviewRequest) (*dto.PreviewResponse, error) {
	job, criteria, err := uc.preview(ctx, req)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, c := range criteria.FormalAssessment {
		total += c.MaxScore
	}
	summary := &dto.ScoringSummary{TotalMaxScore: round(total, 2)}
	if n := len(criteria.FormalAssessment); n > 0 {
		summary.AverageMaxScore = round(total/float64(n), 2)
	}

	return &dto.PreviewResponse{
		Success:        true,
		AssessmentType: model.AssessmentFormal,
		JobData:        previewJob(job),
		CriteriaCount:  len(criteria.FormalAssessment),
		Criteria:       nonNil(criteria.FormalAssessment),
		ScoringSummary: summary,
	}, nil
}

func (uc *AssessmentUsecase) preview(ctx context.Context, req dto.PreviewRequest) (*model.Job, *model.JobCriteria, error) {
	if req.JobID == nil {
		return nil, nil, newError(ErrValidation, "Missing required field: job_id")
	}
	jobID := uint(*req.JobID)
	job, err := uc.fetchJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	criteria, err := uc.fetchCriteria(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	return job, criteria, nil
}

func previewJob(job *model.Job) dto.PreviewJob {
	return dto.PreviewJob{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		CutoffGrade: job.CutoffGrade,
	}
}

func nonNil(c []model.Criterion) []model.Criterion {
	if c == nil {
		return []model.Criterion{}
	}
	return c
}

