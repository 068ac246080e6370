package dto

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/model"
)

var ErrInvalidJobID = errors.New("job_id must be a valid integer")

// JobID accepts both 12 and "12" on the wire.
type JobID uint

func (j *JobID) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return ErrInvalidJobID
	}
	*j = JobID(n)
	return nil
}

type AssessRequest struct {
	JobID         *JobID          `json:"job_id"`
	CandidateID   string          `json:"candidate_id"`
	CandidateData json.RawMessage `json:"candidate_data"`
}

type BatchAssessRequest struct {
	JobID      *JobID            `json:"job_id"`
	Candidates []json.RawMessage `json:"candidates"`
}

type PreviewRequest struct {
	JobID *JobID `json:"job_id"`
}

type MinQualificationAreaResult struct {
	model.MinQualificationResult
	Warning string `json:"warning,omitempty"`
}

type FormalAreaResult struct {
	model.FormalAssessmentResult
	Warning string `json:"warning,omitempty"`
}

// FailedCriterion names a criterion whose model call did not complete.
type FailedCriterion struct {
	CriterionID uint   `json:"criterion_id"`
	Area        string `json:"area"`
	Error       string `json:"error"`
}

type MinQualificationReport struct {
	Success          bool                         `json:"success"`
	AssessmentType   string                       `json:"assessment_type"`
	RunID            string                       `json:"run_id"`
	JobID            uint                         `json:"job_id"`
	CandidateID      string                       `json:"candidate_id"`
	OverallResult    string                       `json:"overall_result"`
	AreaResults      []MinQualificationAreaResult `json:"area_results"`
	FailedCriteria   []FailedCriterion            `json:"failed_criteria,omitempty"`
	ProcessingTimeMs int64                        `json:"processing_time_ms"`
}

type OverallScore struct {
	TotalScore    float64 `json:"total_score"`
	TotalMaxScore float64 `json:"total_max_score"`
	Percentage    float64 `json:"percentage"`
	Grade         string  `json:"grade"`
	MeetsCutoff   *bool   `json:"meets_cutoff,omitempty"`
}

type FormalReport struct {
	Success          bool               `json:"success"`
	AssessmentType   string             `json:"assessment_type"`
	RunID            string             `json:"run_id"`
	JobID            uint               `json:"job_id"`
	CandidateID      string             `json:"candidate_id"`
	OverallScore     OverallScore       `json:"overall_score"`
	AreaResults      []FormalAreaResult `json:"area_results"`
	SkippedCriteria  []FailedCriterion  `json:"skipped_criteria,omitempty"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
}

// BatchItem is one candidate's outcome inside a batch. Exactly one of Report or Error is set.
type BatchItem[R any] struct {
	CandidateIndex int    `json:"candidate_index"`
	CandidateID    string `json:"candidate_id,omitempty"`
	Success        bool   `json:"success"`
	Error          string `json:"error,omitempty"`
	Report         *R     `json:"report,omitempty"`
}

type BatchResponse[S any, R any] struct {
	Success bool           `json:"success"`
	JobID   uint           `json:"job_id"`
	Summary S              `json:"summary"`
	Results []BatchItem[R] `json:"results"`
}

type MinQualificationBatchSummary struct {
	TotalCandidates       int `json:"total_candidates"`
	SuccessfulAssessments int `json:"successful_assessments"`
	PassedCandidates      int `json:"passed_candidates"`
	FailedCandidates      int `json:"failed_candidates"`
	ProcessingErrors      int `json:"processing_errors"`
}

type ScoreStatistics struct {
	Average float64 `json:"average"`
	Maximum float64 `json:"maximum"`
	Minimum float64 `json:"minimum"`
}

type FormalBatchSummary struct {
	TotalCandidates       int             `json:"total_candidates"`
	SuccessfulAssessments int             `json:"successful_assessments"`
	ProcessingErrors      int             `json:"processing_errors"`
	GradeDistribution     map[string]int  `json:"grade_distribution"`
	ScoreStatistics       ScoreStatistics `json:"score_statistics"`
}

type MinQualificationBatchResponse = BatchResponse[MinQualificationBatchSummary, MinQualificationReport]
type FormalBatchResponse = BatchResponse[FormalBatchSummary, FormalReport]

type PreviewJob struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CutoffGrade *float64 `json:"cutoff_grade,omitempty"`
}

type ScoringSummary struct {
	TotalMaxScore   float64 `json:"total_max_score"`
	AverageMaxScore float64 `json:"average_max_score"`
}

// PreviewResponse shows what an assessment would evaluate. Building it never calls the model.
type PreviewResponse struct {
	Success        bool              `json:"success"`
	AssessmentType string            `json:"assessment_type"`
	JobData        PreviewJob        `json:"job_data"`
	CriteriaCount  int               `json:"criteria_count"`
	Criteria       []model.Criterion `json:"criteria"`
	ScoringSummary *ScoringSummary   `json:"scoring_summary,omitempty"`
}
