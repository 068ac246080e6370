package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fadilmartias/ai-assessment/internal/dto"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/fadilmartias/ai-assessment/internal/model"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// tokenRate is USD per 1K tokens.
type tokenRate struct {
	match      string
	prompt     float64
	completion float64
}

// Matched by substring in order, so gpt-4-turbo must precede gpt-4.
var costTable = []tokenRate{
	{match: "gpt-4-turbo", prompt: 0.01, completion: 0.03},
	{match: "gpt-4", prompt: 0.03, completion: 0.06},
	{match: "gpt-3.5-turbo", prompt: 0.0015, completion: 0.002},
}

var defaultRate = tokenRate{prompt: 0.03, completion: 0.06}

func EstimateCost(modelName string, promptTokens, completionTokens int) float64 {
	rate := defaultRate
	lower := strings.ToLower(modelName)
	for _, r := range costTable {
		if strings.Contains(lower, r.match) {
			rate = r
			break
		}
	}
	return float64(promptTokens)/1000*rate.prompt + float64(completionTokens)/1000*rate.completion
}

type UsageEntry struct {
	RunID          uuid.UUID
	JobID          uint
	AssessmentType string
	CandidateID    string
	Usage          service.Usage
	Model          string
	Success        bool
	Elapsed        time.Duration
}

// UsageLedger appends one row per model call. Write failures are logged and swallowed.
type UsageLedger struct {
	repo    *repository.UsageRepository
	enabled bool
	log     *zap.Logger
}

func NewUsageLedger(repo *repository.UsageRepository, enabled bool, log *zap.Logger) *UsageLedger {
	return &UsageLedger{repo: repo, enabled: enabled, log: logger.OrNop(log)}
}

// Log records e and returns the stored row, or nil when tracking is off or the write failed.
func (l *UsageLedger) Log(ctx context.Context, e UsageEntry) *model.UsageRecord {
	if l == nil || !l.enabled {
		return nil
	}

	record := &model.UsageRecord{
		RunID:            e.RunID,
		JobID:            e.JobID,
		AssessmentType:   e.AssessmentType,
		PromptTokens:     e.Usage.PromptTokens,
		CompletionTokens: e.Usage.CompletionTokens,
		TotalTokens:      e.Usage.TotalTokens,
		ModelUsed:        e.Model,
		EstimatedCost:    EstimateCost(e.Model, e.Usage.PromptTokens, e.Usage.CompletionTokens),
		Success:          e.Success,
	}
	if e.CandidateID != "" {
		candidateID := e.CandidateID
		record.CandidateID = &candidateID
	}
	if e.Elapsed > 0 {
		ms := e.Elapsed.Milliseconds()
		record.ProcessingTimeMs = &ms
	}

	if err := l.repo.Create(ctx, record); err != nil {
		l.log.Warn("failed to record usage",
			zap.Uint(logger.FieldJobID, e.JobID),
			zap.String(logger.FieldAssessmentType, e.AssessmentType),
			zap.Error(err),
		)
		return nil
	}
	return record
}

// Stats aggregates the ledger, optionally for one job (jobID 0 means all).
func (l *UsageLedger) Stats(ctx context.Context, jobID uint) (dto.UsageStats, error) {
	totals, err := l.repo.Totals(ctx, jobID)
	if err != nil {
		return dto.UsageStats{}, newError(ErrPersistence, "failed to read usage stats: %v", err)
	}
	return dto.UsageStats{
		TotalAssessments:      totals.Count,
		SuccessfulAssessments: totals.SuccessCount,
		TotalTokens:           totals.TotalTokens,
		TotalCost:             round(totals.TotalCost, 4),
	}, nil
}
