package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldProvider       = "ai_provider"
	FieldModel          = "ai_model"
	FieldJobID          = "job_id"
	FieldCandidateID    = "candidate_id"
	FieldCriterionID    = "criterion_id"
	FieldArea           = "area"
	FieldRunID          = "run_id"
	FieldAssessmentType = "assessment_type"
)

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// WithCommonFields attaches the AI provider and model to the logger.
// Empty values are skipped.
func WithCommonFields(l *zap.Logger, provider, model string) *zap.Logger {
	l = OrNop(l)
	fields := make([]zap.Field, 0, 2)
	if p := strings.TrimSpace(provider); p != "" {
		fields = append(fields, zap.String(FieldProvider, p))
	}
	if m := strings.TrimSpace(model); m != "" {
		fields = append(fields, zap.String(FieldModel, m))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// RunFields describes one assessment run.
func RunFields(runID, assessmentType string, jobID uint, candidateID string) []zap.Field {
	return []zap.Field{
		zap.String(FieldRunID, runID),
		zap.String(FieldAssessmentType, assessmentType),
		zap.Uint(FieldJobID, jobID),
		zap.String(FieldCandidateID, candidateID),
	}
}
