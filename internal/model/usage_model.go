package model

import (
	"time"

	"github.com/google/uuid"
)

// UsageRecord is an append-only ledger row, one per language-model call.
type UsageRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	RunID            uuid.UUID `gorm:"type:uuid;index" json:"run_id"`
	JobID            uint      `gorm:"not null;index" json:"job_id"`
	AssessmentType   string    `gorm:"type:varchar(50);not null" json:"assessment_type"`
	CandidateID      *string   `gorm:"type:varchar(100)" json:"candidate_id"`
	PromptTokens     int       `json:"prompt_tokens"`
	CompletionTokens int       `json:"completion_tokens"`
	TotalTokens      int       `json:"total_tokens"`
	ModelUsed        string    `gorm:"type:varchar(100)" json:"model_used"`
	EstimatedCost    float64   `gorm:"type:decimal(10,6)" json:"estimated_cost"`
	ProcessingTimeMs *int64    `json:"processing_time_ms"`
	Success          bool      `json:"success"`
	CreatedAt        time.Time `json:"created_at"`
}

func (u *UsageRecord) TableName() string {
	return "usage_tracking"
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&Entity{},
		&Job{},
		&MinQualificationCriterion{},
		&FormalAssessmentCriterion{},
		&MinQualificationResult{},
		&FormalAssessmentResult{},
		&UsageRecord{},
	}
}
