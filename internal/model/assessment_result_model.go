package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ResultPass = "PASS"
	ResultFail = "FAIL"

	AssessmentMinQualification = "min_qualification"
	AssessmentFormal           = "formal_assessment"
)

// MinQualificationResult is one pass/fail verdict for one criterion within one run.
type MinQualificationResult struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	RunID         uuid.UUID      `gorm:"type:uuid;index" json:"run_id"`
	JobID         uint           `gorm:"not null;index:idx_mq_job_candidate" json:"job_id"`
	CandidateID   string         `gorm:"type:varchar(100);not null;index:idx_mq_job_candidate" json:"candidate_id"`
	CriteriaID    uint           `gorm:"not null" json:"criteria_id"`
	Area          string         `gorm:"type:varchar(255);not null" json:"area"`
	Result        string         `gorm:"type:varchar(4);not null" json:"result"`
	Justification string         `gorm:"type:text;not null" json:"justification"`
	EvidenceFound string         `gorm:"type:text" json:"evidence_found"`
	RawReply      datatypes.JSON `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (r *MinQualificationResult) TableName() string {
	return "min_qualification_results"
}

// FormalAssessmentResult is one scored area within one run. RawScore never exceeds MaxScore.
type FormalAssessmentResult struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	RunID         uuid.UUID      `gorm:"type:uuid;index" json:"run_id"`
	JobID         uint           `gorm:"not null;index:idx_fa_job_candidate" json:"job_id"`
	CandidateID   string         `gorm:"type:varchar(100);not null;index:idx_fa_job_candidate" json:"candidate_id"`
	CriteriaID    uint           `gorm:"not null" json:"criteria_id"`
	Area          string         `gorm:"type:varchar(255);not null" json:"area"`
	RawScore      float64        `gorm:"type:decimal(5,2);not null" json:"raw_score"`
	MaxScore      float64        `gorm:"type:decimal(5,2);not null" json:"max_score"`
	Percentage    float64        `gorm:"type:decimal(5,2);not null" json:"percentage"`
	Evidence      string         `gorm:"type:text;not null" json:"evidence"`
	Justification string         `gorm:"type:text;not null" json:"justification"`
	RawReply      datatypes.JSON `json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (r *FormalAssessmentResult) TableName() string {
	return "formal_assessment_results"
}
