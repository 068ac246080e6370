package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

const (
	JobStatusDraft  = "draft"
	JobStatusActive = "active"
	JobStatusClosed = "closed"
)

type Job struct {
	ID                       uint                        `gorm:"primaryKey" json:"id"`
	EntityID                 uint                        `gorm:"not null;index" json:"entity_id"`
	ReferenceNumber          string                      `gorm:"type:varchar(100);not null;uniqueIndex" json:"reference_number"`
	Title                    string                      `gorm:"type:varchar(255);not null" json:"title"`
	Description              string                      `gorm:"type:text;not null" json:"description"`
	CutoffGrade              *float64                    `gorm:"type:decimal(5,2)" json:"cutoff_grade"`
	Status                   string                      `gorm:"type:varchar(20);not null" json:"status"`
	Embedding                *pgvector.Vector            `gorm:"type:vector(3072)" json:"-"` // pakai pgvector
	MinQualificationCriteria []MinQualificationCriterion `json:"-"`
	FormalAssessmentCriteria []FormalAssessmentCriterion `json:"-"`
	CreatedAt                time.Time                   `json:"created_at"`
	UpdatedAt                time.Time                   `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

func ValidJobStatus(status string) bool {
	switch status {
	case JobStatusDraft, JobStatusActive, JobStatusClosed:
		return true
	}
	return false
}
