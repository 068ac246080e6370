package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/fadilmartias/ai-assessment/internal/model"
)

// TestEntity creates an entity with a unique name.
func TestEntity(t *testing.T, db *gorm.DB, opts ...func(*model.Entity)) *model.Entity {
	t.Helper()

	entity := &model.Entity{
		Name:        fmt.Sprintf("Entity %d", time.Now().UnixNano()),
		Description: "Test hiring entity",
	}

	for _, opt := range opts {
		opt(entity)
	}

	if err := db.Create(entity).Error; err != nil {
		t.Fatalf("Failed to create test entity: %v", err)
	}

	return entity
}

// TestJob creates a job under entityID.
func TestJob(t *testing.T, db *gorm.DB, entityID uint, opts ...func(*model.Job)) *model.Job {
	t.Helper()

	job := &model.Job{
		EntityID:        entityID,
		ReferenceNumber: fmt.Sprintf("REF-%d", time.Now().UnixNano()),
		Title:           "Backend Engineer",
		Description:     "Build and operate Go services.",
		Status:          model.JobStatusActive,
	}

	for _, opt := range opts {
		opt(job)
	}

	if err := db.Create(job).Error; err != nil {
		t.Fatalf("Failed to create test job: %v", err)
	}

	return job
}

// WithCutoffGrade sets the job's cutoff percentage.
func WithCutoffGrade(grade float64) func(*model.Job) {
	return func(j *model.Job) {
		j.CutoffGrade = &grade
	}
}

// WithTitle sets the job title.
func WithTitle(title string) func(*model.Job) {
	return func(j *model.Job) {
		j.Title = title
	}
}

// TestMinQualificationCriterion creates a pass/fail criterion.
func TestMinQualificationCriterion(t *testing.T, db *gorm.DB, jobID uint, area string, order int) *model.MinQualificationCriterion {
	t.Helper()

	c := &model.MinQualificationCriterion{
		JobID:      jobID,
		Area:       area,
		Criteria:   fmt.Sprintf("Candidate must satisfy %s requirements", area),
		OrderIndex: order,
	}

	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create min qualification criterion: %v", err)
	}

	return c
}

// TestFormalCriterion creates a scored criterion.
func TestFormalCriterion(t *testing.T, db *gorm.DB, jobID uint, area string, maxScore float64, order int) *model.FormalAssessmentCriterion {
	t.Helper()

	c := &model.FormalAssessmentCriterion{
		JobID:      jobID,
		Area:       area,
		Criteria:   fmt.Sprintf("Score %s", area),
		MaxScore:   maxScore,
		Weight:     1,
		OrderIndex: order,
	}

	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Failed to create formal criterion: %v", err)
	}

	return c
}

// CandidateProfile returns a profile that fills every routed field.
func CandidateProfile() map[string]any {
	return map[string]any{
		"personal_information":     "Jane Doe",
		"address":                  "Jakarta",
		"education":                "BSc Computer Science",
		"professional_experience":  "8 years building backend services",
		"years_of_experience":      "8",
		"computer_proficiency":     "Go, PostgreSQL",
		"public_sector_employment": "None",
		"language_proficiency":     "English, Indonesian",
		"additional_skills":        "Mentoring",
		"other_information":        "Available immediately",
		"certification_statement":  "I certify the above is true",
	}
}
