package dto

import (
	"time"

	"github.com/fadilmartias/ai-assessment/internal/model"
)

type CreateEntityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateEntityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CreateJobRequest struct {
	EntityID        uint     `json:"entity_id"`
	ReferenceNumber string   `json:"reference_number"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	CutoffGrade     *float64 `json:"cutoff_grade"`
	Status          string   `json:"status"`
}

type UpdateJobRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CutoffGrade *float64 `json:"cutoff_grade"`
	Status      *string  `json:"status"`
}

type JobDTO struct {
	ID                            uint      `json:"id"`
	EntityID                      uint      `json:"entity_id"`
	ReferenceNumber               string    `json:"reference_number"`
	Title                         string    `json:"title"`
	Description                   string    `json:"description"`
	CutoffGrade                   *float64  `json:"cutoff_grade"`
	Status                        string    `json:"status"`
	CreatedAt                     time.Time `json:"created_at"`
	MinQualificationCriteriaCount int64     `json:"min_qualification_criteria_count"`
	FormalAssessmentCriteriaCount int64     `json:"formal_assessment_criteria_count"`
}

func NewJobDTO(job *model.Job, minCount, formalCount int64) JobDTO {
	return JobDTO{
		ID:                            job.ID,
		EntityID:                      job.EntityID,
		ReferenceNumber:               job.ReferenceNumber,
		Title:                         job.Title,
		Description:                   job.Description,
		CutoffGrade:                   job.CutoffGrade,
		Status:                        job.Status,
		CreatedAt:                     job.CreatedAt,
		MinQualificationCriteriaCount: minCount,
		FormalAssessmentCriteriaCount: formalCount,
	}
}

type JobSearchResult struct {
	JobDTO
	Distance float64 `json:"distance"`
}

type JobCriteriaResponse struct {
	JobID                    uint                              `json:"job_id"`
	MinQualificationCriteria []model.MinQualificationCriterion `json:"min_qualification_criteria"`
	FormalAssessmentCriteria []model.FormalAssessmentCriterion `json:"formal_assessment_criteria"`
}

type CreateMinQualificationCriterionRequest struct {
	JobID       uint    `json:"job_id"`
	Area        string  `json:"area"`
	Criteria    string  `json:"criteria"`
	Explanation *string `json:"explanation"`
	OrderIndex  *int    `json:"order_index"`
}

type UpdateMinQualificationCriterionRequest struct {
	Area        *string `json:"area"`
	Criteria    *string `json:"criteria"`
	Explanation *string `json:"explanation"`
	OrderIndex  *int    `json:"order_index"`
}

type CreateFormalCriterionRequest struct {
	JobID       uint     `json:"job_id"`
	Area        string   `json:"area"`
	Criteria    string   `json:"criteria"`
	Explanation *string  `json:"explanation"`
	MaxScore    *float64 `json:"max_score"`
	Weight      *float64 `json:"weight"`
	OrderIndex  *int     `json:"order_index"`
}

type UpdateFormalCriterionRequest struct {
	Area        *string  `json:"area"`
	Criteria    *string  `json:"criteria"`
	Explanation *string  `json:"explanation"`
	MaxScore    *float64 `json:"max_score"`
	Weight      *float64 `json:"weight"`
	OrderIndex  *int     `json:"order_index"`
}

type BulkMinQualificationRequest struct {
	JobID        uint                                     `json:"job_id"`
	CriteriaList []CreateMinQualificationCriterionRequest `json:"criteria_list"`
}

type BulkFormalRequest struct {
	JobID        uint                           `json:"job_id"`
	CriteriaList []CreateFormalCriterionRequest `json:"criteria_list"`
}
