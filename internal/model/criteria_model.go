package model

import "time"

type MinQualificationCriterion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;index" json:"job_id"`
	Area        string    `gorm:"type:varchar(255);not null" json:"area"`
	Criteria    string    `gorm:"type:text;not null" json:"criteria"`
	Explanation *string   `gorm:"type:text" json:"explanation"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *MinQualificationCriterion) TableName() string {
	return "min_qualification_criteria"
}

func (c *MinQualificationCriterion) Criterion() Criterion {
	return Criterion{
		ID:          c.ID,
		JobID:       c.JobID,
		Area:        c.Area,
		RuleText:    c.Criteria,
		Explanation: deref(c.Explanation),
		OrderIndex:  c.OrderIndex,
	}
}

type FormalAssessmentCriterion struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	JobID       uint      `gorm:"not null;index" json:"job_id"`
	Area        string    `gorm:"type:varchar(255);not null" json:"area"`
	Criteria    string    `gorm:"type:text;not null" json:"criteria"`
	Explanation *string   `gorm:"type:text" json:"explanation"`
	MaxScore    float64   `gorm:"type:decimal(5,2)" json:"max_score"`
	Weight      float64   `gorm:"type:decimal(5,2)" json:"weight"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c *FormalAssessmentCriterion) TableName() string {
	return "formal_assessment_criteria"
}

func (c *FormalAssessmentCriterion) Criterion() Criterion {
	return Criterion{
		ID:          c.ID,
		JobID:       c.JobID,
		Area:        c.Area,
		RuleText:    c.Criteria,
		Explanation: deref(c.Explanation),
		MaxScore:    c.MaxScore,
		Weight:      c.Weight,
		OrderIndex:  c.OrderIndex,
	}
}

// Criterion is the read-only view of one rubric rule consumed by the assessment pipeline.
// MaxScore and Weight are only meaningful for formal assessment.
type Criterion struct {
	ID          uint    `json:"id"`
	JobID       uint    `json:"job_id"`
	Area        string  `json:"area"`
	RuleText    string  `json:"criteria"`
	Explanation string  `json:"explanation,omitempty"`
	MaxScore    float64 `json:"max_score,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	OrderIndex  int     `json:"order_index"`
}

// JobCriteria holds both rubrics of a job, each ordered by OrderIndex.
type JobCriteria struct {
	JobID            uint        `json:"job_id"`
	MinQualification []Criterion `json:"min_qualification_criteria"`
	FormalAssessment []Criterion `json:"formal_assessment_criteria"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
