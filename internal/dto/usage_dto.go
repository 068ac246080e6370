package dto

type UsageStats struct {
	TotalAssessments      int64   `json:"total_assessments"`
	SuccessfulAssessments int64   `json:"successful_assessments"`
	TotalTokens           int64   `json:"total_tokens"`
	TotalCost             float64 `json:"total_cost"`
}
