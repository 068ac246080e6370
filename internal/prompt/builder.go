package prompt

import (
	"fmt"
	"strings"

	"github.com/fadilmartias/ai-assessment/internal/model"
)

const SystemMinQualification = `You are an expert HR evaluator specializing in candidate pre-screening for recruitment processes.
Your role is to assess whether candidates meet minimum qualification requirements with high accuracy and fairness.
Always provide structured, objective evaluations based on the provided criteria.`

const SystemFormalAssessment = `You are a senior HR assessment specialist conducting formal candidate evaluations.
Your expertise includes scoring candidates across multiple competency areas using standardized rubrics.
Provide detailed, evidence-based assessments that are fair, consistent, and actionable.`

const experienceArea = "professional experience"

// IsExperienceArea reports whether area should be scored against the job description.
func IsExperienceArea(area string) bool {
	return strings.Contains(strings.ToLower(strings.TrimSpace(area)), experienceArea)
}

// MinQualification renders the pass/fail prompt for one criterion.
func MinQualification(c model.Criterion, areaData string) string {
	return fmt.Sprintf(`
Evaluate if the candidate meets the minimum qualification for this area:

Area: %s
Criteria: %s
%s
Candidate Data for this area:
%s

Return JSON:
{
  "result": "PASS" or "FAIL",
  "justification": "Clear explanation why candidate passes/fails",
  "evidence_found": "Specific evidence from candidate data"
}
`, c.Area, c.RuleText, additionalInfo(c.Explanation), areaData)
}

// Formal renders the scoring prompt for one criterion. Professional experience areas
// also receive the job title and description.
func Formal(c model.Criterion, areaData string, job *model.Job) string {
	if job != nil && IsExperienceArea(c.Area) {
		return formalExperience(c, areaData, job)
	}
	return fmt.Sprintf(`
Score the candidate for this area:

Area: %s
Criteria: %s
Max Score: %s
%s
Candidate Data for this area:
%s

Return JSON:
{
  "raw_score": 0.00,
  "evidence": "Specific evidence from candidate data",
  "justification": "Detailed explanation for the score"
}
`, c.Area, c.RuleText, formatScore(c.MaxScore), additionalInfo(c.Explanation), areaData)
}

func formalExperience(c model.Criterion, areaData string, job *model.Job) string {
	return fmt.Sprintf(`
Score the candidate's experience against the job requirements:

Job Title: %s
Job Description: %s

Assessment Area: %s
Criteria: %s
Max Score: %s
%s
Candidate Experience:
%s

Evaluate how the candidate's experience aligns with the job requirements.

Return JSON:
{
  "raw_score": 0.00,
  "evidence": "Specific evidence from candidate experience",
  "justification": "Detailed explanation comparing experience to job requirements"
}
`, job.Title, job.Description, c.Area, c.RuleText, formatScore(c.MaxScore), additionalInfo(c.Explanation), areaData)
}

func additionalInfo(explanation string) string {
	if strings.TrimSpace(explanation) == "" {
		return ""
	}
	return "Additional Info: " + explanation + "\n"
}

func formatScore(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
