package prompt

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AreaRule routes an assessment area to one field of the candidate profile.
type AreaRule struct {
	Keyword string
	Field   string
}

func (r AreaRule) Match(area string) bool {
	return strings.Contains(area, r.Keyword)
}

// AreaRules is evaluated in order and the first match wins, so "years of experience"
// resolves to professional_experience, not years_of_experience.
var AreaRules = []AreaRule{
	{Keyword: "personal", Field: "personal_information"},
	{Keyword: "address", Field: "address"},
	{Keyword: "education", Field: "education"},
	{Keyword: "experience", Field: "professional_experience"},
	{Keyword: "years", Field: "years_of_experience"},
	{Keyword: "computer", Field: "computer_proficiency"},
	{Keyword: "public", Field: "public_sector_employment"},
	{Keyword: "language", Field: "language_proficiency"},
	{Keyword: "skill", Field: "additional_skills"},
	{Keyword: "other", Field: "other_information"},
	{Keyword: "certification", Field: "certification_statement"},
}

// ExtractAreaData returns the part of profile relevant to area, or the whole profile
// when no rule matches. A matched field missing from the profile yields "".
func ExtractAreaData(profile map[string]any, area string) string {
	lower := strings.ToLower(area)
	for _, rule := range AreaRules {
		if rule.Match(lower) {
			return stringify(profile[rule.Field])
		}
	}
	return stringify(profile)
}

// MatchedField reports which profile field area resolves to.
func MatchedField(area string) (string, bool) {
	lower := strings.ToLower(area)
	for _, rule := range AreaRules {
		if rule.Match(lower) {
			return rule.Field, true
		}
	}
	return "", false
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case map[string]any, []any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}
