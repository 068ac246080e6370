package usecase

import "math"

// Grade maps an overall percentage to a letter. Lower bounds are inclusive.
func Grade(percentage float64) string {
	switch {
	case percentage >= 90:
		return "A"
	case percentage >= 80:
		return "B"
	case percentage >= 70:
		return "C"
	case percentage >= 60:
		return "D"
	default:
		return "F"
	}
}

// ClampScore restricts a model score to [0, maxScore].
func ClampScore(score, maxScore float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 {
		return 0
	}
	if maxScore < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// Percentage returns score/max*100, or 0 when max is 0.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
