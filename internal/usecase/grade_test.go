package usecase

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade_Boundaries(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{100, "A"},
		{90, "A"},
		{89.99, "B"},
		{80, "B"},
		{79.99, "C"},
		{70, "C"},
		{69.99, "D"},
		{60, "D"},
		{59.99, "F"},
		{0, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.pct), "percentage %v", tt.pct)
	}
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 10.0, ClampScore(15, 10))
	assert.Equal(t, 0.0, ClampScore(-2, 10))
	assert.Equal(t, 7.5, ClampScore(7.5, 10))
	assert.Equal(t, 0.0, ClampScore(math.NaN(), 10))
	assert.Equal(t, 0.0, ClampScore(math.Inf(1), 10))
}

func TestPercentage_ZeroMax(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(5, 0))
	assert.Equal(t, 50.0, Percentage(5, 10))
}
