package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedLevel_Thresholds(t *testing.T) {
	cases := []struct {
		wpm  float64
		want string
	}{
		{70, "Excellent"},
		{85, "Excellent"},
		{50, "Great"},
		{69.9, "Great"},
		{35, "Good"},
		{20, "Keep practicing"},
		{19.9, "Focus on accuracy first"},
		{0, "Focus on accuracy first"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SpeedLevel(tc.wpm), "wpm %.1f", tc.wpm)
	}
}

func TestAccuracyLevel_Thresholds(t *testing.T) {
	cases := []struct {
		accuracy float64
		want     string
	}{
		{100, "Perfect accuracy"},
		{98, "Perfect accuracy"},
		{95, "Excellent accuracy"},
		{90, "Good accuracy"},
		{80, "Focus on accuracy"},
		{79.9, "Slow down for better accuracy"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AccuracyLevel(tc.accuracy), "accuracy %.1f", tc.accuracy)
	}
}

func TestAdvice_CombinedRules(t *testing.T) {
	assert.Contains(t, Advice(55, 96), "Outstanding")
	assert.Contains(t, Advice(50, 95), "Outstanding")
	assert.Contains(t, Advice(45, 92), "Great performance")
	assert.Contains(t, Advice(40, 90), "Great performance")
	assert.Contains(t, Advice(25, 80), "Focus on accuracy first")
	assert.Contains(t, Advice(60, 85), "Slow down")
	assert.Contains(t, Advice(35, 97), "raise your speed")
}

func TestRecommendation_IncludesLevelsAndNumbers(t *testing.T) {
	got := Recommendation(52.4, 96.25)

	assert.True(t, strings.HasPrefix(got, "Speed: Great (52 WPM)"), "got %q", got)
	assert.Contains(t, got, "Accuracy: Excellent accuracy (96.2%)")
	assert.Contains(t, got, Advice(52.4, 96.25))
}
