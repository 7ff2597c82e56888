// Package stats contains statistics calculations and reporting over
// finished sessions.
package stats

import (
	"math"
	"strings"
	"time"

	"github.com/velichenko/typesprint/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates finished sessions for reporting.
type Summary struct {
	Sessions           int
	AvgWPM             float64
	BestWPM            float64
	AvgAccuracy        float64
	SentencesCompleted int
	TypedChars         int
	ActiveTime         time.Duration
}

// Summarize folds session records into a summary.
func Summarize(recs []model.SessionRecord) Summary {
	s := Summary{Sessions: len(recs)}
	if s.Sessions == 0 {
		return s
	}
	var wpmSum, accSum float64
	var activeMs int64
	for _, r := range recs {
		wpmSum += r.WPM
		accSum += r.Accuracy
		if r.WPM > s.BestWPM {
			s.BestWPM = r.WPM
		}
		s.SentencesCompleted += r.SentencesCompleted
		s.TypedChars += r.TypedChars
		activeMs += r.ActiveMs
	}
	n := float64(s.Sessions)
	s.AvgWPM = wpmSum / n
	s.AvgAccuracy = accSum / n
	s.ActiveTime = time.Duration(activeMs) * time.Millisecond
	return s
}

// WPMSeries extracts the speed series from records, oldest first.
func WPMSeries(recs []model.SessionRecord) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.WPM
	}
	return out
}

// AccuracySeries extracts the accuracy series from records, oldest
// first.
func AccuracySeries(recs []model.SessionRecord) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Accuracy
	}
	return out
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := seriesMinMax(values)
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

func seriesMinMax(values []float64) (float64, float64) {
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}
