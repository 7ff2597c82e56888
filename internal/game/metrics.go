package game

import "time"

const (
	// charsPerWord is the character count of one word for WPM
	// purposes, the usual typing-test convention.
	charsPerWord = 5

	// maxWPM caps reported speeds; anything above is treated as a
	// timing artifact rather than a real measurement.
	maxWPM = 300

	// minElapsed is the shortest time basis a speed is computed
	// over. Shorter spans report 0 instead of an absurd figure.
	minElapsed = time.Second
)

// WPM derives words per minute from a typed-character count and the
// time it took. Typed characters count whether or not they were
// correct. Returns 0 when nothing was typed or the elapsed time is
// below the minimum basis.
func WPM(typedChars int, elapsed time.Duration) float64 {
	if typedChars == 0 || elapsed < minElapsed {
		return 0
	}
	words := float64(typedChars) / charsPerWord
	return clamp(words/elapsed.Minutes(), 0, maxWPM)
}

// Accuracy returns the percentage of typed characters that were
// correct, in [0,100]. Nothing typed yet counts as 100. A correct
// count above the typed count indicates corrupted state and degrades
// to 0.
func Accuracy(correctChars, typedChars int) float64 {
	if typedChars == 0 {
		return 100
	}
	if correctChars > typedChars {
		return 0
	}
	return clamp(float64(correctChars)/float64(typedChars)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
