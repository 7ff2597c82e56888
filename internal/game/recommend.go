package game

import "fmt"

// SpeedLevel describes a WPM figure in words.
func SpeedLevel(wpm float64) string {
	switch {
	case wpm >= 70:
		return "Excellent"
	case wpm >= 50:
		return "Great"
	case wpm >= 35:
		return "Good"
	case wpm >= 20:
		return "Keep practicing"
	default:
		return "Focus on accuracy first"
	}
}

// AccuracyLevel describes an accuracy percentage in words.
func AccuracyLevel(accuracy float64) string {
	switch {
	case accuracy >= 98:
		return "Perfect accuracy"
	case accuracy >= 95:
		return "Excellent accuracy"
	case accuracy >= 90:
		return "Good accuracy"
	case accuracy >= 80:
		return "Focus on accuracy"
	default:
		return "Slow down for better accuracy"
	}
}

// Advice returns a practice recommendation for a finished session.
// Accuracy problems outrank speed problems throughout.
func Advice(wpm, accuracy float64) string {
	switch {
	case wpm >= 50 && accuracy >= 95:
		return "Outstanding! Try harder texts to push your limits further."
	case wpm >= 40 && accuracy >= 90:
		return "Great performance. Practice regularly to reach 50+ WPM at 95%+ accuracy."
	case wpm < 30 && accuracy < 85:
		return "Focus on accuracy first, then build speed gradually. Try typing without looking at the keyboard."
	case accuracy < 90:
		return "Slow down slightly to improve accuracy. Precision matters more than speed while learning."
	case wpm < 40:
		return "Great accuracy. Now raise your speed step by step while keeping it."
	default:
		return "Keep practicing daily to improve both speed and accuracy."
	}
}

// Recommendation combines the level descriptions and advice into the
// block shown on the results screen.
func Recommendation(wpm, accuracy float64) string {
	return fmt.Sprintf("Speed: %s (%.0f WPM)\nAccuracy: %s (%.1f%%)\n\n%s",
		SpeedLevel(wpm), wpm, AccuracyLevel(accuracy), accuracy, Advice(wpm, accuracy))
}
