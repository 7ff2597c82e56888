package game

import "time"

// Progress reports the outcome of matching typed text against the
// target sentence.
type Progress struct {
	TypedCount   int
	CorrectCount int
	Complete     bool
}

// Attempt tracks one sentence-typing episode from activation until
// completion or timeout. A zero EndedAt means the attempt is live.
type Attempt struct {
	Sentence     string
	Typed        string
	StartedAt    time.Time
	EndedAt      time.Time
	TypedCount   int
	CorrectCount int
}

// Update records the latest typed text. The start time is set on the
// first update of the attempt and never moves afterward, so think
// time before the first keystroke is not billed. Correctness is
// counted position by position; characters typed past the end of the
// sentence count as typed but never as correct. Completion is a pure
// length check: enough characters finish the attempt even when some
// of them are wrong.
func (a *Attempt) Update(typed string, now time.Time) Progress {
	if a.StartedAt.IsZero() {
		a.StartedAt = now
	}
	a.Typed = typed
	target := []rune(a.Sentence)
	runes := []rune(typed)
	correct := 0
	for i, r := range runes {
		if i < len(target) && r == target[i] {
			correct++
		}
	}
	a.TypedCount = len(runes)
	a.CorrectCount = correct
	return Progress{
		TypedCount:   a.TypedCount,
		CorrectCount: correct,
		Complete:     len(runes) >= len(target),
	}
}

// finish freezes the attempt. The end time is set at most once.
func (a *Attempt) finish(now time.Time) {
	if a.EndedAt.IsZero() {
		a.EndedAt = now
	}
}

// Elapsed returns the active typing time: from the first keystroke
// until the attempt ended, or until now while it is live. Zero
// before the first keystroke.
func (a *Attempt) Elapsed(now time.Time) time.Duration {
	if a.StartedAt.IsZero() {
		return 0
	}
	end := now
	if !a.EndedAt.IsZero() {
		end = a.EndedAt
	}
	d := end.Sub(a.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// WPM returns the typing speed over the attempt so far.
func (a *Attempt) WPM(now time.Time) float64 {
	return WPM(a.TypedCount, a.Elapsed(now))
}

// Accuracy returns the share of correctly typed characters so far.
func (a *Attempt) Accuracy() float64 {
	return Accuracy(a.CorrectCount, a.TypedCount)
}

// exact reports whether the full sentence was reproduced verbatim.
// This is deliberately stricter than the completion check in Update.
func (a *Attempt) exact() bool {
	return a.Sentence != "" && a.Typed == a.Sentence
}
