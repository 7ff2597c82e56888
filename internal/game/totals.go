package game

import "time"

// Totals accumulates finalized attempts over one session. StartedAt
// is the wall-clock session start, set when play begins.
type Totals struct {
	TypedChars         int
	CorrectChars       int
	ActiveTime         time.Duration
	SentencesCompleted int
	StartedAt          time.Time
}

// Fold adds a finalized attempt to the running totals. Character
// counts accrue unconditionally; active time only when the attempt
// was actually typed in; the completed counter only for an exact
// match of the whole sentence, which separates "ran out of time mid
// sentence" from "truly finished it".
func (t *Totals) Fold(a *Attempt) {
	if !a.StartedAt.IsZero() && !a.EndedAt.IsZero() {
		if d := a.EndedAt.Sub(a.StartedAt); d > 0 {
			t.ActiveTime += d
		}
	}
	t.TypedChars += a.TypedCount
	t.CorrectChars += a.CorrectCount
	if a.exact() {
		t.SentencesCompleted++
	}
}

// Reset clears the totals for a new session.
func (t *Totals) Reset() {
	*t = Totals{}
}

// basis returns the time the session speed is computed over: summed
// active typing time when any was recorded, wall-clock session time
// otherwise. Idle gaps between sentences are excluded whenever the
// active sum is available.
func (t *Totals) basis(now time.Time) time.Duration {
	if t.ActiveTime > 0 {
		return t.ActiveTime
	}
	if t.StartedAt.IsZero() {
		return 0
	}
	d := now.Sub(t.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// WPM returns the session typing speed.
func (t *Totals) WPM(now time.Time) float64 {
	if t.TypedChars == 0 {
		return 0
	}
	return WPM(t.TypedChars, t.basis(now))
}

// Accuracy returns the session-wide share of correct characters.
func (t *Totals) Accuracy() float64 {
	return Accuracy(t.CorrectChars, t.TypedChars)
}

// Result is the immutable snapshot taken when a session ends.
type Result struct {
	WPM                float64
	Accuracy           float64
	TypedChars         int
	CorrectChars       int
	TimeSpent          time.Duration
	SentencesCompleted int
}

// Finalize freezes the totals into a session result. TimeSpent is
// the same basis the session speed was computed over.
func (t *Totals) Finalize(now time.Time) Result {
	return Result{
		WPM:                t.WPM(now),
		Accuracy:           t.Accuracy(),
		TypedChars:         t.TypedChars,
		CorrectChars:       t.CorrectChars,
		TimeSpent:          t.basis(now),
		SentencesCompleted: t.SentencesCompleted,
	}
}
