// Package game implements the timed typing-session engine: progress
// tracking against a target sentence, speed and accuracy metrics,
// session aggregation and the lifecycle state machine tying them
// together. The engine is single threaded and never blocks. A host
// drives it with typed-text updates, countdown ticks and periodic
// timeout checks; timeouts are polled, the engine owns no timers.
package game

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/velichenko/typesprint/internal/model"
)

var (
	// ErrNameTooShort rejects player names below the minimum length.
	ErrNameTooShort = errors.New("name must be at least 2 characters")

	// ErrInvalidTransition reports a lifecycle operation attempted in
	// the wrong phase. The operation is a no-op; nothing is mutated.
	ErrInvalidTransition = errors.New("invalid phase transition")
)

const (
	minNameLen         = 2
	defaultDurationSec = 60
)

// Clock supplies the current time. The engine reads it on demand and
// needs it monotonic enough for elapsed-time subtraction only.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// SentenceSource supplies target sentences by language code. Pick
// must fall back to a default language for unknown codes.
type SentenceSource interface {
	Pick(lang string) string
	Has(lang string) bool
	Languages() []string
}

// ProfileGateway persists the player profile and finished sessions.
// The engine absorbs every error it returns: a failed load means "no
// stored profile", a failed save or record is dropped.
type ProfileGateway interface {
	Load() (model.Profile, error)
	Save(model.Profile) error
	Record(model.SessionRecord) error
}

// Renderer receives outbound notifications as the session advances.
// It is a pure sink; the engine never reads presentation state back.
type Renderer interface {
	PhaseChanged(Phase)
	ProgressUpdated(Progress)
	ResultReady(Result)
}

// Options configures a new Engine. Sentences is required. The other
// collaborators default to the system clock, no persistence and no
// renderer; DefaultLang defaults to "en".
type Options struct {
	Clock       Clock
	Sentences   SentenceSource
	Profiles    ProfileGateway
	Renderer    Renderer
	DefaultLang string
}

// Engine orchestrates one player's typing sessions.
type Engine struct {
	clock    Clock
	bank     SentenceSource
	profiles ProfileGateway
	rend     Renderer
	fallback string

	phase      Phase
	countdown  int
	profile    model.Profile
	attempt    Attempt
	totals     Totals
	result     Result
	haveResult bool
}

// New builds an Engine in the Idle phase.
func New(opts Options) *Engine {
	e := &Engine{
		clock:    opts.Clock,
		bank:     opts.Sentences,
		profiles: opts.Profiles,
		rend:     opts.Renderer,
		fallback: opts.DefaultLang,
	}
	if e.clock == nil {
		e.clock = SystemClock()
	}
	if e.fallback == "" {
		e.fallback = "en"
	}
	e.profile = model.Profile{Lang: e.fallback, DurationSec: defaultDurationSec}
	return e
}

// Begin starts the configuration flow. The stored profile, if any,
// is loaded here so the host can prefill its inputs; load failures
// fall back to defaults.
func (e *Engine) Begin() error {
	if e.phase != PhaseIdle {
		return transitionErr(e.phase, PhaseName)
	}
	e.loadProfile()
	return e.transition(PhaseName)
}

// SetName stores the player name and advances to language selection.
// Names shorter than two characters after trimming are rejected with
// no mutation.
func (e *Engine) SetName(name string) error {
	if e.phase != PhaseName {
		return transitionErr(e.phase, PhaseLanguage)
	}
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLen {
		return ErrNameTooShort
	}
	e.profile.Name = name
	return e.transition(PhaseLanguage)
}

// SetLanguage stores the sentence language and advances to duration
// selection. Unknown codes are rejected silently, as are calls in
// the wrong phase.
func (e *Engine) SetLanguage(code string) bool {
	if e.phase != PhaseLanguage || e.bank == nil || !e.bank.Has(code) {
		return false
	}
	e.profile.Lang = code
	return e.transition(PhaseDuration) == nil
}

// SetDuration stores the session length and starts the countdown.
// Durations below one second are coerced to one, never rejected.
func (e *Engine) SetDuration(seconds int) error {
	if e.phase != PhaseDuration {
		return transitionErr(e.phase, PhaseCountdown)
	}
	if seconds < 1 {
		seconds = 1
	}
	e.profile.DurationSec = seconds
	return e.startCountdown()
}

// Tick advances the countdown by one. Reaching zero starts the
// session: totals reset, session clock started, first sentence
// picked, phase moved to Playing.
func (e *Engine) Tick() error {
	if e.phase != PhaseCountdown {
		return transitionErr(e.phase, PhaseCountdown)
	}
	if e.countdown > 0 {
		e.countdown--
	}
	if e.countdown == 0 {
		e.startSession(e.clock.Now())
		return e.transition(PhasePlaying)
	}
	return e.transition(PhaseCountdown)
}

// Type evaluates the latest typed text against the current sentence.
// On completion the attempt is folded into the session totals and,
// unless the session timed out, the next sentence starts without
// leaving the Playing phase.
func (e *Engine) Type(text string) (Progress, error) {
	if e.phase != PhasePlaying {
		return Progress{}, transitionErr(e.phase, PhasePlaying)
	}
	now := e.clock.Now()
	p := e.attempt.Update(text, now)
	e.notifyProgress(p)
	if e.expired(now) {
		e.finishAttempt(now)
		e.endSession(now)
		return p, nil
	}
	if p.Complete {
		e.finishAttempt(now)
		e.nextSentence()
		_ = e.transition(PhasePlaying)
	}
	return p, nil
}

// CheckTimeout reports whether the session duration has elapsed and,
// if so, ends the session: the current attempt is finalized as-is
// and folded, the result frozen and recorded, the phase moved to
// TimeUp. Outside Playing it reports false; a late host timer firing
// after the phase moved on is not an error.
func (e *Engine) CheckTimeout() bool {
	if e.phase != PhasePlaying {
		return false
	}
	now := e.clock.Now()
	if !e.expired(now) {
		return false
	}
	e.finishAttempt(now)
	e.endSession(now)
	return true
}

// ShowResults advances from TimeUp to the results screen.
func (e *Engine) ShowResults() error {
	if err := e.transition(PhaseResults); err != nil {
		return err
	}
	e.notifyResult()
	return nil
}

// Restart replays with the same settings: results straight back into
// a fresh countdown.
func (e *Engine) Restart() error {
	if e.phase != PhaseResults {
		return transitionErr(e.phase, PhaseCountdown)
	}
	return e.startCountdown()
}

// ChangeSettings returns to language selection, keeping the name.
func (e *Engine) ChangeSettings() error {
	if e.phase != PhaseResults {
		return transitionErr(e.phase, PhaseLanguage)
	}
	e.haveResult = false
	return e.transition(PhaseLanguage)
}

// NewSession abandons the finished session and returns to Idle.
func (e *Engine) NewSession() error {
	if e.phase != PhaseResults {
		return transitionErr(e.phase, PhaseIdle)
	}
	e.haveResult = false
	return e.transition(PhaseIdle)
}

// Phase returns the current lifecycle phase.
func (e *Engine) Phase() Phase { return e.phase }

// Countdown returns the remaining count while counting down.
func (e *Engine) Countdown() int { return e.countdown }

// Sentence returns the current target sentence.
func (e *Engine) Sentence() string { return e.attempt.Sentence }

// Profile returns the working copy of the player profile.
func (e *Engine) Profile() model.Profile { return e.profile }

// Languages lists the codes the sentence source can serve.
func (e *Engine) Languages() []string {
	if e.bank == nil {
		return nil
	}
	return e.bank.Languages()
}

// Remaining returns the time left on the session timer, clamped at
// zero. Before play starts it returns the configured duration.
func (e *Engine) Remaining() time.Duration {
	d := e.duration()
	if e.phase != PhasePlaying || e.totals.StartedAt.IsZero() {
		return d
	}
	left := d - e.clock.Now().Sub(e.totals.StartedAt)
	if left < 0 {
		left = 0
	}
	return left
}

// LiveWPM returns the typing speed of the current attempt.
func (e *Engine) LiveWPM() float64 {
	return e.attempt.WPM(e.clock.Now())
}

// LiveAccuracy returns the accuracy of the current attempt.
func (e *Engine) LiveAccuracy() float64 {
	return e.attempt.Accuracy()
}

// SessionWPM returns the running session speed over folded attempts.
func (e *Engine) SessionWPM() float64 {
	return e.totals.WPM(e.clock.Now())
}

// SessionAccuracy returns the running session accuracy over folded
// attempts.
func (e *Engine) SessionAccuracy() float64 {
	return e.totals.Accuracy()
}

// SentencesCompleted returns the number of sentences reproduced
// exactly so far this session.
func (e *Engine) SentencesCompleted() int {
	return e.totals.SentencesCompleted
}

// Result returns the frozen session result. The second value is
// false until a session has ended and after the result is discarded
// by leaving the results screen.
func (e *Engine) Result() (Result, bool) {
	return e.result, e.haveResult
}

func (e *Engine) transition(to Phase) error {
	if !canTransition(e.phase, to) {
		return transitionErr(e.phase, to)
	}
	e.phase = to
	e.notifyPhase()
	return nil
}

func transitionErr(from, to Phase) error {
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
}

func (e *Engine) startCountdown() error {
	e.countdown = countdownStart
	e.haveResult = false
	return e.transition(PhaseCountdown)
}

func (e *Engine) startSession(now time.Time) {
	e.totals.Reset()
	e.totals.StartedAt = now
	e.nextSentence()
}

func (e *Engine) nextSentence() {
	sentence := ""
	if e.bank != nil {
		sentence = e.bank.Pick(e.profile.Lang)
	}
	e.attempt = Attempt{Sentence: sentence}
}

func (e *Engine) finishAttempt(now time.Time) {
	e.attempt.finish(now)
	e.totals.Fold(&e.attempt)
}

// endSession freezes the result, updates the profile records and
// hands both to the gateway before entering TimeUp. Gateway failures
// are absorbed; the session result survives in memory regardless.
func (e *Engine) endSession(now time.Time) {
	e.result = e.totals.Finalize(now)
	e.haveResult = true
	e.profile.TotalSessions++
	if e.result.WPM > e.profile.BestWPM {
		e.profile.BestWPM = e.result.WPM
	}
	if e.result.Accuracy > e.profile.BestAccuracy {
		e.profile.BestAccuracy = e.result.Accuracy
	}
	e.profile.UpdatedAt = now
	if e.profiles != nil {
		_ = e.profiles.Save(e.profile)
		_ = e.profiles.Record(model.SessionRecord{
			FinishedAt:         now,
			Lang:               e.profile.Lang,
			DurationSec:        e.profile.DurationSec,
			WPM:                e.result.WPM,
			Accuracy:           e.result.Accuracy,
			TypedChars:         e.result.TypedChars,
			CorrectChars:       e.result.CorrectChars,
			ActiveMs:           e.result.TimeSpent.Milliseconds(),
			SentencesCompleted: e.result.SentencesCompleted,
		})
	}
	_ = e.transition(PhaseTimeUp)
}

func (e *Engine) loadProfile() {
	e.profile = model.Profile{Lang: e.fallback, DurationSec: defaultDurationSec}
	if e.profiles == nil {
		return
	}
	p, err := e.profiles.Load()
	if err != nil {
		return
	}
	if p.Name != "" {
		e.profile.Name = p.Name
	}
	if p.Lang != "" && e.bank != nil && e.bank.Has(p.Lang) {
		e.profile.Lang = p.Lang
	}
	if p.DurationSec >= 1 {
		e.profile.DurationSec = p.DurationSec
	}
	e.profile.BestWPM = p.BestWPM
	e.profile.BestAccuracy = p.BestAccuracy
	e.profile.TotalSessions = p.TotalSessions
	e.profile.UpdatedAt = p.UpdatedAt
}

func (e *Engine) expired(now time.Time) bool {
	if e.totals.StartedAt.IsZero() {
		return false
	}
	return now.Sub(e.totals.StartedAt) >= e.duration()
}

func (e *Engine) duration() time.Duration {
	return time.Duration(e.profile.DurationSec) * time.Second
}

func (e *Engine) notifyPhase() {
	if e.rend != nil {
		e.rend.PhaseChanged(e.phase)
	}
}

func (e *Engine) notifyProgress(p Progress) {
	if e.rend != nil {
		e.rend.ProgressUpdated(p)
	}
}

func (e *Engine) notifyResult() {
	if e.rend != nil {
		e.rend.ResultReady(e.result)
	}
}
