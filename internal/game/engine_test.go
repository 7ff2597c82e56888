package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velichenko/typesprint/internal/model"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type fixedBank struct{ sentence string }

func (b fixedBank) Pick(lang string) string { return b.sentence }
func (b fixedBank) Has(lang string) bool    { return lang == "en" || lang == "de" }
func (b fixedBank) Languages() []string     { return []string{"de", "en"} }

type spyGateway struct {
	stored   model.Profile
	loadErr  error
	saveErr  error
	recErr   error
	saved    []model.Profile
	recorded []model.SessionRecord
}

func (g *spyGateway) Load() (model.Profile, error) { return g.stored, g.loadErr }

func (g *spyGateway) Save(p model.Profile) error {
	g.saved = append(g.saved, p)
	return g.saveErr
}

func (g *spyGateway) Record(r model.SessionRecord) error {
	g.recorded = append(g.recorded, r)
	return g.recErr
}

type spyRenderer struct {
	phases   []Phase
	progress []Progress
	results  []Result
}

func (r *spyRenderer) PhaseChanged(p Phase)       { r.phases = append(r.phases, p) }
func (r *spyRenderer) ProgressUpdated(p Progress) { r.progress = append(r.progress, p) }
func (r *spyRenderer) ResultReady(res Result)     { r.results = append(r.results, res) }

func newTestEngine(sentence string) (*Engine, *fakeClock, *spyGateway, *spyRenderer) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	gw := &spyGateway{}
	rend := &spyRenderer{}
	e := New(Options{
		Clock:     clock,
		Sentences: fixedBank{sentence: sentence},
		Profiles:  gw,
		Renderer:  rend,
	})
	return e, clock, gw, rend
}

// drive walks the engine through configuration and the countdown
// into the Playing phase.
func drive(t *testing.T, e *Engine, clock *fakeClock, seconds int) {
	t.Helper()
	require.NoError(t, e.Begin())
	require.NoError(t, e.SetName("Mia"))
	require.True(t, e.SetLanguage("en"))
	require.NoError(t, e.SetDuration(seconds))
	for e.Phase() == PhaseCountdown {
		clock.advance(time.Second)
		require.NoError(t, e.Tick())
	}
	require.Equal(t, PhasePlaying, e.Phase())
}

func TestEngine_StartsIdleWithDefaults(t *testing.T) {
	e, _, _, _ := newTestEngine("cat")

	assert.Equal(t, PhaseIdle, e.Phase())
	assert.Equal(t, "en", e.Profile().Lang)
	assert.Equal(t, 60, e.Profile().DurationSec)
	assert.Equal(t, 60*time.Second, e.Remaining())
	_, ok := e.Result()
	assert.False(t, ok)
}

func TestEngine_Begin_LoadsStoredProfile(t *testing.T) {
	e, _, gw, _ := newTestEngine("cat")
	gw.stored = model.Profile{
		Name:          "Ada",
		Lang:          "de",
		DurationSec:   90,
		BestWPM:       42,
		BestAccuracy:  97.5,
		TotalSessions: 12,
	}

	require.NoError(t, e.Begin())

	assert.Equal(t, PhaseName, e.Phase())
	p := e.Profile()
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, "de", p.Lang)
	assert.Equal(t, 90, p.DurationSec)
	assert.Equal(t, 42.0, p.BestWPM)
	assert.Equal(t, 12, p.TotalSessions)
}

func TestEngine_Begin_AbsorbsLoadFailure(t *testing.T) {
	e, _, gw, _ := newTestEngine("cat")
	gw.loadErr = errors.New("disk on fire")

	require.NoError(t, e.Begin())

	assert.Equal(t, PhaseName, e.Phase())
	assert.Equal(t, model.Profile{Lang: "en", DurationSec: 60}, e.Profile())
}

func TestEngine_Begin_SanitizesStoredProfile(t *testing.T) {
	e, _, gw, _ := newTestEngine("cat")
	gw.stored = model.Profile{Name: "Ada", Lang: "tlh", DurationSec: 0}

	require.NoError(t, e.Begin())

	p := e.Profile()
	assert.Equal(t, "en", p.Lang, "unknown stored language falls back")
	assert.Equal(t, 60, p.DurationSec, "unset duration falls back")
	assert.Equal(t, "Ada", p.Name)
}

func TestEngine_SetName_RejectsTooShort(t *testing.T) {
	e, _, _, _ := newTestEngine("cat")
	require.NoError(t, e.Begin())

	assert.ErrorIs(t, e.SetName("A"), ErrNameTooShort)
	assert.ErrorIs(t, e.SetName("  B  "), ErrNameTooShort)
	assert.Equal(t, PhaseName, e.Phase())
	assert.Empty(t, e.Profile().Name)

	require.NoError(t, e.SetName("  Jo  "))
	assert.Equal(t, "Jo", e.Profile().Name)
	assert.Equal(t, PhaseLanguage, e.Phase())
}

func TestEngine_SetLanguage_UnknownRejectedSilently(t *testing.T) {
	e, _, _, _ := newTestEngine("cat")
	require.NoError(t, e.Begin())
	require.NoError(t, e.SetName("Mia"))

	assert.False(t, e.SetLanguage("tlh"))
	assert.Equal(t, PhaseLanguage, e.Phase())
	assert.Equal(t, "en", e.Profile().Lang)

	assert.True(t, e.SetLanguage("de"))
	assert.Equal(t, "de", e.Profile().Lang)
	assert.Equal(t, PhaseDuration, e.Phase())
}

func TestEngine_SetDuration_CoercesToMinimum(t *testing.T) {
	e, _, _, _ := newTestEngine("cat")
	require.NoError(t, e.Begin())
	require.NoError(t, e.SetName("Mia"))
	require.True(t, e.SetLanguage("en"))

	require.NoError(t, e.SetDuration(0))

	assert.Equal(t, 1, e.Profile().DurationSec)
	assert.Equal(t, PhaseCountdown, e.Phase())
}

func TestEngine_Countdown_TicksDownAndStartsPlay(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	require.NoError(t, e.Begin())
	require.NoError(t, e.SetName("Mia"))
	require.True(t, e.SetLanguage("en"))
	require.NoError(t, e.SetDuration(30))

	require.Equal(t, PhaseCountdown, e.Phase())
	assert.Equal(t, countdownStart, e.Countdown())

	for want := 4; want >= 1; want-- {
		clock.advance(time.Second)
		require.NoError(t, e.Tick())
		assert.Equal(t, PhaseCountdown, e.Phase())
		assert.Equal(t, want, e.Countdown())
	}

	clock.advance(time.Second)
	require.NoError(t, e.Tick())

	assert.Equal(t, PhasePlaying, e.Phase())
	assert.Equal(t, "cat", e.Sentence())
	assert.Equal(t, 30*time.Second, e.Remaining())
}

func TestEngine_Type_ExactCompletionScoresAndContinues(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 60)

	p, err := e.Type("ca")
	require.NoError(t, err)
	assert.Equal(t, Progress{TypedCount: 2, CorrectCount: 2}, p)
	assert.Equal(t, 0, e.SentencesCompleted())

	clock.advance(2 * time.Second)
	p, err = e.Type("cat")
	require.NoError(t, err)
	assert.Equal(t, Progress{TypedCount: 3, CorrectCount: 3, Complete: true}, p)

	assert.Equal(t, PhasePlaying, e.Phase())
	assert.Equal(t, 1, e.SentencesCompleted())
	assert.Equal(t, "cat", e.Sentence())
	assert.Empty(t, e.attempt.Typed, "fresh attempt after completion")
	assert.Equal(t, 100.0, e.LiveAccuracy())
}

func TestEngine_Type_TypoCompletionAdvancesWithoutScoring(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 60)

	p, err := e.Type("cbt")
	require.NoError(t, err)

	assert.Equal(t, Progress{TypedCount: 3, CorrectCount: 2, Complete: true}, p)
	assert.Equal(t, PhasePlaying, e.Phase(), "phase advances to the next sentence")
	assert.Equal(t, 0, e.SentencesCompleted(), "score requires an exact match")
}

func TestEngine_LiveMetrics_StartFromFirstKeystroke(t *testing.T) {
	e, clock, _, _ := newTestEngine("The quick brown fox jumps over the lazy dog.")
	drive(t, e, clock, 60)

	// A long pause before the first keystroke is think time, not
	// typing time.
	clock.advance(20 * time.Second)
	_, err := e.Type("The quick ")
	require.NoError(t, err)
	clock.advance(2 * time.Second)

	assert.InDelta(t, 60.0, e.LiveWPM(), 0.001)
	assert.Equal(t, 100.0, e.LiveAccuracy())
	assert.Equal(t, 38*time.Second, e.Remaining())
}

func TestEngine_CheckTimeout_EndsSessionMidSentence(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 30)

	_, err := e.Type("ca")
	require.NoError(t, err)

	clock.advance(29 * time.Second)
	assert.False(t, e.CheckTimeout())
	assert.Equal(t, PhasePlaying, e.Phase())

	clock.advance(2 * time.Second)
	assert.True(t, e.CheckTimeout())
	assert.Equal(t, PhaseTimeUp, e.Phase())

	res, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, 2, res.TypedChars)
	assert.Equal(t, 2, res.CorrectChars)
	assert.Equal(t, 0, res.SentencesCompleted, "mid-sentence cut is not a completion")
	assert.Equal(t, 31*time.Second, res.TimeSpent)
	assert.Equal(t, 100.0, res.Accuracy)

	_, err = e.Type("cat")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestEngine_Type_DetectsExpiryItself(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 30)

	_, err := e.Type("c")
	require.NoError(t, err)

	clock.advance(31 * time.Second)
	p, err := e.Type("ca")
	require.NoError(t, err)

	assert.Equal(t, 2, p.TypedCount)
	assert.Equal(t, PhaseTimeUp, e.Phase())
	_, ok := e.Result()
	assert.True(t, ok)
}

func TestEngine_EndSession_PersistsRecordAndBests(t *testing.T) {
	e, clock, gw, _ := newTestEngine("cat")
	gw.stored = model.Profile{Name: "Mia", BestWPM: 2.5, BestAccuracy: 90, TotalSessions: 7}
	drive(t, e, clock, 5)

	_, err := e.Type("ca")
	require.NoError(t, err)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())

	require.Len(t, gw.saved, 1)
	saved := gw.saved[0]
	assert.InDelta(t, 4.0, saved.BestWPM, 0.001, "2 chars over 6s beats the stored 2.5")
	assert.Equal(t, 100.0, saved.BestAccuracy)
	assert.Equal(t, 8, saved.TotalSessions)
	assert.Equal(t, clock.now, saved.UpdatedAt)

	require.Len(t, gw.recorded, 1)
	rec := gw.recorded[0]
	assert.Equal(t, "en", rec.Lang)
	assert.Equal(t, 5, rec.DurationSec)
	assert.InDelta(t, 4.0, rec.WPM, 0.001)
	assert.Equal(t, 100.0, rec.Accuracy)
	assert.Equal(t, 2, rec.TypedChars)
	assert.Equal(t, 2, rec.CorrectChars)
	assert.Equal(t, int64(6000), rec.ActiveMs)
	assert.Equal(t, 0, rec.SentencesCompleted)
	assert.Equal(t, clock.now, rec.FinishedAt)
}

func TestEngine_EndSession_KeepsBetterStoredBests(t *testing.T) {
	e, clock, gw, _ := newTestEngine("cat")
	gw.stored = model.Profile{Name: "Mia", BestWPM: 200, BestAccuracy: 100, TotalSessions: 1}
	drive(t, e, clock, 5)

	_, err := e.Type("ca")
	require.NoError(t, err)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())

	require.Len(t, gw.saved, 1)
	assert.Equal(t, 200.0, gw.saved[0].BestWPM)
	assert.Equal(t, 2, gw.saved[0].TotalSessions)
}

func TestEngine_EndSession_AbsorbsGatewayFailures(t *testing.T) {
	e, clock, gw, _ := newTestEngine("cat")
	gw.saveErr = errors.New("disk full")
	gw.recErr = errors.New("table locked")
	drive(t, e, clock, 5)

	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())

	assert.Equal(t, PhaseTimeUp, e.Phase())
	_, ok := e.Result()
	assert.True(t, ok, "result survives persistence failure")
}

func TestEngine_ShowResults_ThenRestart(t *testing.T) {
	e, clock, _, rend := newTestEngine("cat")
	drive(t, e, clock, 5)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())

	require.NoError(t, e.ShowResults())
	assert.Equal(t, PhaseResults, e.Phase())
	require.Len(t, rend.results, 1)

	require.NoError(t, e.Restart())
	assert.Equal(t, PhaseCountdown, e.Phase())
	assert.Equal(t, countdownStart, e.Countdown())
	_, ok := e.Result()
	assert.False(t, ok, "result discarded on restart")
}

func TestEngine_ChangeSettings_KeepsNameAndReturnsToLanguage(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 5)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())
	require.NoError(t, e.ShowResults())

	require.NoError(t, e.ChangeSettings())

	assert.Equal(t, PhaseLanguage, e.Phase())
	assert.Equal(t, "Mia", e.Profile().Name)
	_, ok := e.Result()
	assert.False(t, ok)
}

func TestEngine_NewSession_ReturnsToIdle(t *testing.T) {
	e, clock, _, _ := newTestEngine("cat")
	drive(t, e, clock, 5)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())
	require.NoError(t, e.ShowResults())

	require.NoError(t, e.NewSession())

	assert.Equal(t, PhaseIdle, e.Phase())
	require.NoError(t, e.Begin(), "a fresh run can start over")
}

func TestEngine_IllegalOperations_AreNoOps(t *testing.T) {
	e, _, _, _ := newTestEngine("cat")

	assert.ErrorIs(t, e.SetName("Mia"), ErrInvalidTransition)
	assert.False(t, e.SetLanguage("en"))
	assert.ErrorIs(t, e.SetDuration(30), ErrInvalidTransition)
	assert.ErrorIs(t, e.Tick(), ErrInvalidTransition)
	_, err := e.Type("x")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, e.CheckTimeout())
	assert.ErrorIs(t, e.ShowResults(), ErrInvalidTransition)
	assert.ErrorIs(t, e.Restart(), ErrInvalidTransition)
	assert.ErrorIs(t, e.ChangeSettings(), ErrInvalidTransition)
	assert.ErrorIs(t, e.NewSession(), ErrInvalidTransition)

	assert.Equal(t, PhaseIdle, e.Phase(), "nothing moved")
	assert.Equal(t, model.Profile{Lang: "en", DurationSec: 60}, e.Profile())

	require.NoError(t, e.Begin())
	assert.ErrorIs(t, e.Begin(), ErrInvalidTransition)
}

func TestEngine_RendererSeesEveryTransition(t *testing.T) {
	e, clock, _, rend := newTestEngine("cat")
	drive(t, e, clock, 60)

	_, err := e.Type("cat")
	require.NoError(t, err)
	clock.advance(61 * time.Second)
	require.True(t, e.CheckTimeout())
	require.NoError(t, e.ShowResults())

	want := []Phase{
		// configuration
		PhaseName, PhaseLanguage, PhaseDuration,
		// countdown armed, then four ticks
		PhaseCountdown, PhaseCountdown, PhaseCountdown, PhaseCountdown, PhaseCountdown,
		// go, then the next sentence after a completion
		PhasePlaying, PhasePlaying,
		PhaseTimeUp, PhaseResults,
	}
	assert.Equal(t, want, rend.phases)
	assert.Len(t, rend.progress, 1)
	assert.Len(t, rend.results, 1)
}

func TestEngine_WorksWithoutGatewayAndRenderer(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)}
	e := New(Options{Clock: clock, Sentences: fixedBank{sentence: "cat"}})

	drive(t, e, clock, 5)
	_, err := e.Type("cat")
	require.NoError(t, err)
	clock.advance(6 * time.Second)
	require.True(t, e.CheckTimeout())
	require.NoError(t, e.ShowResults())

	res, ok := e.Result()
	require.True(t, ok)
	assert.Equal(t, 1, res.SentencesCompleted)
}
