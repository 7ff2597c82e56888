package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition_EnumeratedEdgesOnly(t *testing.T) {
	all := []Phase{
		PhaseIdle, PhaseName, PhaseLanguage, PhaseDuration,
		PhaseCountdown, PhasePlaying, PhaseTimeUp, PhaseResults,
	}
	legal := map[Phase][]Phase{
		PhaseIdle:      {PhaseName},
		PhaseName:      {PhaseLanguage},
		PhaseLanguage:  {PhaseDuration},
		PhaseDuration:  {PhaseCountdown},
		PhaseCountdown: {PhaseCountdown, PhasePlaying},
		PhasePlaying:   {PhasePlaying, PhaseTimeUp},
		PhaseTimeUp:    {PhaseResults},
		PhaseResults:   {PhaseCountdown, PhaseLanguage, PhaseIdle},
	}

	for _, from := range all {
		allowed := map[Phase]bool{}
		for _, to := range legal[from] {
			allowed[to] = true
		}
		for _, to := range all {
			assert.Equal(t, allowed[to], canTransition(from, to), "%s to %s", from, to)
		}
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "awaiting-name", PhaseName.String())
	assert.Equal(t, "countdown", PhaseCountdown.String())
	assert.Equal(t, "playing", PhasePlaying.String())
	assert.Equal(t, "time-up", PhaseTimeUp.String())
	assert.Equal(t, "showing-results", PhaseResults.String())
	assert.Equal(t, "unknown", Phase(99).String())
}

func TestCountdownMessage_KeyedByRemaining(t *testing.T) {
	assert.Equal(t, "Go!", CountdownMessage(0))
	assert.Equal(t, "Get ready...", CountdownMessage(1))
	assert.Equal(t, "Eyes on the text.", CountdownMessage(2))
	assert.Equal(t, "Fingers on the home row.", CountdownMessage(3))
	assert.Equal(t, "Take a breath.", CountdownMessage(4))
}

func TestCountdownMessage_ClampsOutOfRange(t *testing.T) {
	assert.Equal(t, "Take a breath.", CountdownMessage(5))
	assert.Equal(t, "Take a breath.", CountdownMessage(42))
	assert.Equal(t, "Go!", CountdownMessage(-3))
}
