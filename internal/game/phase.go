package game

// Phase identifies one state of the session lifecycle. Exactly one
// phase is current at any time; transitions are the sole mutator.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseName
	PhaseLanguage
	PhaseDuration
	PhaseCountdown
	PhasePlaying
	PhaseTimeUp
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseName:
		return "awaiting-name"
	case PhaseLanguage:
		return "awaiting-language"
	case PhaseDuration:
		return "awaiting-duration"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseTimeUp:
		return "time-up"
	case PhaseResults:
		return "showing-results"
	}
	return "unknown"
}

// countdownStart is the number the pre-game countdown begins at.
const countdownStart = 5

var countdownMessages = [...]string{
	"Go!",
	"Get ready...",
	"Eyes on the text.",
	"Fingers on the home row.",
	"Take a breath.",
}

// CountdownMessage returns the instruction shown while the given
// count remains. Counts above the message range reuse the opening
// instruction; index 0 is the go signal.
func CountdownMessage(remaining int) string {
	if remaining < 0 {
		remaining = 0
	}
	if remaining >= len(countdownMessages) {
		remaining = len(countdownMessages) - 1
	}
	return countdownMessages[remaining]
}

// canTransition reports whether the lifecycle allows moving between
// two phases. Self edges exist on Countdown for ticks and on Playing
// for starting the next sentence. Everything else is rejected.
func canTransition(from, to Phase) bool {
	switch from {
	case PhaseIdle:
		return to == PhaseName
	case PhaseName:
		return to == PhaseLanguage
	case PhaseLanguage:
		return to == PhaseDuration
	case PhaseDuration:
		return to == PhaseCountdown
	case PhaseCountdown:
		return to == PhaseCountdown || to == PhasePlaying
	case PhasePlaying:
		return to == PhasePlaying || to == PhaseTimeUp
	case PhaseTimeUp:
		return to == PhaseResults
	case PhaseResults:
		return to == PhaseCountdown || to == PhaseLanguage || to == PhaseIdle
	}
	return false
}
