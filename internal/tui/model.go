package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/velichenko/typesprint/internal/game"
	"github.com/velichenko/typesprint/internal/model"
)

// timerTickMsg is sent every second to drive the countdown and the
// session-timeout poll.
type timerTickMsg time.Time

// timeUpDoneMsg ends the brief "time's up" flash.
type timeUpDoneMsg struct{}

// timeUpFlash is how long the "time's up" screen stays before the
// results appear.
const timeUpFlash = 1500 * time.Millisecond

var (
	colorFg     = lipgloss.Color("#F0F0F0")
	colorRed    = lipgloss.Color("#FF4D4F")
	colorDim    = lipgloss.Color("#8C8C8C")
	colorAccent = lipgloss.Color("#C89A3A")
	colorFooter = lipgloss.Color("#6E6E6E")

	correctStyle     = lipgloss.NewStyle().Foreground(colorFg)
	incorrectStyle   = lipgloss.NewStyle().Foreground(colorRed)
	pendingStyle     = lipgloss.NewStyle().Foreground(colorDim)
	currentWordStyle = lipgloss.NewStyle().Foreground(colorAccent)
	footerStyle      = lipgloss.NewStyle().Foreground(colorFooter)
	titleStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	hintStyle        = lipgloss.NewStyle().Foreground(colorFooter)
	errorStyle       = lipgloss.NewStyle().Foreground(colorRed)
	bigCountStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cardStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(1, 3)
)

// Model implements the Bubble Tea session UI. It owns the engine and
// receives its outbound notifications, so it doubles as the engine's
// renderer.
type Model struct {
	cfg    model.Config
	engine *game.Engine

	width  int
	height int

	nameInput textinput.Model
	nameErr   string

	langChoice string
	langForm   *huh.Form
	durChoice  int
	durForm    *huh.Form

	targetRunes []rune
	inputRunes  []rune
	progress    game.Progress
	result      game.Result
	haveResult  bool
}

var _ game.Renderer = (*Model)(nil)

// NewModel builds the session UI around a fresh engine. Config
// values from flags or the config file become prefills for the
// setup screens.
func NewModel(cfg model.Config, bank game.SentenceSource, profiles game.ProfileGateway) *Model {
	m := &Model{cfg: cfg}
	m.engine = game.New(game.Options{
		Sentences: bank,
		Profiles:  profiles,
		Renderer:  m,
	})
	return m
}

// PhaseChanged implements game.Renderer. Re-entering Playing means a
// new sentence is up, so the typed input resets with it.
func (m *Model) PhaseChanged(p game.Phase) {
	if p == game.PhasePlaying {
		m.targetRunes = []rune(m.engine.Sentence())
		m.inputRunes = nil
		m.progress = game.Progress{}
	}
}

// ProgressUpdated implements game.Renderer.
func (m *Model) ProgressUpdated(p game.Progress) {
	m.progress = p
}

// ResultReady implements game.Renderer.
func (m *Model) ResultReady(r game.Result) {
	m.result = r
	m.haveResult = true
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case timerTickMsg:
		return m.handleTick()
	case timeUpDoneMsg:
		if err := m.engine.ShowResults(); err != nil {
			logErrf("cannot show results: %v\n", err)
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.engine.Phase() {
	case game.PhaseIdle:
		return m.updateIdle(msg)
	case game.PhaseName:
		return m.updateName(msg)
	case game.PhaseLanguage:
		return m.updateLanguage(msg)
	case game.PhaseDuration:
		return m.updateDuration(msg)
	case game.PhasePlaying:
		return m.updatePlaying(msg)
	case game.PhaseResults:
		return m.updateResults(msg)
	}
	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	switch m.engine.Phase() {
	case game.PhaseCountdown:
		if err := m.engine.Tick(); err != nil {
			logErrf("countdown tick rejected: %v\n", err)
			return m, nil
		}
		return m, tickCmd()
	case game.PhasePlaying:
		if m.engine.CheckTimeout() {
			return m, flashCmd()
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *Model) updateIdle(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc":
		return m, tea.Quit
	case "enter":
		if err := m.engine.Begin(); err != nil {
			logErrf("cannot start: %v\n", err)
			return m, nil
		}
		prefill := m.cfg.Name
		if prefill == "" {
			prefill = m.engine.Profile().Name
		}
		m.nameInput = newNameInput(prefill)
		m.nameErr = ""
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		if err := m.engine.SetName(m.nameInput.Value()); err != nil {
			m.nameErr = err.Error()
			return m, nil
		}
		m.nameErr = ""
		return m.enterLanguage()
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) enterLanguage() (tea.Model, tea.Cmd) {
	m.langChoice = m.engine.Profile().Lang
	if m.cfg.Lang != "" {
		m.langChoice = m.cfg.Lang
	}
	m.langForm = languageForm(m.engine.Languages(), &m.langChoice)
	return m, m.langForm.Init()
}

func (m *Model) updateLanguage(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.langForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.langForm = f
	}
	if m.langForm.State != huh.StateCompleted {
		return m, cmd
	}
	if !m.engine.SetLanguage(m.langChoice) {
		// Options come from the engine, so a rejection here means the
		// prefill pointed at a language that disappeared. Re-ask.
		return m.enterLanguage()
	}
	return m.enterDuration()
}

func (m *Model) enterDuration() (tea.Model, tea.Cmd) {
	m.durChoice = m.engine.Profile().DurationSec
	if m.cfg.DurationSec > 0 {
		m.durChoice = m.cfg.DurationSec
	}
	m.durForm = durationForm(&m.durChoice)
	return m, m.durForm.Init()
}

func (m *Model) updateDuration(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.durForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.durForm = f
	}
	if m.durForm.State != huh.StateCompleted {
		return m, cmd
	}
	if err := m.engine.SetDuration(m.durChoice); err != nil {
		logErrf("cannot start countdown: %v\n", err)
		return m, nil
	}
	return m, tickCmd()
}

func (m *Model) updatePlaying(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.Type {
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.inputRunes) == 0 {
			return m, nil
		}
		m.inputRunes = m.inputRunes[:len(m.inputRunes)-1]
		return m, m.submitInput()
	case tea.KeySpace:
		return m, m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		return m, m.typeRunes(key.Runes)
	}
	return m, nil
}

func (m *Model) typeRunes(runes []rune) tea.Cmd {
	for _, r := range runes {
		if len(m.inputRunes) >= len(m.targetRunes) {
			break
		}
		m.inputRunes = append(m.inputRunes, r)
	}
	return m.submitInput()
}

// submitInput hands the current input to the engine. A completed
// sentence re-enters Playing with a fresh target; a session that ran
// out mid-keystroke lands in TimeUp and starts the flash.
func (m *Model) submitInput() tea.Cmd {
	if _, err := m.engine.Type(string(m.inputRunes)); err != nil {
		logErrf("typed text rejected: %v\n", err)
		return nil
	}
	if m.engine.Phase() == game.PhaseTimeUp {
		return flashCmd()
	}
	return nil
}

func (m *Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "enter", "r":
		if err := m.engine.Restart(); err != nil {
			logErrf("cannot restart: %v\n", err)
			return m, nil
		}
		return m, tickCmd()
	case "s":
		if err := m.engine.ChangeSettings(); err != nil {
			logErrf("cannot change settings: %v\n", err)
			return m, nil
		}
		return m.enterLanguage()
	case "n":
		if err := m.engine.NewSession(); err != nil {
			logErrf("cannot reset: %v\n", err)
		}
		return m, nil
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.engine.Phase() {
	case game.PhaseIdle:
		content = m.viewIdle()
	case game.PhaseName:
		content = m.viewName()
	case game.PhaseLanguage:
		content = m.langForm.View()
	case game.PhaseDuration:
		content = m.durForm.View()
	case game.PhaseCountdown:
		content = m.viewCountdown()
	case game.PhasePlaying:
		return m.viewPlaying()
	case game.PhaseTimeUp:
		content = titleStyle.Render("Time's up!")
	case game.PhaseResults:
		content = m.viewResults()
	}
	return m.centered(content)
}

func (m *Model) centered(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) viewIdle() string {
	lines := []string{
		titleStyle.Render("typesprint"),
		"",
		"Race the clock. Type the sentence before it runs out.",
	}
	p := m.engine.Profile()
	if p.TotalSessions > 0 {
		lines = append(lines, "",
			footerStyle.Render(fmt.Sprintf("%s · best %.1f WPM · best %.1f%% · %d sessions",
				p.Name, p.BestWPM, p.BestAccuracy, p.TotalSessions)))
	}
	lines = append(lines, "", hintStyle.Render("enter start · q quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewName() string {
	lines := []string{
		titleStyle.Render("Who is typing?"),
		"",
		m.nameInput.View(),
	}
	if m.nameErr != "" {
		lines = append(lines, "", errorStyle.Render(m.nameErr))
	}
	lines = append(lines, "", hintStyle.Render("enter confirm"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewCountdown() string {
	n := m.engine.Countdown()
	return strings.Join([]string{
		bigCountStyle.Render(fmt.Sprintf("%d", n)),
		"",
		game.CountdownMessage(n),
	}, "\n")
}

func (m *Model) viewPlaying() string {
	if len(m.targetRunes) == 0 {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return renderTarget(m.targetRunes, m.inputRunes, 0)
	}
	contentWidth := int(float64(m.width) * 0.70)
	if contentWidth < 1 {
		contentWidth = 1
	}
	wrapped := renderTarget(m.targetRunes, m.inputRunes, contentWidth)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	footer := m.renderFooter()
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderFooter() string {
	progress := 0
	if len(m.targetRunes) > 0 {
		progress = m.progress.TypedCount * 100 / len(m.targetRunes)
	}
	segments := []string{
		formatClock(m.engine.Remaining()) + " left",
		fmt.Sprintf("Progress %d%%", progress),
		fmt.Sprintf("%.1f WPM · %.1f%%", m.engine.LiveWPM(), m.engine.LiveAccuracy()),
		fmt.Sprintf("Session %.1f WPM · %d sentences", m.engine.SessionWPM(), m.engine.SentencesCompleted()),
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) viewResults() string {
	if !m.haveResult {
		return ""
	}
	r := m.result
	rows := []string{
		titleStyle.Render("Session complete"),
		"",
		fmt.Sprintf("WPM        %6.1f", r.WPM),
		fmt.Sprintf("Accuracy   %6.1f%%", r.Accuracy),
		fmt.Sprintf("Sentences  %6d", r.SentencesCompleted),
		fmt.Sprintf("Typed      %6d chars", r.TypedChars),
		fmt.Sprintf("Correct    %6d chars", r.CorrectChars),
		fmt.Sprintf("Time       %6s", formatClock(r.TimeSpent)),
	}
	card := cardStyle.Render(strings.Join(rows, "\n"))
	return strings.Join([]string{
		card,
		"",
		game.Recommendation(r.WPM, r.Accuracy),
		"",
		hintStyle.Render("enter/r restart · s settings · n new session · q quit"),
	}, "\n")
}

// formatClock renders a duration as m:ss.
func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func flashCmd() tea.Cmd {
	return tea.Tick(timeUpFlash, func(time.Time) tea.Msg {
		return timeUpDoneMsg{}
	})
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
