package tui

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// sessionDurations are the offered session lengths in seconds.
var sessionDurations = []int{15, 30, 60, 120}

func newNameInput(prefill string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Your name"
	ti.CharLimit = 40
	ti.Width = 30
	ti.SetValue(prefill)
	ti.Focus()
	return ti
}

func languageForm(langs []string, value *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(langs))
	for _, code := range langs {
		opts = append(opts, huh.NewOption(code, code))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Language").
				Options(opts...).
				Value(value),
		),
	).WithTheme(appHuhTheme()).WithShowHelp(false)
}

func durationForm(value *int) *huh.Form {
	durations := sessionDurations
	if *value > 0 && !slices.Contains(durations, *value) {
		durations = append([]int{*value}, durations...)
		slices.Sort(durations)
	}
	opts := make([]huh.Option[int], 0, len(durations))
	for _, d := range durations {
		opts = append(opts, huh.NewOption(fmt.Sprintf("%d seconds", d), d))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Session length").
				Options(opts...).
				Value(value),
		),
	).WithTheme(appHuhTheme()).WithShowHelp(false)
}

// appHuhTheme restyles the huh base theme with the app palette.
func appHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(colorAccent)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(colorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(colorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(colorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(colorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(colorDim)

	return t
}
