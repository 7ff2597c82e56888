// Package main provides the CLI entrypoint for typesprint.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/velichenko/typesprint/internal/config"
	"github.com/velichenko/typesprint/internal/model"
	"github.com/velichenko/typesprint/internal/sentences"
	"github.com/velichenko/typesprint/internal/stats"
	"github.com/velichenko/typesprint/internal/store"
	"github.com/velichenko/typesprint/internal/tui"
)

const (
	defaultLang        = "en"
	defaultDuration    = 60
	defaultCurveWindow = 5
)

var (
	playName     string
	playLang     string
	playDuration int

	statsLang   string
	statsSince  string
	statsLast   int
	statsWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesprint",
		Short:         "Timed terminal typing sprints",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playName, "name", "", "player name (min 2 characters)")
	rootCmd.Flags().StringVar(&playLang, "lang", defaultLang, "sentence language code")
	rootCmd.Flags().IntVar(&playDuration, "duration", defaultDuration, "session length in seconds")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("typesprint needs a terminal; stdout is not a TTY")
	}

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "name", &playName, fileCfg.Play.Name)
	applyStringConfig(cmd, "lang", &playLang, fileCfg.Play.Lang)
	applyIntConfig(cmd, "duration", &playDuration, fileCfg.Play.Duration)

	cfg := model.Config{
		Name:        playName,
		Lang:        playLang,
		DurationSec: playDuration,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	bank, err := buildBank()
	if err != nil {
		return err
	}
	if !bank.Has(cfg.Lang) {
		logErrf("no sentences for language %q, falling back to %q\n", cfg.Lang, sentences.DefaultLang)
		cfg.Lang = sentences.DefaultLang
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	gateway := store.NewGateway(context.Background(), st)
	model := tui.NewModel(cfg, bank, gateway)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// buildBank merges user sentence files over the built-in corpora.
func buildBank() (*sentences.Bank, error) {
	bank := sentences.Builtin()
	if err := bank.LoadDir(config.DefaultSentenceDir()); err != nil {
		return nil, fmt.Errorf("failed to load sentence files: %w", err)
	}
	return bank, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List available sentence languages",
		Args:  cobra.NoArgs,
		RunE:  runLangsCmd,
	}
}

func runLangsCmd(cmd *cobra.Command, _ []string) error {
	bank, err := buildBank()
	if err != nil {
		return err
	}
	for _, code := range bank.Languages() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%d sentences)\n", code, bank.Size(code)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show session history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsWindow, "window", defaultCurveWindow, "moving average window for the trend")
	return cmd
}

func runStatsCmd(_ *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Lang:        statsLang,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsWindow,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	rep, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	return stats.RenderReport(os.Stdout, rep, cfg.CurveWindow, stats.TerminalWidth())
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesprint configuration
# Uncomment a value to enable it. CLI flags override config values.

[play]
# name = "..."        # Player name (min 2 characters)
# lang = %q           # Sentence language code
# duration = %d       # Session length in seconds
`,
		defaultLang,
		defaultDuration,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DurationSec < 1 {
		return fmt.Errorf("--duration must be >= 1")
	}
	if cfg.Name != "" && len([]rune(strings.TrimSpace(cfg.Name))) < 2 {
		return fmt.Errorf("--name must be at least 2 characters")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
