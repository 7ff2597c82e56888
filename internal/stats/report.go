package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/velichenko/typesprint/internal/model"
	"github.com/velichenko/typesprint/internal/store"
)

// Report contains precomputed data for stats rendering. Profile is nil
// when no profile has been saved yet.
type Report struct {
	Profile  *model.Profile
	Sessions []model.SessionRecord
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st *store.Store, cfg model.StatsConfig) (Report, error) {
	sessions, err := st.ListRecords(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}

	rep := Report{Sessions: sessions}
	profile, err := st.LoadProfile(ctx)
	switch {
	case err == nil:
		rep.Profile = &profile
	case errors.Is(err, store.ErrNoProfile):
	default:
		return Report{}, err
	}
	return rep, nil
}

// RenderReport prints the profile records, the session summary, the
// recent sessions table and the speed trend.
func RenderReport(w io.Writer, rep Report, window, totalWidth int) error {
	if rep.Profile != nil {
		if err := renderProfile(w, *rep.Profile); err != nil {
			return err
		}
	}
	if len(rep.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	if err := renderSummary(w, Summarize(rep.Sessions)); err != nil {
		return err
	}
	if err := renderSessions(w, rep.Sessions); err != nil {
		return err
	}
	return renderTrend(w, rep.Sessions, window, totalWidth)
}

func renderProfile(w io.Writer, p model.Profile) error {
	if _, err := fmt.Fprintf(w, "Player: %s\n", p.Name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", p.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Accuracy: %.2f%%\n", p.BestAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Total Sessions: %d\n", p.TotalSessions); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderSummary(w io.Writer, s Summary) error {
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", s.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg WPM: %.2f\n", s.AvgWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best WPM: %.2f\n", s.BestWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.2f%%\n", s.AvgAccuracy); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sentences: %d\n", s.SentencesCompleted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Active: %s\n", s.ActiveTime.Round(time.Second)); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderSessions(w io.Writer, recs []model.SessionRecord) error {
	headers := []string{"When", "Lang", "WPM", "Accuracy", "Sentences", "Active"}
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.FinishedAt.Format("2006-01-02 15:04"),
			r.Lang,
			fmt.Sprintf("%.1f", r.WPM),
			fmt.Sprintf("%.1f%%", r.Accuracy),
			fmt.Sprintf("%d", r.SentencesCompleted),
			(time.Duration(r.ActiveMs) * time.Millisecond).Round(time.Second).String(),
		}
	}
	if _, err := fmt.Fprintln(w, "Recent Sessions"); err != nil {
		return err
	}
	table := formatTable(headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true})
	if _, err := fmt.Fprint(w, table); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

func renderTrend(w io.Writer, recs []model.SessionRecord, window, totalWidth int) error {
	if len(recs) < 2 {
		return nil
	}
	if totalWidth <= 0 {
		totalWidth = terminalWidthBackup
	}
	wpms := WPMSeries(recs)
	maxPoints := totalWidth - len("smoothed ")
	if maxPoints < 1 {
		maxPoints = 1
	}
	if len(wpms) > maxPoints {
		wpms = wpms[len(wpms)-maxPoints:]
	}
	smoothed := MovingAverage(wpms, window)
	minVal, maxVal := seriesMinMax(wpms)

	if _, err := fmt.Fprintln(w, "WPM Trend"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "raw      %s\n", Sparkline(wpms)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "smoothed %s\n", Sparkline(smoothed)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "min=%.2f max=%.2f\n", minVal, maxVal)
	return err
}
