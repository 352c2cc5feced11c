package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/wordrush/internal/model"
)

const defaultTopMissed = 10

// HistorySource is the storage a history report reads from.
type HistorySource interface {
	ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionAggregate, error)
	MissedWordsForSessions(ctx context.Context, sessionIDs []string) ([]model.WordAggregate, error)
}

// Report contains precomputed data for history rendering.
type Report struct {
	Sessions []model.SessionAggregate
	Missed   []model.WordAggregate
}

// BuildReport loads and prepares data for history rendering.
func BuildReport(ctx context.Context, src HistorySource, cfg model.HistoryConfig) (Report, error) {
	sessions, err := src.ListSessions(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	if cfg.Last > 0 && len(sessions) > cfg.Last {
		sessions = sessions[len(sessions)-cfg.Last:]
	}
	missed, err := src.MissedWordsForSessions(ctx, sessionIDs(sessions))
	if err != nil {
		return Report{}, err
	}
	top := cfg.TopMissed
	if top <= 0 {
		top = defaultTopMissed
	}
	return Report{
		Sessions: sessions,
		Missed:   TopMissed(missed, top),
	}, nil
}

// Summary holds aggregate figures over a set of sessions.
type Summary struct {
	Sessions    int
	Attempted   int
	Correct     int
	AvgAccuracy float64
	BestAcc     float64
	AvgWPM      float64
}

// Summarize computes aggregate figures for sessions.
func Summarize(sessions []model.SessionAggregate) Summary {
	var s Summary
	if len(sessions) == 0 {
		return s
	}
	var accSum, wpmSum float64
	for _, sess := range sessions {
		acc := Accuracy(sess.Correct, sess.Total)
		accSum += acc
		wpmSum += WordsPerMinute(sess.Total, sess.DurationMs)
		if acc > s.BestAcc {
			s.BestAcc = acc
		}
		s.Attempted += sess.Total
		s.Correct += sess.Correct
	}
	s.Sessions = len(sessions)
	s.AvgAccuracy = accSum / float64(len(sessions))
	s.AvgWPM = wpmSum / float64(len(sessions))
	return s
}

// AccuracySeries returns per-session accuracy percentages in order.
func AccuracySeries(sessions []model.SessionAggregate) []float64 {
	out := make([]float64, len(sessions))
	for i, s := range sessions {
		out[i] = Accuracy(s.Correct, s.Total) * 100
	}
	return out
}

// SessionRows formats sessions as table rows, newest last.
func SessionRows(sessions []model.SessionAggregate) [][]string {
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, []string{
			s.EndedAt.Local().Format("2006-01-02 15:04"),
			s.Difficulty.String(),
			fmt.Sprintf("%d/%d", s.Correct, s.Total),
			fmt.Sprintf("%.1f%%", Accuracy(s.Correct, s.Total)*100),
			Rate(s.Correct, s.Total).Label(),
		})
	}
	return rows
}

// SessionHeaders are the column titles matching SessionRows.
var SessionHeaders = []string{"Ended", "Difficulty", "Score", "Accuracy", "Rating"}

// RenderHistory prints the summary, session table and most missed words.
func RenderHistory(w io.Writer, report Report) error {
	if len(report.Sessions) == 0 {
		_, err := fmt.Fprintln(w, "No sessions found.")
		return err
	}
	sum := Summarize(report.Sessions)
	if _, err := fmt.Fprintln(w, "Summary"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Sessions: %d\n", sum.Sessions); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Words: %d correct of %d\n", sum.Correct, sum.Attempted); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Accuracy: %.1f%%\n", sum.AvgAccuracy*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best Accuracy: %.1f%%\n", sum.BestAcc*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg Words/min: %.1f\n", sum.AvgWPM); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Trend: [%s]\n\n", Sparkline(AccuracySeries(report.Sessions))); err != nil {
		return err
	}

	lines := formatTable(SessionHeaders, SessionRows(report.Sessions), map[int]bool{2: true, 3: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return RenderMissed(w, report.Missed)
}

// RenderMissed prints the most missed words table.
func RenderMissed(w io.Writer, missed []model.WordAggregate) error {
	if len(missed) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nMost Missed"); err != nil {
		return err
	}
	rows := make([][]string, 0, len(missed))
	for _, m := range missed {
		rows = append(rows, []string{m.Word, fmt.Sprintf("%d", m.Misses)})
	}
	for _, line := range formatTable([]string{"Word", "Misses"}, rows, map[int]bool{1: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func sessionIDs(sessions []model.SessionAggregate) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.SessionID
	}
	return ids
}
