package stats

import (
	"fmt"
	"io"

	"github.com/verte-zerg/wordrush/internal/model"
)

// MaxShownWrong is how many wrong answers the results list verbatim.
const MaxShownWrong = 10

// RenderResults prints the end-of-session summary and rating.
func RenderResults(w io.Writer, out model.Outcome) error {
	if _, err := fmt.Fprintf(w, "Correct: %d / %d\n", out.Correct, out.Total); err != nil {
		return err
	}
	if out.Total > 0 {
		if _, err := fmt.Fprintf(w, "Accuracy: %.1f%%\n", Accuracy(out.Correct, out.Total)*100); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintln(w, "Accuracy: 0%"); err != nil {
			return err
		}
	}

	if len(out.Wrong) > 0 {
		if _, err := fmt.Fprintln(w, "\nWrong answers:"); err != nil {
			return err
		}
		shown := out.Wrong
		if len(shown) > MaxShownWrong {
			shown = shown[:MaxShownWrong]
		}
		for i, wa := range shown {
			if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, wa); err != nil {
				return err
			}
		}
		if rest := len(out.Wrong) - len(shown); rest > 0 {
			if _, err := fmt.Fprintf(w, "  ... %d more\n", rest); err != nil {
				return err
			}
		}
	}

	if rating := Rate(out.Correct, out.Total); rating != RatingNone {
		if _, err := fmt.Fprintf(w, "\nRating: %s\n", rating.Label()); err != nil {
			return err
		}
	}
	return nil
}
