// Package stats contains scoring, rating and reporting.
package stats

import (
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// Rating is the qualitative grade of a session.
type Rating int

// Ratings from no rating to the top tier.
const (
	RatingNone Rating = iota
	RatingLow
	RatingMid
	RatingHigh
	RatingTop
)

// Label returns the text shown for a rating.
func (r Rating) Label() string {
	switch r {
	case RatingTop:
		return "Code Master!"
	case RatingHigh:
		return "Excellent Programmer!"
	case RatingMid:
		return "Still Improving!"
	case RatingLow:
		return "Keep Practicing!"
	default:
		return ""
	}
}

// Accuracy returns correct/total, or 0 when nothing was attempted.
func Accuracy(correct, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// Rate picks the first tier whose thresholds the session meets.
func Rate(correct, total int) Rating {
	if total <= 0 {
		return RatingNone
	}
	acc := Accuracy(correct, total)
	switch {
	case acc >= 0.95 && correct >= 20:
		return RatingTop
	case acc >= 0.80 && correct >= 15:
		return RatingHigh
	case acc >= 0.60:
		return RatingMid
	default:
		return RatingLow
	}
}

// WordsPerMinute returns attempted words per minute.
func WordsPerMinute(total int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(total) / (float64(durationMs) / 60000.0)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
