// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Difficulty identifies a difficulty tier.
type Difficulty int

// Difficulty tiers in menu order.
const (
	Easy Difficulty = iota + 1
	Medium
	Hard
)

// Difficulties lists every tier in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty accepts a tier name or its menu number.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "easy":
		return Easy, nil
	case "2", "medium":
		return Medium, nil
	case "3", "hard":
		return Hard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", s)
}

// DifficultySettings bundles the time limit and word pool of one session.
type DifficultySettings struct {
	Difficulty Difficulty
	TimeLimit  time.Duration
	Pool       []string
}

// WrongAnswer records a mismatched answer for post-session review.
type WrongAnswer struct {
	Word  string
	Input string
}

func (w WrongAnswer) String() string {
	return fmt.Sprintf("'%s' -> '%s'", w.Word, w.Input)
}

// Outcome captures the counts of a finished session.
type Outcome struct {
	Correct int
	Total   int
	Wrong   []WrongAnswer
}

// Config defines practice settings.
type Config struct {
	WordsFile    string
	Save         bool
	FocusMissed  bool
	MissedWindow int
	MissedFactor float64
}

// HistoryConfig defines filters for history output.
type HistoryConfig struct {
	Difficulty Difficulty
	Since      *time.Time
	Last       int
	TopMissed  int
}

// SessionRecord is a completed session as persisted.
type SessionRecord struct {
	ID           string
	StartedAt    time.Time
	EndedAt      time.Time
	Difficulty   Difficulty
	TimeLimitSec int
	PoolSize     int
	Correct      int
	Total        int
	DurationMs   int64
}

// SessionAggregate summarizes a session for reporting.
type SessionAggregate struct {
	SessionID  string
	EndedAt    time.Time
	Difficulty Difficulty
	Correct    int
	Total      int
	DurationMs int64
}

// WordAggregate counts misses of a word across sessions.
type WordAggregate struct {
	Word   string
	Misses int
}
