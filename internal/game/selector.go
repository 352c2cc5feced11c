package game

import (
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/wordrush/internal/model"
	"github.com/verte-zerg/wordrush/internal/wordlist"
)

// Tier describes one difficulty option of the menu.
type Tier struct {
	Difficulty model.Difficulty
	Title      string
	Detail     string
	TimeLimit  time.Duration
	// Keep filters the vocabulary; nil keeps every word.
	Keep wordlist.FilterFunc
}

// Tiers are the menu options in display order.
var Tiers = []Tier{
	{Difficulty: model.Easy, Title: "Easy", Detail: "short words", TimeLimit: 60 * time.Second, Keep: wordlist.MaxLen(5)},
	{Difficulty: model.Medium, Title: "Medium", Detail: "all words", TimeLimit: 60 * time.Second},
	{Difficulty: model.Hard, Title: "Hard", Detail: "long words", TimeLimit: 45 * time.Second, Keep: wordlist.MinLen(6)},
}

// Selector turns a menu choice into the settings of a session.
type Selector struct {
	settings map[model.Difficulty]model.DifficultySettings
}

// NewSelector prepares the pool of every tier from words. It fails when a
// tier would end up with no words.
func NewSelector(words []string) (*Selector, error) {
	s := &Selector{settings: make(map[model.Difficulty]model.DifficultySettings, len(Tiers))}
	for _, tier := range Tiers {
		pool := append([]string(nil), words...)
		if tier.Keep != nil {
			pool = wordlist.Filter(words, tier.Keep)
		}
		if len(pool) == 0 {
			return nil, fmt.Errorf("no words available for %s difficulty", tier.Difficulty)
		}
		s.settings[tier.Difficulty] = model.DifficultySettings{
			Difficulty: tier.Difficulty,
			TimeLimit:  tier.TimeLimit,
			Pool:       pool,
		}
	}
	return s, nil
}

// Settings returns the prepared settings of a tier.
func (s *Selector) Settings(d model.Difficulty) (model.DifficultySettings, bool) {
	settings, ok := s.settings[d]
	return settings, ok
}

// Select shows the menu and reads choices until one of "1", "2" or "3" is
// entered. Any other line is rejected and the prompt repeats.
func (s *Selector) Select(in *LineReader, out io.Writer) (model.DifficultySettings, error) {
	if _, err := fmt.Fprintln(out, "Choose difficulty:"); err != nil {
		return model.DifficultySettings{}, err
	}
	for i, tier := range Tiers {
		if _, err := fmt.Fprintf(out, "  %d. %s (%ds, %s)\n", i+1, tier.Title, int(tier.TimeLimit/time.Second), tier.Detail); err != nil {
			return model.DifficultySettings{}, err
		}
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return model.DifficultySettings{}, err
	}

	for {
		if _, err := fmt.Fprint(out, "Enter a number (1-3): "); err != nil {
			return model.DifficultySettings{}, err
		}
		choice, err := in.ReadLine()
		if err != nil {
			return model.DifficultySettings{}, err
		}
		if d, ok := menuChoice(choice); ok {
			settings, _ := s.Settings(d)
			return settings, nil
		}
		if _, err := fmt.Fprintln(out, invalidStyle.Render("Invalid choice, please try again.")); err != nil {
			return model.DifficultySettings{}, err
		}
	}
}

func menuChoice(choice string) (model.Difficulty, bool) {
	switch choice {
	case "1":
		return model.Easy, true
	case "2":
		return model.Medium, true
	case "3":
		return model.Hard, true
	}
	return 0, false
}
