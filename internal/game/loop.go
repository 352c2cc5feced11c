package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/verte-zerg/wordrush/internal/generator"
	"github.com/verte-zerg/wordrush/internal/model"
)

// Loop runs the timed word-typing phase of a session.
type Loop struct {
	clock        Clock
	newGenerator func() *generator.Generator

	// misses biases word picks when non-empty.
	misses       map[string]int
	missedFactor float64
}

// NewLoop returns a Loop reading time from clock and creating a fresh
// generator for every session with newGenerator.
func NewLoop(clock Clock, newGenerator func() *generator.Generator) *Loop {
	return &Loop{clock: clock, newGenerator: newGenerator}
}

// Focus biases the next sessions toward words with recorded misses.
func (l *Loop) Focus(misses map[string]int, factor float64) {
	l.misses = misses
	l.missedFactor = factor
}

// Intro prints the session rules and waits for the player to press Enter.
func (l *Loop) Intro(settings model.DifficultySettings, in *LineReader, out io.Writer) error {
	lines := []string{
		fmt.Sprintf("Time limit: %ds", int(settings.TimeLimit/time.Second)),
		fmt.Sprintf("Words in pool: %d", len(settings.Pool)),
		"Rules: type the word shown and press Enter.",
		"Get ready...",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(out, "\nPress Enter to start!"); err != nil {
		return err
	}
	_, err := in.ReadLine()
	return err
}

// Run plays words until the time limit elapses or input ends.
// A read in progress is never interrupted, so the last answer may land
// after the limit.
func (l *Loop) Run(settings model.DifficultySettings, in *LineReader, out io.Writer) (model.Outcome, error) {
	var outcome model.Outcome
	gen := l.newGenerator()
	start := l.clock.Now()

	for {
		elapsed := l.clock.Now().Sub(start)
		if elapsed >= settings.TimeLimit {
			return outcome, nil
		}

		word := l.pick(gen, settings.Pool)
		remaining := int((settings.TimeLimit - elapsed.Truncate(time.Second)) / time.Second)
		if _, err := fmt.Fprintf(out, "\n%s\n", statusStyle.Render(fmt.Sprintf("[Time left: %ds | Correct: %d | Total: %d]", remaining, outcome.Correct, outcome.Total))); err != nil {
			return outcome, err
		}
		if _, err := fmt.Fprintf(out, "Word: %s\n> ", wordStyle.Render(word)); err != nil {
			return outcome, err
		}

		answer, err := in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return outcome, nil
			}
			return outcome, err
		}
		if answer == "" {
			continue
		}

		outcome.Total++
		if equalFoldASCII(answer, word) {
			outcome.Correct++
			if _, err := fmt.Fprintln(out, correctStyle.Render("✓ Correct!")); err != nil {
				return outcome, err
			}
			continue
		}
		outcome.Wrong = append(outcome.Wrong, model.WrongAnswer{Word: word, Input: answer})
		if _, err := fmt.Fprintln(out, incorrectStyle.Render("✗ Wrong! The answer was: "+word)); err != nil {
			return outcome, err
		}
	}
}

func (l *Loop) pick(gen *generator.Generator, pool []string) string {
	if len(l.misses) > 0 {
		return gen.PickWeighted(pool, l.misses, l.missedFactor)
	}
	return gen.Pick(pool)
}
