// Package game runs interactive typing sessions on a line-based console.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/verte-zerg/wordrush/internal/generator"
	"github.com/verte-zerg/wordrush/internal/model"
	"github.com/verte-zerg/wordrush/internal/stats"
)

// Recorder persists finished sessions.
type Recorder interface {
	InsertSession(ctx context.Context, rec model.SessionRecord, wrong []model.WrongAnswer) (string, error)
}

// MissSource reports how often words were missed in recent sessions.
type MissSource interface {
	MissCounts(ctx context.Context, window int) (map[string]int, error)
}

// Game drives sessions from difficulty selection to results.
type Game struct {
	selector *Selector
	loop     *Loop
	clock    Clock
	in       *LineReader
	out      io.Writer
	clear    bool

	recorder     Recorder
	misses       MissSource
	missedWindow int
	missedFactor float64
}

// Option customizes a Game.
type Option func(*Game)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithGenerator replaces the per-session generator factory.
func WithGenerator(newGenerator func() *generator.Generator) Option {
	return func(g *Game) { g.loop.newGenerator = newGenerator }
}

// WithRecorder saves every finished session to r.
func WithRecorder(r Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// WithMissedFocus biases word picks toward words missed in the last window
// sessions, weighting each miss by factor.
func WithMissedFocus(src MissSource, window int, factor float64) Option {
	return func(g *Game) {
		g.misses = src
		g.missedWindow = window
		g.missedFactor = factor
	}
}

// New builds a Game over the vocabulary words.
func New(words []string, in io.Reader, out io.Writer, opts ...Option) (*Game, error) {
	selector, err := NewSelector(words)
	if err != nil {
		return nil, err
	}
	g := &Game{
		selector: selector,
		clock:    SystemClock(),
		in:       NewLineReader(in),
		out:      out,
		clear:    isTerminal(out),
	}
	g.loop = NewLoop(g.clock, generator.New)
	for _, opt := range opts {
		opt(g)
	}
	g.loop.clock = g.clock
	return g, nil
}

// Run plays sessions until the player declines a replay or input ends.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := g.Play(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if _, err := fmt.Fprint(g.out, "Play again? (y/n): "); err != nil {
			return err
		}
		answer, err := g.in.ReadLine()
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if !strings.EqualFold(answer, "y") {
			_, err := fmt.Fprintln(g.out, "\nThanks for playing! Back to work...")
			return err
		}
	}
}

// Play runs a single session. It returns io.EOF when input ends before
// the session starts.
func (g *Game) Play(ctx context.Context) error {
	if err := g.header(); err != nil {
		return err
	}
	settings, err := g.selector.Select(g.in, g.out)
	if err != nil {
		return err
	}
	g.refreshFocus(ctx)

	if err := g.header(); err != nil {
		return err
	}
	if err := g.loop.Intro(settings, g.in, g.out); err != nil {
		return err
	}
	if err := g.clearScreen(); err != nil {
		return err
	}

	startedAt := g.clock.Now()
	outcome, err := g.loop.Run(settings, g.in, g.out)
	if err != nil {
		return err
	}
	endedAt := g.clock.Now()

	if err := g.header(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(g.out, "Game over!\n%s\n", strings.Repeat("=", ruleWidth)); err != nil {
		return err
	}
	if err := stats.RenderResults(g.out, outcome); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(g.out); err != nil {
		return err
	}

	g.record(ctx, settings, outcome, startedAt, endedAt)
	return nil
}

func (g *Game) refreshFocus(ctx context.Context) {
	if g.misses == nil {
		return
	}
	counts, err := g.misses.MissCounts(ctx, g.missedWindow)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load missed words; using uniform picks")
		return
	}
	if len(counts) == 0 {
		log.Debug().Msg("no missed words recorded yet; using uniform picks")
	}
	g.loop.Focus(counts, g.missedFactor)
}

func (g *Game) record(ctx context.Context, settings model.DifficultySettings, outcome model.Outcome, startedAt, endedAt time.Time) {
	if g.recorder == nil || outcome.Total == 0 {
		return
	}
	rec := model.SessionRecord{
		StartedAt:    startedAt,
		EndedAt:      endedAt,
		Difficulty:   settings.Difficulty,
		TimeLimitSec: int(settings.TimeLimit / time.Second),
		PoolSize:     len(settings.Pool),
		Correct:      outcome.Correct,
		Total:        outcome.Total,
		DurationMs:   endedAt.Sub(startedAt).Milliseconds(),
	}
	id, err := g.recorder.InsertSession(ctx, rec, outcome.Wrong)
	if err != nil {
		log.Warn().Err(err).Msg("failed to save session")
		return
	}
	log.Debug().Str("session", id).Int("correct", outcome.Correct).Int("total", outcome.Total).Msg("session saved")
}

func (g *Game) header() error {
	if err := g.clearScreen(); err != nil {
		return err
	}
	rule := strings.Repeat("=", ruleWidth)
	_, err := fmt.Fprintf(g.out, "%s\n%s\n%s\n\n", rule, headerStyle.Render("  wordrush - console typing game"), rule)
	return err
}

func (g *Game) clearScreen() error {
	if !g.clear {
		return nil
	}
	_, err := fmt.Fprint(g.out, "\x1b[H\x1b[2J")
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
