package game

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordrush/internal/generator"
	"github.com/verte-zerg/wordrush/internal/model"
)

func fixedGenerator(ints ...int) func() *generator.Generator {
	return func() *generator.Generator {
		return generator.NewWithSource(&seqSource{ints: ints})
	}
}

func TestRunStopsWhenTimeIsUp(t *testing.T) {
	clock := &stepClock{now: time.Unix(100, 0), step: 45 * time.Second}
	loop := NewLoop(clock, fixedGenerator())
	settings := model.DifficultySettings{Difficulty: model.Hard, TimeLimit: 45 * time.Second, Pool: []string{"template"}}

	var out bytes.Buffer
	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader("template\n")), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Correct != 0 || outcome.Total != 0 || len(outcome.Wrong) != 0 {
		t.Fatalf("expected empty outcome, got %+v", outcome)
	}
	if strings.Contains(out.String(), "Word:") {
		t.Fatalf("expected no word to be shown:\n%s", out.String())
	}
}

func TestRunScoresAnswers(t *testing.T) {
	clock := &offsetClock{base: time.Unix(0, 0), offsets: []time.Duration{
		0, time.Second, 2 * time.Second, 3 * time.Second, 60 * time.Second,
	}}
	loop := NewLoop(clock, fixedGenerator())
	settings := model.DifficultySettings{Difficulty: model.Medium, TimeLimit: 60 * time.Second, Pool: []string{"include"}}

	var out bytes.Buffer
	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader("Include\n   \nincude\n")), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Correct != 1 || outcome.Total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", outcome.Correct, outcome.Total)
	}
	if len(outcome.Wrong) != 1 || outcome.Wrong[0] != (model.WrongAnswer{Word: "include", Input: "incude"}) {
		t.Fatalf("unexpected wrong answers: %+v", outcome.Wrong)
	}
	text := out.String()
	for _, want := range []string{
		"[Time left: 59s | Correct: 0 | Total: 0]",
		"[Time left: 57s | Correct: 1 | Total: 1]",
		"✓ Correct!",
		"✗ Wrong! The answer was: include",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
}

func TestRunEndsOnEOF(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: time.Second}
	loop := NewLoop(clock, fixedGenerator())
	settings := model.DifficultySettings{Difficulty: model.Easy, TimeLimit: 60 * time.Second, Pool: []string{"git"}}

	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader("git\ngti\n")), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Correct != 1 || outcome.Total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", outcome.Correct, outcome.Total)
	}
}

func TestRunCountsOversizedAnswer(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: 100 * time.Millisecond}
	loop := NewLoop(clock, fixedGenerator(0, 0))
	settings := model.DifficultySettings{Difficulty: model.Easy, TimeLimit: 60 * time.Second, Pool: []string{"git"}}

	long := strings.Repeat("x", 70*1024)
	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader(long+"\ngit")), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Total != 2 || outcome.Correct != 1 {
		t.Fatalf("unexpected outcome: correct=%d total=%d", outcome.Correct, outcome.Total)
	}
	if len(outcome.Wrong) != 1 || outcome.Wrong[0].Input != long {
		t.Fatalf("expected the long line as the wrong answer")
	}
}

func TestReadLineWithoutTrailingNewline(t *testing.T) {
	in := NewLineReader(strings.NewReader(" go \r\nchan"))
	for _, want := range []string{"go", "chan"} {
		got, err := in.ReadLine()
		if err != nil || got != want {
			t.Fatalf("expected %q, got %q (%v)", want, got, err)
		}
	}
	if _, err := in.ReadLine(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestRunCorrectNeverExceedsTotal(t *testing.T) {
	clock := &stepClock{now: time.Unix(0, 0), step: 100 * time.Millisecond}
	loop := NewLoop(clock, fixedGenerator(0, 1, 2, 1, 0, 2, 1))
	pool := []string{"push", "pull", "merge"}
	settings := model.DifficultySettings{Difficulty: model.Easy, TimeLimit: 60 * time.Second, Pool: pool}

	input := "push\nPULL\n\nmerg\npull\n\npush\nx\nmerge\n"
	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader(input)), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Correct > outcome.Total {
		t.Fatalf("correct %d exceeds total %d", outcome.Correct, outcome.Total)
	}
	if outcome.Total != 7 || outcome.Total-outcome.Correct != len(outcome.Wrong) {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

func TestRunFocusPrefersMissedWords(t *testing.T) {
	clock := &offsetClock{base: time.Unix(0, 0), offsets: []time.Duration{0, time.Second, time.Minute}}
	loop := NewLoop(clock, func() *generator.Generator {
		return generator.NewWithSource(floatSource{v: 0.5})
	})
	loop.Focus(map[string]int{"recursion": 4}, 2)
	settings := model.DifficultySettings{Difficulty: model.Hard, TimeLimit: 45 * time.Second, Pool: []string{"recursion", "template"}}

	outcome, err := loop.Run(settings, NewLineReader(strings.NewReader("recursion\n")), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	// Weights 9 and 1 put a draw of 0.5 on recursion; a uniform pick would give template.
	if outcome.Correct != 1 || outcome.Total != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}
}

type floatSource struct {
	v float64
}

func (f floatSource) Intn(n int) int   { return n - 1 }
func (f floatSource) Float64() float64 { return f.v }

func TestEqualFoldASCII(t *testing.T) {
	if !equalFoldASCII("Include", "include") {
		t.Fatalf("expected case-insensitive match")
	}
	if equalFoldASCII("include", "includes") {
		t.Fatalf("expected length mismatch to fail")
	}
	if equalFoldASCII("İnclude", "include") {
		t.Fatalf("expected non-ASCII letters to compare exactly")
	}
}
