package game

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/wordrush/internal/model"
	"github.com/verte-zerg/wordrush/internal/wordlist"
)

func TestSelectorPools(t *testing.T) {
	words := wordlist.Default()
	sel, err := NewSelector(words)
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}

	easy, _ := sel.Settings(model.Easy)
	if easy.TimeLimit != 60*time.Second || len(easy.Pool) == 0 {
		t.Fatalf("unexpected easy settings: %+v", easy)
	}
	for _, w := range easy.Pool {
		if len(w) > 5 {
			t.Fatalf("easy pool contains %q", w)
		}
	}

	medium, _ := sel.Settings(model.Medium)
	if medium.TimeLimit != 60*time.Second || len(medium.Pool) != len(words) {
		t.Fatalf("expected medium to use the full vocabulary, got %d words", len(medium.Pool))
	}
	for i := range words {
		if medium.Pool[i] != words[i] {
			t.Fatalf("medium pool order differs at %d", i)
		}
	}

	hard, _ := sel.Settings(model.Hard)
	if hard.TimeLimit != 45*time.Second || len(hard.Pool) == 0 {
		t.Fatalf("unexpected hard settings: %+v", hard)
	}
	for _, w := range hard.Pool {
		if len(w) < 6 {
			t.Fatalf("hard pool contains %q", w)
		}
	}
}

func TestNewSelectorRejectsEmptyTier(t *testing.T) {
	if _, err := NewSelector([]string{"go", "chan"}); err == nil {
		t.Fatalf("expected error when hard tier has no words")
	}
}

func TestSelectRetriesUntilValid(t *testing.T) {
	sel, err := NewSelector([]string{"go", "goroutine"})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	var out bytes.Buffer
	in := NewLineReader(strings.NewReader("4\neasy\n\n 3 \n"))
	settings, err := sel.Select(in, &out)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if settings.Difficulty != model.Hard {
		t.Fatalf("expected hard, got %v", settings.Difficulty)
	}
	if got := strings.Count(out.String(), "Invalid choice"); got != 3 {
		t.Fatalf("expected 3 rejections, got %d:\n%s", got, out.String())
	}
	if got := strings.Count(out.String(), "Enter a number (1-3): "); got != 4 {
		t.Fatalf("expected 4 prompts, got %d", got)
	}
}

func TestSelectEOF(t *testing.T) {
	sel, err := NewSelector([]string{"go", "goroutine"})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	_, err = sel.Select(NewLineReader(strings.NewReader("9\n")), io.Discard)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}
