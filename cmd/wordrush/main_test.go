package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/wordrush/internal/config"
	"github.com/verte-zerg/wordrush/internal/game"
	"github.com/verte-zerg/wordrush/internal/model"
)

func isolateXDG(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
}

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPlayThenHistory(t *testing.T) {
	isolateXDG(t)

	// Input ends after one answer, which finishes the session early.
	out, err := runCLI(t, "9\n3\n\nnot-a-word\n")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	for _, want := range []string{"Invalid choice", "Time limit: 45s", "Correct: 0 / 1", "Thanks for playing!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("play output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(config.DefaultDBPath()); err != nil {
		t.Fatalf("expected history db to exist: %v", err)
	}

	out, err = runCLI(t, "", "history", "--plain", "--difficulty", "hard")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	for _, want := range []string{"Sessions: 1", "Words: 0 correct of 1", "Most Missed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayNoSave(t *testing.T) {
	isolateXDG(t)
	if _, err := runCLI(t, "1\n\nx\n", "--no-save"); err != nil {
		t.Fatalf("play: %v", err)
	}
	if _, err := os.Stat(config.DefaultDBPath()); !os.IsNotExist(err) {
		t.Fatalf("expected no history db, got %v", err)
	}
}

func TestPlayRejectsArgs(t *testing.T) {
	isolateXDG(t)
	if _, err := runCLI(t, "", "extra"); err == nil {
		t.Fatalf("expected error for positional argument")
	}
}

func TestPlayUsesConfigWordsFile(t *testing.T) {
	isolateXDG(t)
	wordsPath := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(wordsPath, []byte("go\ngoroutine\n"), 0o644); err != nil {
		t.Fatalf("write words: %v", err)
	}
	cfgPath := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg := "[game]\nwords-file = " + `"` + filepath.ToSlash(wordsPath) + `"` + "\nsave = false\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out, err := runCLI(t, "", "words", "--difficulty", "hard")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	if strings.TrimSpace(out) != "goroutine" {
		t.Fatalf("unexpected hard pool: %q", out)
	}

	out, err = runCLI(t, "2\n\n")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "Words in pool: 2") {
		t.Fatalf("expected custom vocabulary to be used:\n%s", out)
	}
	if _, err := os.Stat(config.DefaultDBPath()); !os.IsNotExist(err) {
		t.Fatalf("expected save=false to skip history, got %v", err)
	}
}

func TestRunUntilInterruptedSaysGoodbye(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	blocked := make(chan struct{})
	defer close(blocked)

	var out bytes.Buffer
	cancel()
	err := runUntilInterrupted(ctx, &out, func(context.Context) error {
		<-blocked
		return nil
	})
	if err != nil {
		t.Fatalf("expected clean exit, got %v", err)
	}
	if !strings.Contains(out.String(), "Game exited.") {
		t.Fatalf("expected farewell, got %q", out.String())
	}
}

func TestRunUntilInterruptedReturnsPlayError(t *testing.T) {
	want := errors.New("broken pipe")
	err := runUntilInterrupted(context.Background(), &bytes.Buffer{}, func(context.Context) error {
		return want
	})
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestWordsListsEveryTier(t *testing.T) {
	isolateXDG(t)
	out, err := runCLI(t, "", "words")
	if err != nil {
		t.Fatalf("words: %v", err)
	}
	for _, want := range []string{"# easy (60s,", "# medium (60s,", "# hard (45s,", "template"} {
		if !strings.Contains(out, want) {
			t.Fatalf("words output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteTierWordsSingleTier(t *testing.T) {
	sel, err := game.NewSelector([]string{"go", "chan", "select"})
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	var buf bytes.Buffer
	if err := writeTierWords(&buf, sel, []model.Difficulty{model.Easy}); err != nil {
		t.Fatalf("write tier words: %v", err)
	}
	if buf.String() != "go\nchan\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestHistoryConfig(t *testing.T) {
	cfg, err := historyConfig("Hard", "2026-03-01", 5)
	if err != nil {
		t.Fatalf("history config: %v", err)
	}
	if cfg.Difficulty != model.Hard || cfg.Last != 5 || cfg.Since == nil || cfg.Since.Day() != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if _, err := historyConfig("expert", "", 0); err == nil {
		t.Fatalf("expected error for unknown difficulty")
	}
	if _, err := historyConfig("", "03/01/2026", 0); err == nil {
		t.Fatalf("expected error for bad date")
	}
	if _, err := historyConfig("", "", -1); err == nil {
		t.Fatalf("expected error for negative --last")
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	isolateXDG(t)
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		t.Fatalf("write default config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load default config: %v", err)
	}
	if cfg.Game.WordsFile != nil || cfg.Game.Save != nil {
		t.Fatalf("expected every template value to be commented out: %+v", cfg)
	}
}
