// Package main provides the CLI entrypoint for wordrush.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordrush/internal/config"
	"github.com/verte-zerg/wordrush/internal/game"
	"github.com/verte-zerg/wordrush/internal/model"
	"github.com/verte-zerg/wordrush/internal/stats"
	"github.com/verte-zerg/wordrush/internal/statsui"
	"github.com/verte-zerg/wordrush/internal/store"
	"github.com/verte-zerg/wordrush/internal/wordlist"
)

const (
	defaultMissedWindow = 20
	defaultMissedFactor = 2.0
	defaultLogLevel     = "warn"
	defaultTopMissed    = 10
)

var (
	playWordsFile    string
	playNoSave       bool
	playFocusMissed  bool
	playMissedWindow int
	playMissedFactor float64

	historyDifficulty string
	historySince      string
	historyLast       int
	historyPlain      bool

	wordsDifficulty string
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordrush",
		Short:         "Console typing game",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.Flags().StringVar(&playWordsFile, "words-file", "", "word list file, one word per line (default: built-in vocabulary)")
	rootCmd.Flags().BoolVar(&playNoSave, "no-save", false, "do not record sessions in history")
	rootCmd.Flags().BoolVar(&playFocusMissed, "focus-missed", false, "show previously missed words more often")
	rootCmd.Flags().IntVar(&playMissedWindow, "missed-window", defaultMissedWindow, "number of recent sessions to collect missed words from")
	rootCmd.Flags().Float64Var(&playMissedFactor, "missed-factor", defaultMissedFactor, "extra weight per recorded miss")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	save := !playNoSave
	applyStringConfig(cmd, "words-file", &playWordsFile, fileCfg.Game.WordsFile)
	if !cmd.Flags().Changed("no-save") && fileCfg.Game.Save != nil {
		save = *fileCfg.Game.Save
	}
	applyBoolConfig(cmd, "focus-missed", &playFocusMissed, fileCfg.Game.FocusMissed)
	applyIntConfig(cmd, "missed-window", &playMissedWindow, fileCfg.Game.MissedWindow)
	applyFloatConfig(cmd, "missed-factor", &playMissedFactor, fileCfg.Game.MissedFactor)

	cfg := model.Config{
		WordsFile:    playWordsFile,
		Save:         save,
		FocusMissed:  playFocusMissed,
		MissedWindow: playMissedWindow,
		MissedFactor: playMissedFactor,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	words, err := loadVocabulary(cfg.WordsFile)
	if err != nil {
		return err
	}

	var opts []game.Option
	if cfg.Save || cfg.FocusMissed {
		st, err := store.Open(config.DefaultDBPath())
		if err != nil {
			log.Warn().Err(err).Str("path", config.DefaultDBPath()).Msg("failed to open history; playing without it")
		} else {
			defer func() {
				if cerr := st.Close(); cerr != nil {
					log.Warn().Err(cerr).Msg("failed to close db")
				}
			}()
			if cfg.Save {
				opts = append(opts, game.WithRecorder(st))
			}
			if cfg.FocusMissed {
				opts = append(opts, game.WithMissedFocus(st, cfg.MissedWindow, cfg.MissedFactor))
			}
		}
	}

	g, err := game.New(words, cmd.InOrStdin(), cmd.OutOrStdout(), opts...)
	if err != nil {
		return fmt.Errorf("failed to prepare game: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runUntilInterrupted(ctx, cmd.OutOrStdout(), g.Run)
}

// runUntilInterrupted runs play and returns its result, or says goodbye and
// returns nil as soon as ctx is cancelled. A blocked read is abandoned.
func runUntilInterrupted(ctx context.Context, out io.Writer, play func(context.Context) error) error {
	done := make(chan error, 1)
	go func() {
		done <- play(ctx)
	}()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		log.Debug().Err(ctx.Err()).Msg("game interrupted")
		if _, err := fmt.Fprintln(out, "\n\nGame exited. Back to work..."); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past sessions",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().StringVar(&historyDifficulty, "difficulty", "", "difficulty filter (easy, medium, hard)")
	cmd.Flags().StringVar(&historySince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&historyLast, "last", 0, "limit to last N sessions")
	cmd.Flags().BoolVar(&historyPlain, "plain", false, "print a plain text report instead of the interactive view")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	cfg, err := historyConfig(historyDifficulty, historySince, historyLast)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			log.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	out := cmd.OutOrStdout()
	if historyPlain || !isTerminal(out) {
		report, err := stats.BuildReport(cmd.Context(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if err := stats.RenderHistory(out, report); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run history TUI: %w", err)
	}
	return nil
}

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "List the words of a difficulty tier",
		Args:  cobra.NoArgs,
		RunE:  runWordsCmd,
	}
	cmd.Flags().StringVar(&wordsDifficulty, "difficulty", "", "difficulty tier (easy, medium, hard; default: all)")
	return cmd
}

func runWordsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadConfig()
	if err != nil {
		return err
	}
	wordsFile := ""
	if fileCfg.Game.WordsFile != nil {
		wordsFile = *fileCfg.Game.WordsFile
	}
	words, err := loadVocabulary(wordsFile)
	if err != nil {
		return err
	}
	sel, err := game.NewSelector(words)
	if err != nil {
		return fmt.Errorf("failed to prepare word pools: %w", err)
	}

	tiers := model.Difficulties
	if wordsDifficulty != "" {
		d, err := model.ParseDifficulty(wordsDifficulty)
		if err != nil {
			return err
		}
		tiers = []model.Difficulty{d}
	}
	return writeTierWords(cmd.OutOrStdout(), sel, tiers)
}

func writeTierWords(w io.Writer, sel *game.Selector, tiers []model.Difficulty) error {
	for i, d := range tiers {
		settings, ok := sel.Settings(d)
		if !ok {
			continue
		}
		if len(tiers) > 1 {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("failed to write output: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "# %s (%ds, %d words)\n", d, int(settings.TimeLimit/time.Second), len(settings.Pool)); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		for _, word := range settings.Pool {
			if _, err := fmt.Fprintln(w, word); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
	}
	return nil
}

func loadConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	level := defaultLogLevel
	if fileCfg.Game.LogLevel != nil {
		level = *fileCfg.Game.LogLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("invalid log-level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	return fileCfg, nil
}

func loadVocabulary(path string) ([]string, error) {
	if path == "" {
		return wordlist.Default(), nil
	}
	words, err := wordlist.LoadWords(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("words", len(words)).Msg("loaded word list")
	return words, nil
}

func historyConfig(difficulty, since string, last int) (model.HistoryConfig, error) {
	cfg := model.HistoryConfig{Last: last, TopMissed: defaultTopMissed}
	if last < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if difficulty != "" {
		d, err := model.ParseDifficulty(difficulty)
		if err != nil {
			return cfg, err
		}
		cfg.Difficulty = d
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordrush configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# words-file = "/path/to/words.txt"  # Custom vocabulary, one word per line
# save = true                         # Record sessions in history
# focus-missed = false                # Show previously missed words more often
# missed-window = %d                  # Recent sessions to collect missed words from
# missed-factor = %.1f                # Extra weight per recorded miss
# log-level = %q                   # debug, info, warn, error
`,
		defaultMissedWindow,
		defaultMissedFactor,
		defaultLogLevel,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.MissedWindow < 0 {
		return fmt.Errorf("--missed-window must be >= 0")
	}
	if cfg.MissedFactor < 0 {
		return fmt.Errorf("--missed-factor must be >= 0")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
