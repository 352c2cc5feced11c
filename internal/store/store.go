// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/wordrush/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout keeps every stored timestamp the same width so text order
// matches time order. Values are always written in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for session history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", path, err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			difficulty INTEGER NOT NULL,
			time_limit_sec INTEGER NOT NULL,
			pool_size INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS wrong_answers (
			session_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			word TEXT NOT NULL,
			input TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_wrong_answers_word ON wrong_answers(word);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to migrate db: %w", err)
		}
	}
	return nil
}

// InsertSession stores a completed session and its wrong answers.
// An empty record ID is replaced with a fresh UUID; the stored ID is returned.
func (s *Store) InsertSession(ctx context.Context, rec model.SessionRecord, wrong []model.WrongAnswer) (id string, err error) {
	if rec.Correct > rec.Total {
		return "", fmt.Errorf("invalid session: correct %d exceeds total %d", rec.Correct, rec.Total)
	}
	id = rec.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, started_at, ended_at, difficulty, time_limit_sec, pool_size, correct, total, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
		int(rec.Difficulty),
		rec.TimeLimitSec,
		rec.PoolSize,
		rec.Correct,
		rec.Total,
		rec.DurationMs,
	); err != nil {
		return "", err
	}

	if len(wrong) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO wrong_answers (session_id, seq, word, input) VALUES (?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return "", err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for i, w := range wrong {
			if _, err = stmt.ExecContext(ctx, id, i, w.Word, w.Input); err != nil {
				return "", err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListSessions returns session aggregates filtered by history config.
func (s *Store) ListSessions(ctx context.Context, cfg model.HistoryConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Difficulty != 0 {
		clauses = append(clauses, "difficulty = ?")
		args = append(args, int(cfg.Difficulty))
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*cfg.Since))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, difficulty, correct, total, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC, rowid ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		var difficulty int
		if err := rows.Scan(&agg.SessionID, &endedAt, &difficulty, &agg.Correct, &agg.Total, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, endedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse ended_at %q: %w", endedAt, err)
		}
		agg.EndedAt = parsed.Local()
		agg.Difficulty = model.Difficulty(difficulty)
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// MissedWordsForSessions counts misses per word across the given sessions,
// most missed first.
func (s *Store) MissedWordsForSessions(ctx context.Context, sessionIDs []string) ([]model.WordAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT word, COUNT(*) AS misses
		FROM wrong_answers
		WHERE session_id IN (%s)
		GROUP BY word
		ORDER BY misses DESC, word ASC`, strings.Join(placeholders, ","))
	return s.queryWordAggregates(ctx, query, args...)
}

// MissCounts counts misses per word over the most recent sessions.
func (s *Store) MissCounts(ctx context.Context, window int) (map[string]int, error) {
	if window <= 0 {
		return map[string]int{}, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		ORDER BY ended_at DESC, rowid DESC
		LIMIT ?
	)
	SELECT w.word, COUNT(*) AS misses
	FROM wrong_answers w
	JOIN recent_sessions r ON r.id = w.session_id
	GROUP BY w.word
	ORDER BY misses DESC, w.word ASC`
	aggs, err := s.queryWordAggregates(ctx, query, window)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(aggs))
	for _, agg := range aggs {
		counts[agg.Word] = agg.Misses
	}
	return counts, nil
}

func (s *Store) queryWordAggregates(ctx context.Context, query string, args ...any) ([]model.WordAggregate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.WordAggregate
	for rows.Next() {
		var agg model.WordAggregate
		if err := rows.Scan(&agg.Word, &agg.Misses); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
