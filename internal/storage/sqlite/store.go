// Package sqlite provides SQLite-backed battle history persistence.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/samdwyer/wordbattle/internal/storage"
	"github.com/samdwyer/wordbattle/internal/storage/sqlite/migrations"
)

const timeFormat = time.RFC3339Nano

// DefaultListLimit caps ListBattles when no positive limit is given.
const DefaultListLimit = 20

// Store provides a SQLite-backed store implementing storage.Store.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens a SQLite store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &Store{
		sqlDB: sqlDB,
		now:   func() time.Time { return time.Now().UTC() },
	}

	if err := applyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return store, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// RecordBattle persists a finished battle.
func (s *Store) RecordBattle(ctx context.Context, rec storage.BattleRecord) (storage.BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return storage.BattleRecord{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.BattleRecord{}, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(rec.PlayerWord) == "" || strings.TrimSpace(rec.OpponentWord) == "" {
		return storage.BattleRecord{}, fmt.Errorf("both words are required")
	}
	if strings.TrimSpace(rec.Outcome) == "" {
		return storage.BattleRecord{}, fmt.Errorf("outcome is required")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PlayedAt.IsZero() {
		rec.PlayedAt = s.now()
	}
	rec.PlayedAt = rec.PlayedAt.UTC()

	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO battles (id, player_word, opponent_word, outcome, survivors, reward, steps, turns, level, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.PlayerWord,
		rec.OpponentWord,
		rec.Outcome,
		strings.Join(rec.Survivors, ""),
		rec.Reward,
		rec.Steps,
		rec.Turns,
		rec.Level,
		rec.PlayedAt.Format(timeFormat),
	)
	if err != nil {
		return storage.BattleRecord{}, fmt.Errorf("insert battle %s: %w", rec.ID, err)
	}
	return rec, nil
}

// ListBattles returns up to limit battles, most recent first.
func (s *Store) ListBattles(ctx context.Context, limit int) ([]storage.BattleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.sqlDB.QueryContext(ctx, `
SELECT id, player_word, opponent_word, outcome, survivors, reward, steps, turns, level, played_at
FROM battles
ORDER BY played_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list battles: %w", err)
	}
	defer rows.Close()

	var records []storage.BattleRecord
	for rows.Next() {
		var (
			rec       storage.BattleRecord
			survivors string
			playedAt  string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.PlayerWord,
			&rec.OpponentWord,
			&rec.Outcome,
			&survivors,
			&rec.Reward,
			&rec.Steps,
			&rec.Turns,
			&rec.Level,
			&playedAt,
		); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		rec.Survivors = splitLetters(survivors)
		rec.PlayedAt, err = time.Parse(timeFormat, playedAt)
		if err != nil {
			return nil, fmt.Errorf("parse played_at for battle %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate battles: %w", err)
	}
	return records, nil
}

// Summary aggregates wins, losses, best level and total gold won.
func (s *Store) Summary(ctx context.Context) (storage.Summary, error) {
	if err := ctx.Err(); err != nil {
		return storage.Summary{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Summary{}, fmt.Errorf("storage is not configured")
	}

	var summary storage.Summary
	row := s.sqlDB.QueryRowContext(ctx, `
SELECT
    COALESCE(SUM(CASE WHEN outcome = 'win' THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN outcome = 'lose' THEN 1 ELSE 0 END), 0),
    COALESCE(MAX(level), 0),
    COALESCE(SUM(reward), 0)
FROM battles`)
	if err := row.Scan(&summary.Wins, &summary.Losses, &summary.BestLevel, &summary.GoldWon); err != nil {
		return storage.Summary{}, fmt.Errorf("summarize battles: %w", err)
	}
	return summary, nil
}

func splitLetters(s string) []string {
	letters := make([]string, 0, len(s))
	for _, r := range s {
		letters = append(letters, string(r))
	}
	return letters
}

var _ storage.Store = (*Store)(nil)
