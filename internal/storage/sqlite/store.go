// Package sqlite persists game history in SQLite. It implements
// history.Recorder and history.Truncater, so a game configured with a Store
// writes every committed turn and snapshot as it happens and can be
// rebuilt from disk later.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/samdwyer/hexclash/internal/history"
	"github.com/samdwyer/hexclash/internal/storage/sqlite/migrations"
	"github.com/samdwyer/hexclash/internal/telemetry"
)

var (
	// ErrNotFound is returned when a game has no matching record.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a turn or snapshot is recorded twice.
	ErrConflict = errors.New("record already exists")
)

// Store is a SQLite-backed game history.
type Store struct {
	sqlDB *sql.DB
}

var (
	_ history.Recorder  = (*Store)(nil)
	_ history.Truncater = (*Store)(nil)
)

// Open opens (or creates) the database at path and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(context.Background(), sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) ready(ctx context.Context, gameID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(gameID) == "" {
		return fmt.Errorf("game id is required")
	}
	return nil
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// ensureGame registers gameID on first use.
func ensureGame(ctx context.Context, tx *sql.Tx, gameID string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO games (id, created_at) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`,
		gameID, now())
	if err != nil {
		return fmt.Errorf("register game: %w", err)
	}
	return nil
}

// RecordTurn stores a committed turn.
func (s *Store) RecordTurn(ctx context.Context, gameID string, t history.Turn) error {
	tracer := telemetry.Tracer("storage")
	ctx, span := tracer.Start(ctx, "storage.record_turn")
	defer span.End()

	span.SetAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("turn", t.Number),
		attribute.Int("changes", len(t.Changes)),
	)

	if err := s.ready(ctx, gameID); err != nil {
		telemetry.Fail(span, err)
		return err
	}
	payload, err := history.EncodeTurn(t)
	if err != nil {
		telemetry.Fail(span, err)
		return err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureGame(ctx, tx, gameID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO turns (game_id, number, round, phase, payload, recorded_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			gameID, t.Number, t.Round, t.Phase.String(), payload, now())
		if isConstraintError(err) {
			return fmt.Errorf("turn %d of game %s: %w", t.Number, gameID, ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("insert turn %d: %w", t.Number, err)
		}
		return nil
	})
	if err != nil {
		telemetry.Fail(span, err)
	}
	return err
}

// RecordSnapshot stores a snapshot keyed by the turn it precedes.
func (s *Store) RecordSnapshot(ctx context.Context, gameID string, snap history.Snapshot) error {
	tracer := telemetry.Tracer("storage")
	ctx, span := tracer.Start(ctx, "storage.record_snapshot")
	defer span.End()

	span.SetAttributes(
		attribute.String("game.id", gameID),
		attribute.Int("round", snap.Round),
		attribute.Int("next_turn", snap.NextTurn),
	)

	if err := s.ready(ctx, gameID); err != nil {
		telemetry.Fail(span, err)
		return err
	}
	payload, err := history.EncodeSnapshot(snap)
	if err != nil {
		telemetry.Fail(span, err)
		return err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := ensureGame(ctx, tx, gameID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (game_id, next_turn, round, payload, recorded_at)
			 VALUES (?, ?, ?, ?, ?)`,
			gameID, snap.NextTurn, snap.Round, payload, now())
		if isConstraintError(err) {
			return fmt.Errorf("snapshot at turn %d of game %s: %w", snap.NextTurn, gameID, ErrConflict)
		}
		if err != nil {
			return fmt.Errorf("insert snapshot at turn %d: %w", snap.NextTurn, err)
		}
		return nil
	})
	if err != nil {
		telemetry.Fail(span, err)
	}
	return err
}

// Truncate deletes turns numbered nextTurn or later and snapshots taken
// after that point.
func (s *Store) Truncate(ctx context.Context, gameID string, nextTurn int) error {
	if err := s.ready(ctx, gameID); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM turns WHERE game_id = ? AND number >= ?`, gameID, nextTurn); err != nil {
			return fmt.Errorf("truncate turns: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM snapshots WHERE game_id = ? AND next_turn > ?`, gameID, nextTurn); err != nil {
			return fmt.Errorf("truncate snapshots: %w", err)
		}
		return nil
	})
}

// LoadTurns returns the turns of a game numbered since or later, in order.
func (s *Store) LoadTurns(ctx context.Context, gameID string, since int) ([]history.Turn, error) {
	if err := s.ready(ctx, gameID); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT payload FROM turns WHERE game_id = ? AND number >= ? ORDER BY number`,
		gameID, since)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	turns := make([]history.Turn, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		t, err := history.DecodeTurn(payload)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate turns: %w", err)
	}
	return turns, nil
}

// LatestSnapshot returns the most recent snapshot of a game.
func (s *Store) LatestSnapshot(ctx context.Context, gameID string) (history.Snapshot, error) {
	if err := s.ready(ctx, gameID); err != nil {
		return history.Snapshot{}, err
	}
	return s.snapshot(ctx,
		`SELECT payload FROM snapshots WHERE game_id = ? ORDER BY next_turn DESC LIMIT 1`, gameID)
}

// SnapshotForRound returns the snapshot taken at the start of round.
func (s *Store) SnapshotForRound(ctx context.Context, gameID string, round int) (history.Snapshot, error) {
	if err := s.ready(ctx, gameID); err != nil {
		return history.Snapshot{}, err
	}
	return s.snapshot(ctx,
		`SELECT payload FROM snapshots WHERE game_id = ? AND round = ? ORDER BY next_turn LIMIT 1`,
		gameID, round)
}

func (s *Store) snapshot(ctx context.Context, query string, args ...any) (history.Snapshot, error) {
	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return history.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	return history.DecodeSnapshot(payload)
}

// Games lists recorded game ids, oldest first.
func (s *Store) Games(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id FROM games ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
