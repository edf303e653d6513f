package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	settingsout "tvshell/internal/modules/settings/port/out"
	"tvshell/internal/platform/clock"
)

type SQLiteKeyValueStore struct {
	db    *sql.DB
	clock clock.Clock
}

// NewSQLiteKeyValueStore expects db to already carry the preferences schema
// (see platform/sqlitedb).
func NewSQLiteKeyValueStore(db *sql.DB, clock clock.Clock) settingsout.KeyValueStore {
	return &SQLiteKeyValueStore{db: db, clock: clock}
}

func (s *SQLiteKeyValueStore) GetBool(ctx context.Context, key string) (bool, bool, error) {
	raw, found, err := s.get(ctx, s.db, key)
	if err != nil || !found {
		return false, found, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteKeyValueStore) SetBool(ctx context.Context, key string, value bool) error {
	return s.put(ctx, s.db, key, strconv.FormatBool(value))
}

func (s *SQLiteKeyValueStore) GetInt(ctx context.Context, key string) (int, bool, error) {
	raw, found, err := s.get(ctx, s.db, key)
	if err != nil || !found {
		return 0, found, err
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLiteKeyValueStore) SetInt(ctx context.Context, key string, value int) error {
	return s.put(ctx, s.db, key, strconv.Itoa(value))
}

func (s *SQLiteKeyValueStore) UpdateInt(ctx context.Context, key string, fn func(int) (int, bool)) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin update %s: %w", key, err)
	}
	defer func() { _ = tx.Rollback() }()

	current := 0
	raw, found, err := s.get(ctx, tx, key)
	if err != nil {
		return 0, err
	}
	if found {
		if current, err = strconv.Atoi(raw); err != nil {
			return 0, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	next, write := fn(current)
	if !write {
		return current, nil
	}
	if err := s.put(ctx, tx, key, strconv.Itoa(next)); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit update %s: %w", key, err)
	}
	return next, nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteKeyValueStore) get(ctx context.Context, q queryer, key string) (string, bool, error) {
	var raw string
	err := q.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read preference %s: %w", key, err)
	}
	return raw, true, nil
}

func (s *SQLiteKeyValueStore) put(ctx context.Context, q queryer, key, value string) error {
	const stmt = `
INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
`
	if _, err := q.ExecContext(ctx, stmt, key, value, s.clock.Now().Format("2006-01-02T15:04:05Z07:00")); err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}
