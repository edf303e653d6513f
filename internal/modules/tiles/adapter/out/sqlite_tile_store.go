package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tvshell/internal/modules/tiles/domain"
	tilesout "tvshell/internal/modules/tiles/port/out"
	apperrors "tvshell/internal/platform/errors"
)

type SQLiteTileStore struct {
	db *sql.DB
}

func NewSQLiteTileStore(db *sql.DB) tilesout.TileStore {
	return &SQLiteTileStore{db: db}
}

const tileColumns = `id, url, title, kind, thumbnail, pinned_at`

func (s *SQLiteTileStore) List(ctx context.Context) ([]domain.Tile, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tileColumns+` FROM tiles ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tiles: %w", err)
	}
	defer rows.Close()

	var tiles []domain.Tile
	for rows.Next() {
		t, err := scanTile(rows)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tiles: %w", err)
	}
	return tiles, nil
}

func (s *SQLiteTileStore) Get(ctx context.Context, id string) (domain.Tile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tileColumns+` FROM tiles WHERE id = ?`, id)
	t, err := scanTile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tile{}, fmt.Errorf("%w: tile %s", apperrors.ErrNotFound, id)
	}
	return t, err
}

func (s *SQLiteTileStore) FindByURL(ctx context.Context, url string) (domain.Tile, bool, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tileColumns+` FROM tiles WHERE url = ?`, url)
	t, err := scanTile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Tile{}, false, nil
	}
	if err != nil {
		return domain.Tile{}, false, err
	}
	return t, true, nil
}

func (s *SQLiteTileStore) Append(ctx context.Context, tile domain.Tile) error {
	if err := tile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	const stmt = `
INSERT INTO tiles (id, position, url, title, kind, thumbnail, pinned_at)
VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM tiles), ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt, tile.ID, tile.URL, tile.Title, string(tile.Kind), tile.Thumbnail, tile.PinnedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert tile %s: %w", tile.ID, err)
	}
	return nil
}

func (s *SQLiteTileStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tiles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete tile %s: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTile(row scanner) (domain.Tile, error) {
	var (
		t        domain.Tile
		kind     string
		pinnedAt string
	)
	if err := row.Scan(&t.ID, &t.URL, &t.Title, &kind, &t.Thumbnail, &pinnedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Tile{}, err
		}
		return domain.Tile{}, fmt.Errorf("scan tile: %w", err)
	}
	t.Kind = domain.Kind(kind)
	if ts, err := time.Parse(time.RFC3339Nano, pinnedAt); err == nil {
		t.PinnedAt = ts
	}
	return t, nil
}
