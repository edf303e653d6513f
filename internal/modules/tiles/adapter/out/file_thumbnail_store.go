package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tilesout "tvshell/internal/modules/tiles/port/out"
	apperrors "tvshell/internal/platform/errors"
)

type FileThumbnailStore struct {
	dir string
}

func NewFileThumbnailStore(dir string) tilesout.ThumbnailStore {
	return &FileThumbnailStore{dir: dir}
}

func (s *FileThumbnailStore) Save(_ context.Context, tileID string, png []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create thumbnail dir: %w", err)
	}
	ref := tileID + ".png"
	path, err := s.path(ref)
	if err != nil {
		return "", err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, png, 0o644); err != nil {
		return "", fmt.Errorf("write thumbnail: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("commit thumbnail: %w", err)
	}
	return ref, nil
}

func (s *FileThumbnailStore) Load(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.path(ref)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: thumbnail %s", apperrors.ErrNotFound, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("read thumbnail: %w", err)
	}
	return data, nil
}

func (s *FileThumbnailStore) Delete(_ context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove thumbnail: %w", err)
	}
	return nil
}

func (s *FileThumbnailStore) path(ref string) (string, error) {
	if ref == "" || strings.ContainsAny(ref, `/\`) || ref != filepath.Base(ref) {
		return "", fmt.Errorf("%w: thumbnail ref %q", apperrors.ErrInvalidInput, ref)
	}
	return filepath.Join(s.dir, ref), nil
}
