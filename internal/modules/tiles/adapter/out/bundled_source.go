package out

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"tvshell/internal/modules/tiles/domain"
	tilesout "tvshell/internal/modules/tiles/port/out"
)

//go:embed bundled_tiles.yaml
var bundledTilesYAML []byte

type bundledTile struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Title string `yaml:"title"`
}

type YAMLBundledSource struct {
	raw []byte
}

// NewYAMLBundledSource parses raw, or the embedded default list when raw is nil.
func NewYAMLBundledSource(raw []byte) tilesout.BundledSource {
	if raw == nil {
		raw = bundledTilesYAML
	}
	return YAMLBundledSource{raw: raw}
}

func (s YAMLBundledSource) Bundled() ([]domain.Tile, error) {
	var entries []bundledTile
	if err := yaml.Unmarshal(s.raw, &entries); err != nil {
		return nil, fmt.Errorf("decode bundled tiles: %w", err)
	}
	tiles := make([]domain.Tile, 0, len(entries))
	for _, e := range entries {
		tiles = append(tiles, domain.Tile{ID: e.ID, URL: e.URL, Title: e.Title, Kind: domain.KindBundled})
	}
	if err := domain.ValidateSet(tiles); err != nil {
		return nil, fmt.Errorf("bundled tiles: %w", err)
	}
	return tiles, nil
}
