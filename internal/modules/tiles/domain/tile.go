package domain

import (
	"fmt"
	"strings"
	"time"
)

type Kind string

const (
	KindBundled Kind = "bundled"
	KindCustom  Kind = "custom"
)

type Tile struct {
	ID        string
	URL       string
	Title     string
	Kind      Kind
	Thumbnail string
	PinnedAt  time.Time
}

func (t Tile) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tile id is required")
	}
	if strings.TrimSpace(t.URL) == "" {
		return fmt.Errorf("tile url is required")
	}
	switch t.Kind {
	case KindBundled, KindCustom:
	default:
		return fmt.Errorf("unsupported tile kind %q", string(t.Kind))
	}
	return nil
}

// ValidateSet checks every tile and that identifiers are unique.
func ValidateSet(tiles []Tile) error {
	seen := make(map[string]struct{}, len(tiles))
	for _, t := range tiles {
		if err := t.Validate(); err != nil {
			return err
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("duplicate tile id %q", t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

func IDs(tiles []Tile) []string {
	out := make([]string, len(tiles))
	for i, t := range tiles {
		out[i] = t.ID
	}
	return out
}

func IndexOf(tiles []Tile, id string) int {
	for i, t := range tiles {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SingleInsertion reports the one tile that next adds to current when next is
// current with exactly one extra element, and where it sits in next.
func SingleInsertion(current, next []Tile) (int, Tile, bool) {
	if len(next) != len(current)+1 {
		return 0, Tile{}, false
	}
	i := 0
	for i < len(current) && current[i].ID == next[i].ID {
		i++
	}
	for j := i; j < len(current); j++ {
		if current[j].ID != next[j+1].ID {
			return 0, Tile{}, false
		}
	}
	return i, next[i], true
}
