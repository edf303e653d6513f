package id

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator creates opaque identifiers.
type Generator interface {
	New() string
}

// UUID is used for browsing sessions.
type UUID struct{}

func (UUID) New() string {
	return uuid.NewString()
}

// ULID is used for custom tiles so identifiers sort by pin time.
type ULID struct{}

func (ULID) New() string {
	return ulid.Make().String()
}
