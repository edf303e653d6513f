package out

import (
	"context"
	"sync"

	settingsout "tvshell/internal/modules/settings/port/out"
)

// MemoryKeyValueStore keeps preferences for the process lifetime only. Err,
// when set, is returned by every call so failure paths can be exercised.
type MemoryKeyValueStore struct {
	mu    sync.Mutex
	bools map[string]bool
	ints  map[string]int
	Err   error
}

func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{bools: map[string]bool{}, ints: map[string]int{}}
}

var _ settingsout.KeyValueStore = (*MemoryKeyValueStore)(nil)

func (s *MemoryKeyValueStore) GetBool(_ context.Context, key string) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, false, s.Err
	}
	v, ok := s.bools[key]
	return v, ok, nil
}

func (s *MemoryKeyValueStore) SetBool(_ context.Context, key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.bools[key] = value
	return nil
}

func (s *MemoryKeyValueStore) GetInt(_ context.Context, key string) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, false, s.Err
	}
	v, ok := s.ints[key]
	return v, ok, nil
}

func (s *MemoryKeyValueStore) SetInt(_ context.Context, key string, value int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.ints[key] = value
	return nil
}

func (s *MemoryKeyValueStore) UpdateInt(_ context.Context, key string, fn func(int) (int, bool)) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	next, write := fn(s.ints[key])
	if !write {
		return s.ints[key], nil
	}
	s.ints[key] = next
	return next, nil
}
