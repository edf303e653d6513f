package service

import (
	"tvshell/internal/modules/session/domain"
	sessionin "tvshell/internal/modules/session/port/in"
	"tvshell/internal/platform/clock"
	"tvshell/internal/platform/id"
)

// SessionStore keeps sessions in insertion order and tells observers about
// every structural change. It is single-writer: no locking.
type SessionStore struct {
	clock clock.Clock
	idGen id.Generator

	sessions  []domain.Session
	currentID string

	observers  map[int]func([]domain.Session)
	order      []int
	nextObsID  int
	pending    [][]domain.Session
	delivering bool
}

func NewSessionStore(clock clock.Clock, idGen id.Generator) *SessionStore {
	return &SessionStore{clock: clock, idGen: idGen, observers: map[int]func([]domain.Session){}}
}

var _ sessionin.Store = (*SessionStore)(nil)

// Observe delivers the current list right away, then after each change.
func (s *SessionStore) Observe(fn func([]domain.Session)) func() {
	obsID := s.nextObsID
	s.nextObsID++
	s.observers[obsID] = fn
	s.order = append(s.order, obsID)
	fn(s.Sessions())
	return func() {
		delete(s.observers, obsID)
		for i, v := range s.order {
			if v == obsID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
}

func (s *SessionStore) Sessions() []domain.Session {
	out := make([]domain.Session, len(s.sessions))
	copy(out, s.sessions)
	return out
}

func (s *SessionStore) Current() (domain.Session, bool) {
	if s.currentID == "" {
		return domain.Session{}, false
	}
	return s.Get(s.currentID)
}

func (s *SessionStore) Get(id string) (domain.Session, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.sessions[i], true
	}
	return domain.Session{}, false
}

func (s *SessionStore) Create(url string, source domain.Source) domain.Session {
	if url == "" {
		url = domain.HomeURL
	}
	session := domain.Session{
		ID:        s.idGen.New(),
		URL:       url,
		Source:    source,
		CreatedAt: s.clock.Now(),
	}
	s.sessions = append(s.sessions, session)
	s.currentID = session.ID
	s.notify()
	return session
}

func (s *SessionStore) Select(id string) bool {
	if s.indexOf(id) < 0 || s.currentID == id {
		return false
	}
	s.currentID = id
	s.notify()
	return true
}

func (s *SessionStore) Remove(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.sessions = append(s.sessions[:i], s.sessions[i+1:]...)
	if s.currentID == id {
		s.currentID = ""
		if n := len(s.sessions); n > 0 {
			s.currentID = s.sessions[n-1].ID
		}
	}
	s.notify()
	return true
}

func (s *SessionStore) RemoveAll() {
	s.sessions = nil
	s.currentID = ""
	s.notify()
}

// UpdateURL and UpdateProgress mutate a session in place without a list emission.
func (s *SessionStore) UpdateURL(id, url string) {
	if i := s.indexOf(id); i >= 0 {
		s.sessions[i].URL = url
	}
}

func (s *SessionStore) UpdateProgress(id string, progress int) {
	if i := s.indexOf(id); i >= 0 {
		s.sessions[i].Progress = domain.ClampProgress(progress)
	}
}

func (s *SessionStore) indexOf(id string) int {
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			return i
		}
	}
	return -1
}

// notify queues a snapshot. Changes made by an observer while a snapshot is
// being delivered are delivered afterwards, in the order they happened.
func (s *SessionStore) notify() {
	s.pending = append(s.pending, s.Sessions())
	if s.delivering {
		return
	}
	s.delivering = true
	defer func() { s.delivering = false }()
	for len(s.pending) > 0 {
		snapshot := s.pending[0]
		s.pending = s.pending[1:]
		ids := append([]int(nil), s.order...)
		for _, obsID := range ids {
			fn, ok := s.observers[obsID]
			if !ok {
				continue
			}
			list := make([]domain.Session, len(snapshot))
			copy(list, snapshot)
			fn(list)
		}
	}
}
