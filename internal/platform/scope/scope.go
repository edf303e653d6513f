// Package scope ties background work to the visible lifetime of a UI
// component. Cancelling the scope cancels every child operation and drops any
// result that has not yet been applied on the UI context.
package scope

import (
	"context"
	"sync"

	"tvshell/internal/platform/mainloop"
)

// Work runs on a worker goroutine. The returned function, if any, is applied
// on the UI context, and only while the scope is still live.
type Work func(ctx context.Context) (apply func())

type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	poster mainloop.Poster

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func New(parent context.Context, poster mainloop.Poster) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel, poster: poster}
}

func (s *Scope) Context() context.Context { return s.ctx }

// Go starts work as a child of the scope. It reports false, without running
// anything, once the scope has been cancelled.
func (s *Scope) Go(work Work) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		apply := work(s.ctx)
		if apply == nil || s.ctx.Err() != nil {
			return
		}
		s.poster.Post(func() {
			// Teardown may have run on the UI context after the post.
			if s.ctx.Err() != nil {
				return
			}
			apply()
		})
	}()
	return true
}

// Cancel is idempotent; only the first call has an effect.
func (s *Scope) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.cancel()
}

func (s *Scope) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Wait blocks until every started child has returned.
func (s *Scope) Wait() { s.wg.Wait() }
