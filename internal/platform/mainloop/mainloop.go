// Package mainloop marshals work from background goroutines back onto the
// single UI scheduling context.
package mainloop

import "sync"

// Poster schedules fn to run on the UI context. Implementations must not run
// fn on the calling goroutine unless that goroutine is the UI context.
type Poster interface {
	Post(fn func())
}

// PosterFunc adapts a plain function, e.g. a bubbletea program's Send wrapper.
type PosterFunc func(fn func())

func (f PosterFunc) Post(fn func()) { f(fn) }

// Queue is a Poster whose work runs when the owner calls Drain. It backs the
// headless CLI paths and tests.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	notify  chan struct{}
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Ready is signalled at least once after work is posted.
func (q *Queue) Ready() <-chan struct{} { return q.notify }

// Drain runs everything posted so far, including work posted while draining,
// in posting order. It returns how many functions ran.
func (q *Queue) Drain() int {
	ran := 0
	for {
		q.mu.Lock()
		batch := q.pending
		q.pending = nil
		q.mu.Unlock()
		if len(batch) == 0 {
			return ran
		}
		for _, fn := range batch {
			fn()
			ran++
		}
	}
}
