// Package uithread serialises view mutations onto the goroutine that owns the
// UI. Any goroutine may Post; only the owner calls Drain or Run.
package uithread

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Poster schedules callbacks on the UI goroutine.
type Poster interface {
	Post(fn func()) bool
}

// Queue is a FIFO of callbacks drained by the UI owner.
type Queue struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
	logger  logrus.FieldLogger
}

// Option customises a Queue.
type Option func(*Queue)

// WithLogger sets the logger used to report recovered callback panics.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// New returns an empty queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		wake:   make(chan struct{}, 1),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// Post schedules fn. It is safe for concurrent use and reports false when fn
// is nil or the queue is closed.
func (q *Queue) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.pending = append(q.pending, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

// Len reports the number of pending callbacks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Drain runs the callbacks pending at call time and returns how many ran.
// Callbacks posted while draining run on the next Drain.
func (q *Queue) Drain() int {
	q.mu.Lock()
	callbacks := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, callback := range callbacks {
		q.run(callback)
	}
	return len(callbacks)
}

// Run drains the queue whenever callbacks arrive until ctx is done or the
// queue is closed. Pending callbacks are drained once more before returning.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
			q.Drain()
			if q.isClosed() {
				q.Drain()
				return nil
			}
		}
	}
}

// Close stops accepting callbacks and wakes Run.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue) run(callback func()) {
	defer func() {
		if r := recover(); r != nil {
			q.logger.WithField("panic", r).Error("uithread: callback panicked")
		}
	}()
	callback()
}

// Inline runs callbacks immediately on the posting goroutine. It suits
// platforms without a dedicated UI goroutine, such as server-side HTML.
type Inline struct{}

func (Inline) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	fn()
	return true
}
