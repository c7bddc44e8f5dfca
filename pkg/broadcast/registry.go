package broadcast

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Handle identifies one registration in a Registry.
type Handle string

type entry[T any] struct {
	handle Handle
	queue  *Queue[T]
}

// Registry is the set of queues that currently receive broadcasts.
// It holds references only; every queue is owned by the session that
// registered it, and that session removes its own entry on exit.
//
// Membership is stored as an immutable slice swapped atomically on every
// change. Writers serialize on a mutex, readers never lock.
type Registry[T any] struct {
	mu      sync.Mutex // serializes writers only
	entries atomic.Pointer[[]entry[T]]
	closed  bool
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	r := &Registry[T]{}
	empty := make([]entry[T], 0)
	r.entries.Store(&empty)
	return r
}

// Register adds q to the active set and returns the handle used to remove it.
// Registering on a closed registry closes q immediately, so its consumer
// unwinds instead of waiting for broadcasts that will never come.
func (r *Registry[T]) Register(q *Queue[T]) Handle {
	h := Handle(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		q.Close()
		return h
	}

	cur := *r.entries.Load()
	next := make([]entry[T], len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, entry[T]{handle: h, queue: q})
	r.entries.Store(&next)

	return h
}

// Deregister removes the queue registered under h.
// Unknown or already removed handles are ignored.
func (r *Registry[T]) Deregister(h Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := *r.entries.Load()
	idx := -1
	for i, e := range cur {
		if e.handle == h {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	next := make([]entry[T], 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	r.entries.Store(&next)
}

// Snapshot returns the registered queues in registration order.
// The returned slice is a private copy; later changes to the registry do not affect it.
func (r *Registry[T]) Snapshot() []*Queue[T] {
	cur := *r.entries.Load()
	out := make([]*Queue[T], len(cur))
	for i, e := range cur {
		out[i] = e.queue
	}
	return out
}

// Len returns the number of registered queues.
func (r *Registry[T]) Len() int {
	return len(*r.entries.Load())
}

// Contains reports whether h is currently registered.
func (r *Registry[T]) Contains(h Handle) bool {
	for _, e := range *r.entries.Load() {
		if e.handle == h {
			return true
		}
	}
	return false
}

// Close drains the registry at shutdown: every registered queue is closed
// and removed, and later registrations are rejected. Close is idempotent.
func (r *Registry[T]) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	cur := *r.entries.Load()
	empty := make([]entry[T], 0)
	r.entries.Store(&empty)
	r.mu.Unlock()

	for _, e := range cur {
		e.queue.Close()
	}
}
