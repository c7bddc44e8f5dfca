package broadcast_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/eventrelay/pkg/broadcast"
)

func TestRegistry_RegisterDeregister(t *testing.T) {
	t.Parallel()

	t.Run("register adds queue", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		q := broadcast.NewQueue[string]()

		h := r.Register(q)
		assert.NotEmpty(t, h)
		assert.True(t, r.Contains(h))
		assert.Equal(t, 1, r.Len())
		assert.Equal(t, []*broadcast.Queue[string]{q}, r.Snapshot())
	})

	t.Run("handles are unique", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		h1 := r.Register(broadcast.NewQueue[string]())
		h2 := r.Register(broadcast.NewQueue[string]())
		assert.NotEqual(t, h1, h2)
	})

	t.Run("deregister is idempotent", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		h := r.Register(broadcast.NewQueue[string]())

		r.Deregister(h)
		r.Deregister(h)
		r.Deregister(broadcast.Handle("never-registered"))

		assert.False(t, r.Contains(h))
		assert.Equal(t, 0, r.Len())
	})

	t.Run("snapshot keeps registration order", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		queues := make([]*broadcast.Queue[string], 4)
		handles := make([]broadcast.Handle, 4)
		for i := range queues {
			queues[i] = broadcast.NewQueue[string]()
			handles[i] = r.Register(queues[i])
		}

		r.Deregister(handles[1])

		assert.Equal(t, []*broadcast.Queue[string]{queues[0], queues[2], queues[3]}, r.Snapshot())
	})
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	t.Parallel()

	r := broadcast.NewRegistry[string]()
	h := r.Register(broadcast.NewQueue[string]())

	snap := r.Snapshot()
	r.Deregister(h)
	r.Register(broadcast.NewQueue[string]())
	r.Register(broadcast.NewQueue[string]())

	assert.Len(t, snap, 1, "snapshot must not observe later mutations")
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Close(t *testing.T) {
	t.Parallel()

	t.Run("close drains and closes queues", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		q1 := broadcast.NewQueue[string]()
		q2 := broadcast.NewQueue[string]()
		r.Register(q1)
		r.Register(q2)

		r.Close()

		assert.Equal(t, 0, r.Len())
		assert.False(t, q1.Push("x"))
		assert.False(t, q2.Push("x"))
	})

	t.Run("register after close closes the queue", func(t *testing.T) {
		t.Parallel()

		r := broadcast.NewRegistry[string]()
		r.Close()
		r.Close()

		q := broadcast.NewQueue[string]()
		h := r.Register(q)

		assert.False(t, r.Contains(h))
		assert.False(t, q.Push("x"))
	})
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	r := broadcast.NewRegistry[string]()

	const workers = 16
	const rounds = 200

	var wg sync.WaitGroup
	wg.Add(workers + 1)

	stop := make(chan struct{})
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				for _, q := range r.Snapshot() {
					assert.NotNil(t, q)
				}
			}
		}
	}()

	var workersWg sync.WaitGroup
	workersWg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			defer workersWg.Done()
			for range rounds {
				h := r.Register(broadcast.NewQueue[string]())
				r.Deregister(h)
			}
		}()
	}

	workersWg.Wait()
	close(stop)
	wg.Wait()

	assert.Equal(t, 0, r.Len())
}
