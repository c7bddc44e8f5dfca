// Package broadcast provides the in-process fan-out core of the relay:
// unbounded per-client queues, a registry of the queues that are currently
// live, and a broadcaster that pushes one encoded payload onto every
// registered queue.
//
// Basic usage:
//
//	registry := broadcast.NewRegistry[string]()
//	defer registry.Close()
//
//	b := broadcast.NewBroadcaster(registry)
//
//	q := broadcast.NewQueue[string]()
//	h := registry.Register(q)
//	defer registry.Deregister(h)
//
//	_, _ = b.Broadcast(ctx, broadcast.Fields{"type": "control", "command": "pp"})
//
//	msg, err := q.Pop(ctx) // {"command":"pp","type":"control"}
//
// Delivery is push-only and never blocks on a consumer: queues are unbounded,
// so a slow reader only grows its own backlog. A push to a queue that was
// closed after the registry snapshot was taken is silently dropped.
//
// The registry is copy-on-write. Snapshot never takes a lock and always
// returns a consistent view, so registrations and removals that race with a
// broadcast can neither crash it nor block it.
package broadcast
