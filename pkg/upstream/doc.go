// Package upstream relays messages from an external publish/subscribe channel
// into a broadcast.Broadcaster.
//
// A Relay owns one subscription at a time and walks a small state machine:
//
//	Stopped -> Subscribing -> Listening -> (error) Subscribing -> ... -> Stopped
//
// Every message read from the subscription is forwarded verbatim as a
// broadcast.Raw payload. When the subscription fails the relay closes it,
// waits for the next delay of a capped exponential backoff and subscribes
// again. Upstream failures never end Run; only cancellation of its context does.
//
// # Usage
//
//	relay := upstream.New(redis.NewPubSub(client), "updates", broadcaster,
//	    upstream.WithConfig(cfg.Upstream),
//	    upstream.WithLogger(log),
//	)
//	go func() { _ = relay.Run(ctx) }()
//
// The event source is abstract: anything that implements EventSource can feed
// the relay. The redis package ships the go-redis backed implementation.
package upstream
