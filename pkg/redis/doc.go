// Package redis connects the relay to Redis.
//
// The package wraps the go-redis client and adds:
//
//   - Connect, which retries the initial connection using the supplied Config.
//   - PubSub, an upstream.EventSource over SUBSCRIBE.
//   - Store, a read-only key-value helper for point queries whose Ping
//     doubles as the readiness probe.
//
// Config fields are populated from environment variables via
// github.com/caarlos0/env or from a YAML file.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error, probably terminate the application
//	}
//	defer client.Close()
//
//	relay := upstream.New(redis.NewPubSub(client), cfg.UpdateChannel, broadcaster)
//	store := redis.NewStore(client)
//
//	raw, ok, err := store.Get(ctx, "Weather")
//
// # Errors
//
// Sentinel errors (ErrRedisNotReady, ErrSubscribeFailed, ErrReadFailed, ...)
// are joined with the underlying go-redis errors using errors.Join, so both
// can be matched with errors.Is.
package redis
