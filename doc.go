// Package eventrelay is a real-time relay between a Redis pub/sub channel and
// browser clients.
//
// Every message published on the update channel is fanned out to all
// connected clients as a server-sent event named "update". Clients send
// playback commands (pp, fwd, rew, out by default) with PUT /webcontrol/{command};
// accepted commands are broadcast to every client as {"type":"control","command":...}.
// Read-only JSON documents stored in Redis are served by GET /key/{key}.
//
// Packages:
//
//   - pkg/broadcast: unbounded client queues, the copy-on-write client registry
//     and the broadcaster that fans payloads out to it
//   - pkg/upstream: the subscription relay with its resubscription backoff
//   - pkg/stream: per-client sessions that drain a queue into a transport
//   - pkg/command: the command vocabulary and ingress
//   - pkg/redis: connection, pub/sub event source and key reader on go-redis
//   - handler: the HTTP API and the SSE transport
//   - cmd/eventrelay: process wiring
//
// Minimal wiring without Redis:
//
//	registry := broadcast.NewRegistry[string]()
//	b := broadcast.NewBroadcaster(registry)
//	router := handler.Router(cfg, handler.Deps{
//		Registry: registry,
//		Commands: command.NewIngress(command.DefaultVocabulary(), b),
//		Store:    store,
//	})
package eventrelay
