// Package handler exposes the relay over HTTP.
//
// Router mounts the event stream, the command ingress, the key-value reads
// and the health probes on a chi router with CORS applied. Endpoints are
// typed HandlerFuncs adapted with Wrap: path parameters are bound into the
// request struct by BindPath and errors are rendered as {"error": message}.
//
//	r := handler.Router(cfg.HTTP, handler.Deps{
//		Registry: registry,
//		Commands: ingress,
//		Store:    store,
//	})
//
// The event stream registers a stream.Session per connection and writes every
// broadcast as an SSE event named "update".
package handler
