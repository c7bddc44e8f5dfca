// Package metrics exports relay activity as Prometheus metrics.
//
// Relay implements the observer interfaces of the broadcast, upstream,
// stream and command packages, so one value can be handed to each of them:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	b := broadcast.NewBroadcaster(registry, broadcast.WithObserver(m))
//	http.Handle("/metrics", metrics.Handler(reg))
package metrics
