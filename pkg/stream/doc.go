// Package stream bridges one long-lived client connection to the broadcast core.
//
// A Session owns a private broadcast.Queue for its whole lifetime. Start
// creates the queue and registers it; Serve pulls queued messages and hands
// them to a Transport until the client disconnects, the context is cancelled
// or the registry is drained at shutdown; Stop deregisters and closes the
// queue. Serve always calls Stop before returning, on every exit path.
//
//	sess := stream.Start(registry, stream.WithLogger(log))
//	defer sess.Stop()
//	return sess.Serve(r.Context(), transport)
package stream
