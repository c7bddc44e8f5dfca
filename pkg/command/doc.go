// Package command admits client-submitted control commands into the broadcast core.
//
// A command is a short token checked against a Vocabulary. Accepted tokens are
// wrapped as {"type":"control","command":<token>} and broadcast to every
// connected client; rejected tokens cause no side effect at all. Acceptance
// means the command was admitted for broadcast, not that any client received it.
package command
