package upstream

// State is the lifecycle state of a Relay.
type State int32

const (
	StateStopped State = iota
	StateSubscribing
	StateListening
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateSubscribing:
		return "subscribing"
	case StateListening:
		return "listening"
	default:
		return "unknown"
	}
}
