package player

import "github.com/pkg/errors"

type State int

const (
	Idle State = iota
	AwaitingTrigger
	Dispatching
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingTrigger:
		return "awaiting_trigger"
	case Dispatching:
		return "dispatching"
	case Finished:
		return "finished"
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, st := range []State{Idle, AwaitingTrigger, Dispatching, Finished} {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return errors.Errorf("unknown state %q", text)
}

// Snapshot describes the sequencer after a state transition.
type Snapshot struct {
	Piece    string `json:"piece"`
	Session  string `json:"session"`
	State    State  `json:"state"`
	Cursor   int    `json:"cursor"`
	Total    int    `json:"total"`
	Chords   int    `json:"chords"`
	Failures int    `json:"transmit_failures"`
}

type Observer interface {
	Observe(Snapshot)
}
