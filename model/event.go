package model

type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	}
	return "unknown"
}

// EventRecord is a note event that survived filtering. Delta is the gap to
// the previous event of the same sequence, in seconds.
type EventRecord struct {
	Kind     Kind
	Channel  uint8
	Note     uint8
	Velocity uint8
	Delta    float64
}

// Sounding reports whether the event starts a note, i.e. a NoteOn with a
// non-zero velocity.
func (e EventRecord) Sounding() bool {
	return e.Kind == NoteOn && e.Velocity > 0
}

// RawEvent is an event as delivered by a source or an input port, before
// filtering. Kind uses the names note_on / note_off for note events; any
// other name is ignored by the filter.
type RawEvent struct {
	IsMeta      bool
	Kind        string
	Channel     uint8
	Note        uint8
	Velocity    uint8
	HasVelocity bool
	Delta       float64
}
