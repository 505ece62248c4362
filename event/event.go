package event

import (
	"github.com/jsphweid/maestro/model"
	"gitlab.com/gomidi/midi/v2"
)

const (
	KindNoteOn  = "note_on"
	KindNoteOff = "note_off"
	KindOther   = "other"
)

// Convert validates a raw event. Only non-meta note_on / note_off events that
// carry a velocity are accepted.
func Convert(raw model.RawEvent) (model.EventRecord, bool) {
	if raw.IsMeta || !raw.HasVelocity {
		return model.EventRecord{}, false
	}

	var kind model.Kind
	switch raw.Kind {
	case KindNoteOn:
		kind = model.NoteOn
	case KindNoteOff:
		kind = model.NoteOff
	default:
		return model.EventRecord{}, false
	}

	return model.EventRecord{
		Kind:     kind,
		Channel:  raw.Channel,
		Note:     raw.Note,
		Velocity: raw.Velocity,
		Delta:    raw.Delta,
	}, true
}

// Filter keeps the note events of raws, in order, with their deltas untouched.
func Filter(raws []model.RawEvent) []model.EventRecord {
	res := make([]model.EventRecord, 0, len(raws))
	for _, raw := range raws {
		if rec, ok := Convert(raw); ok {
			res = append(res, rec)
		}
	}
	return res
}

func ToRaw(rec model.EventRecord) model.RawEvent {
	return model.RawEvent{
		Kind:        rec.Kind.String(),
		Channel:     rec.Channel,
		Note:        rec.Note,
		Velocity:    rec.Velocity,
		HasVelocity: true,
		Delta:       rec.Delta,
	}
}

// FromMessage turns a live message into a raw event. Input messages carry no
// meaningful delta.
func FromMessage(msg midi.Message) model.RawEvent {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		return model.RawEvent{Kind: KindNoteOn, Channel: ch, Note: key, Velocity: vel, HasVelocity: true}
	case msg.GetNoteOff(&ch, &key, &vel):
		return model.RawEvent{Kind: KindNoteOff, Channel: ch, Note: key, Velocity: vel, HasVelocity: true}
	default:
		return model.RawEvent{Kind: KindOther}
	}
}

// ToMessage encodes a record for sending.
func ToMessage(rec model.EventRecord) midi.Message {
	if rec.Kind == model.NoteOff {
		return midi.NoteOffVelocity(rec.Channel, rec.Note, rec.Velocity)
	}
	return midi.NoteOn(rec.Channel, rec.Note, rec.Velocity)
}

// IsTrigger reports whether a raw input event should advance playback.
func IsTrigger(raw model.RawEvent) bool {
	rec, ok := Convert(raw)
	return ok && rec.Sounding()
}
