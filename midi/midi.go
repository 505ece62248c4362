package midi

import (
	"bytes"
	"io"
	"os"
	"sort"

	"github.com/jsphweid/maestro/event"
	"github.com/jsphweid/maestro/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Parse reads a Standard MIDI File.
func Parse(r io.Reader) (s *smf.SMF, e error) {
	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if rec := recover(); rec != nil {
			s, e = nil, errors.Errorf("parsing midi file: %v", rec)
		}
	}()

	res, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing midi file")
	}
	return res, nil
}

func ReadMidiFile(filepath string) (*smf.SMF, error) {
	dat, err := os.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "reading midi file")
	}
	return Parse(bytes.NewReader(dat))
}

type timedEvent struct {
	absTicks int64
	msg      smf.Message
}

// RawEvents merges every track of s into one stream ordered by absolute tick.
// Each event's Delta is the gap to the previous event in seconds, following
// the tempo map of the file.
func RawEvents(s *smf.SMF) []model.RawEvent {
	var merged []timedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, evt := range track {
			absTicks += int64(evt.Delta)
			merged = append(merged, timedEvent{absTicks: absTicks, msg: evt.Message})
		}
	}

	// ties keep track order
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].absTicks < merged[j].absTicks
	})

	res := make([]model.RawEvent, 0, len(merged))
	var prevMicros int64
	for _, te := range merged {
		micros := s.TimeAt(te.absTicks)
		raw := fromSMF(te.msg)
		raw.Delta = float64(micros-prevMicros) / 1e6
		prevMicros = micros
		res = append(res, raw)
	}
	return res
}

func fromSMF(msg smf.Message) model.RawEvent {
	var ch, key, vel uint8
	switch {
	case msg.IsMeta():
		return model.RawEvent{IsMeta: true, Kind: "meta"}
	case msg.GetNoteOn(&ch, &key, &vel):
		return model.RawEvent{Kind: event.KindNoteOn, Channel: ch, Note: key, Velocity: vel, HasVelocity: true}
	case msg.GetNoteOff(&ch, &key, &vel):
		return model.RawEvent{Kind: event.KindNoteOff, Channel: ch, Note: key, Velocity: vel, HasVelocity: true}
	default:
		return model.RawEvent{Kind: event.KindOther}
	}
}
