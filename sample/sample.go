package sample

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	// a few ticks of spread inside a chord, like a human hand
	roll = 8
)

type chordSpec struct {
	notes    []uint8
	velocity []uint8
}

var progression = []chordSpec{
	{notes: []uint8{48, 64, 67, 72}, velocity: []uint8{60, 55, 58, 90}},
	{notes: []uint8{53, 65, 69, 72}, velocity: []uint8{62, 54, 57, 85}},
	{notes: []uint8{55, 62, 67, 71}, velocity: []uint8{64, 56, 60, 95}},
	{notes: []uint8{48, 64, 67, 72}, velocity: []uint8{58, 50, 52, 80}},
}

// Create builds a short demo piece: a I-IV-V-I progression, one half note per
// chord, melody on top voiced louder than the accompaniment. Each chord starts
// together with the release of the previous one.
func Create() *smf.SMF {
	res := smf.New()
	res.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaTempo(90))

	for _, c := range progression {
		for i, note := range c.notes {
			delta := uint32(roll)
			if i == 0 {
				delta = 0
			}
			track.Add(delta, midi.NoteOn(0, note, c.velocity[i]))
		}
		held := uint32(2*ticksPerQuarter - roll*(len(c.notes)-1))
		for i, note := range c.notes {
			delta := uint32(0)
			if i == 0 {
				delta = held
			}
			track.Add(delta, midi.NoteOff(0, note))
		}
	}
	track.Close(0)

	res.Tracks = append(res.Tracks, track)
	return res
}

func Encode() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Create().WriteTo(&buf); err != nil {
		return nil, errors.Wrap(err, "encoding sample")
	}
	return buf.Bytes(), nil
}

func WriteFile(path string) error {
	data, err := Encode()
	if err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(path, data, 0644), "writing sample")
}
