package chord

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jsphweid/maestro/model"
	"github.com/stretchr/testify/assert"
)

const sensitivity = 0.05

func on(note, vel uint8, delta float64) model.EventRecord {
	return model.EventRecord{Kind: model.NoteOn, Note: note, Velocity: vel, Delta: delta}
}

func off(note uint8, delta float64) model.EventRecord {
	return model.EventRecord{Kind: model.NoteOff, Note: note, Delta: delta}
}

func TestNextChordSplitsOnGap(t *testing.T) {
	seq := []model.EventRecord{
		on(60, 80, 0),
		on(64, 90, 0.01),
		off(60, 2.0),
		off(64, 0.01),
	}

	assert := assert.New(t)

	group, next := NextChord(seq, 0, sensitivity)
	assert.Equal(model.ChordGroup{on(60, 80, 0), on(64, 90, 0.01)}, group)
	assert.Equal(2, next)

	group, next = NextChord(seq, next, sensitivity)
	assert.Equal(model.ChordGroup{off(60, 2.0), off(64, 0.01)}, group)
	assert.Equal(4, next)
}

func TestNextChordFoldsNoteOffsForward(t *testing.T) {
	seq := []model.EventRecord{
		off(60, 0),
		off(64, 1.0),
		on(67, 70, 1.0),
		on(72, 0, 0.02),
		on(76, 60, 0.5),
		off(76, 0.5),
	}

	assert := assert.New(t)

	group, next := NextChord(seq, 0, sensitivity)
	assert.Equal(model.ChordGroup{off(60, 0), off(64, 1.0), on(67, 70, 1.0), on(72, 0, 0.02)}, group)
	assert.Equal(4, next)

	group, next = NextChord(seq, next, sensitivity)
	assert.Equal(model.ChordGroup{on(76, 60, 0.5), off(76, 0.5)}, group)
	assert.Equal(6, next)
}

func TestNextChordZeroVelocityDoesNotCloseGroup(t *testing.T) {
	seq := []model.EventRecord{
		on(60, 0, 0),
		on(62, 70, 0.3),
		on(64, 70, 0.3),
		off(64, 0.3),
	}

	group, next := NextChord(seq, 0, sensitivity)
	assert.Equal(t, model.ChordGroup{on(60, 0, 0), on(62, 70, 0.3)}, group)
	assert.Equal(t, 2, next)
}

func TestNextChordLastEventForced(t *testing.T) {
	seq := []model.EventRecord{on(60, 80, 0), on(62, 80, 10)}

	group, next := NextChord(seq, 1, sensitivity)
	assert.Equal(t, model.ChordGroup{on(62, 80, 10)}, group)
	assert.Equal(t, 2, next)
}

func TestNextChordExhausted(t *testing.T) {
	seq := []model.EventRecord{on(60, 80, 0)}

	group, next := NextChord(seq, 1, sensitivity)
	assert.Empty(t, group)
	assert.Equal(t, 1, next)

	group, next = NextChord(nil, 0, sensitivity)
	assert.Empty(t, group)
	assert.Equal(t, 0, next)
}

func TestNextChordThresholdIsExclusive(t *testing.T) {
	seq := []model.EventRecord{on(60, 80, 0), on(64, 80, sensitivity), on(67, 80, 1), off(67, 1)}

	group, next := NextChord(seq, 0, sensitivity)
	assert.Len(t, group, 2)
	assert.Equal(t, 2, next)
}

func randomSequence(r *rand.Rand, n int) []model.EventRecord {
	seq := make([]model.EventRecord, n)
	for i := range seq {
		delta := r.Float64() * 0.1
		if r.Intn(4) == 0 {
			delta = r.Float64() * 3
		}
		note := uint8(r.Intn(128))
		switch r.Intn(3) {
		case 0:
			seq[i] = off(note, delta)
		case 1:
			seq[i] = on(note, 0, delta)
		default:
			seq[i] = on(note, uint8(1+r.Intn(127)), delta)
		}
	}
	return seq
}

func TestSegmentProperties(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for n := 0; n < 200; n++ {
		seq := randomSequence(r, r.Intn(40))
		t.Run(fmt.Sprintf("sequence %d of length %d", n, len(seq)), func(t *testing.T) {
			assert := assert.New(t)

			var joined []model.EventRecord
			groups := Segment(seq, sensitivity)
			for i, g := range groups {
				assert.NotEmpty(g)
				// only the final group may lack a sounding note
				if i < len(groups)-1 {
					assert.True(HasSounding(g))
				}
				joined = append(joined, g...)
			}

			if len(seq) == 0 {
				assert.Empty(joined)
				return
			}
			assert.Equal(seq, joined)
			last := groups[len(groups)-1]
			assert.Equal(seq[len(seq)-1], last[len(last)-1])
		})
	}
}

func TestNotes(t *testing.T) {
	group := model.ChordGroup{off(48, 0), on(60, 80, 0), on(64, 0, 0), on(67, 90, 0)}
	assert.Equal(t, model.Notes{60, 67}, Notes(group))
}
