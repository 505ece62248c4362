package chord

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/jsphweid/maestro/model"
	"github.com/stretchr/testify/assert"
)

func TestRemapShiftsTowardTrigger(t *testing.T) {
	group := model.ChordGroup{on(60, 80, 0), on(64, 90, 0.01)}

	assert := assert.New(t)
	assert.Equal(model.ChordGroup{on(60, 95, 0), on(64, 105, 0.01)}, Remap(group, 100))
	// input left alone
	assert.Equal(uint8(80), group[0].Velocity)
}

func TestRemapLeavesNoteOffsAndSilentNoteOns(t *testing.T) {
	group := model.ChordGroup{off(55, 0), on(60, 40, 0), on(62, 0, 0), on(64, 60, 0)}

	assert.Equal(t, model.ChordGroup{off(55, 0), on(60, 110, 0), on(62, 0, 0), on(64, 127, 0)},
		Remap(group, 120))
}

func TestRemapClamps(t *testing.T) {
	group := model.ChordGroup{on(60, 10, 0), on(64, 120, 0)}

	cases := []struct {
		trigger uint8
		want    []uint8
	}{
		{trigger: 127, want: []uint8{72, 127}},
		{trigger: 1, want: []uint8{0, 56}},
		{trigger: 65, want: []uint8{10, 120}},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("trigger %d", c.trigger), func(t *testing.T) {
			res := Remap(group, c.trigger)
			assert.Equal(t, c.want, []uint8{res[0].Velocity, res[1].Velocity})
		})
	}
}

func TestRemapRounds(t *testing.T) {
	// avg 80.5, shift -0.5
	group := model.ChordGroup{on(60, 80, 0), on(64, 81, 0)}
	res := Remap(group, 80)
	assert.Equal(t, uint8(80), res[0].Velocity)
	assert.Equal(t, uint8(81), res[1].Velocity)
}

func TestRemapWithoutSoundingNotes(t *testing.T) {
	group := model.ChordGroup{off(60, 0), on(64, 0, 0)}
	assert.Equal(t, group, Remap(group, 100))
}

func TestRemapPreservesRelativeDynamics(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 500; n++ {
		size := 1 + r.Intn(6)
		group := make(model.ChordGroup, size)
		for i := range group {
			group[i] = on(uint8(60+i), uint8(1+r.Intn(127)), 0)
		}
		trigger := uint8(1 + r.Intn(127))
		avg, _ := AverageVelocity(group)
		shift := float64(trigger) - avg
		res := Remap(group, trigger)

		for i := range res {
			assert.LessOrEqual(t, res[i].Velocity, uint8(127))
			for j := range res {
				vi := float64(group[i].Velocity) + shift
				vj := float64(group[j].Velocity) + shift
				if vi < 0 || vi > 127 || vj < 0 || vj > 127 {
					continue
				}
				assert.Equal(t,
					int(group[i].Velocity)-int(group[j].Velocity),
					int(res[i].Velocity)-int(res[j].Velocity))
			}
		}
	}
}

func TestAverageVelocity(t *testing.T) {
	avg, ok := AverageVelocity(model.ChordGroup{on(60, 80, 0), on(64, 90, 0), off(67, 0), on(70, 0, 0)})
	assert.True(t, ok)
	assert.Equal(t, 85.0, avg)

	_, ok = AverageVelocity(nil)
	assert.False(t, ok)
}
