package chord

import (
	"math"

	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/model"
	"github.com/jsphweid/maestro/util"
)

// AverageVelocity is the mean velocity of the sounding notes in group. ok is
// false when nothing sounds.
func AverageVelocity(group model.ChordGroup) (avg float64, ok bool) {
	var total, count int
	for _, evt := range group {
		if evt.Sounding() {
			total += int(evt.Velocity)
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return float64(total) / float64(count), true
}

// Remap shifts every sounding note by the same amount so the chord's average
// velocity lands on trigger, clamped to the MIDI range. Note offs and zero
// velocity note ons pass through. The input group is not modified.
func Remap(group model.ChordGroup, trigger uint8) model.ChordGroup {
	res := make(model.ChordGroup, len(group))
	copy(res, group)

	avg, ok := AverageVelocity(group)
	if !ok {
		return res
	}

	shift := float64(trigger) - avg
	for i, evt := range res {
		if !evt.Sounding() {
			continue
		}
		v := math.Round(float64(evt.Velocity) + shift)
		res[i].Velocity = uint8(util.Clamp(v, 0, constants.MaxVelocity))
	}
	return res
}
