package chord

import (
	"github.com/jsphweid/maestro/model"
)

// HasSounding reports whether the group holds at least one NoteOn with a
// non-zero velocity.
func HasSounding(group model.ChordGroup) bool {
	for _, evt := range group {
		if evt.Sounding() {
			return true
		}
	}
	return false
}

// NextChord returns the chord group starting at from and the index of the
// first event not included in it.
//
// A gap larger than sensitivity closes the group, unless nothing in the group
// sounds yet: runs of note offs are carried into the next playable chord. The
// last event of seq always joins the final group.
func NextChord(seq []model.EventRecord, from int, sensitivity float64) (model.ChordGroup, int) {
	if from < 0 {
		from = 0
	}

	var group model.ChordGroup
	i := from
	for i < len(seq) {
		evt := seq[i]

		if i == len(seq)-1 {
			group = append(group, evt)
			return group, len(seq)
		}

		if evt.Delta > sensitivity && HasSounding(group) {
			return group, i
		}

		group = append(group, evt)
		i++
	}

	return group, i
}

// Segment splits a whole sequence into the groups a performer would trigger.
func Segment(seq []model.EventRecord, sensitivity float64) []model.ChordGroup {
	var groups []model.ChordGroup
	for i := 0; i < len(seq); {
		var group model.ChordGroup
		group, i = NextChord(seq, i, sensitivity)
		groups = append(groups, group)
	}
	return groups
}

// Notes lists the pitches started by the group.
func Notes(group model.ChordGroup) model.Notes {
	var notes model.Notes
	for _, evt := range group {
		if evt.Sounding() {
			notes = append(notes, evt.Note)
		}
	}
	return notes
}
