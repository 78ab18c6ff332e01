package midi

import (
	"golang.org/x/exp/slices"
)

// noteBuilder pairs note on and note off events into Notes while a track is
// decoded. A note off ends the oldest sounding note with the same channel and
// key.
type noteBuilder struct {
	notes    []Note
	sounding map[uint16][]int // channel<<8 | key -> indices into notes
}

func (b *noteBuilder) add(e Event, tick uint32) {
	if b.sounding == nil {
		b.sounding = make(map[uint16][]int)
	}
	k := uint16(e.Channel)<<8 | uint16(e.Key)
	switch e.Kind {
	case NoteOn:
		b.sounding[k] = append(b.sounding[k], len(b.notes))
		b.notes = append(b.notes, Note{Channel: e.Channel, Key: e.Key, Velocity: e.Velocity, StartTick: tick})
	case NoteOff:
		q := b.sounding[k]
		if len(q) == 0 {
			return
		}
		n := &b.notes[q[0]]
		n.Duration = tick - n.StartTick
		b.sounding[k] = slices.Delete(q, 0, 1)
	}
}

// finish ends the notes still sounding at the end of the track and returns
// all notes ordered by start tick.
func (b *noteBuilder) finish(end uint32) []Note {
	for _, q := range b.sounding {
		for _, i := range q {
			b.notes[i].Duration = end - b.notes[i].StartTick
		}
	}
	slices.SortStableFunc(b.notes, func(x, y Note) int {
		switch {
		case x.StartTick < y.StartTick:
			return -1
		case x.StartTick > y.StartTick:
			return 1
		}
		return 0
	})
	return b.notes
}
