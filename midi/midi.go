// Package midi decodes Standard MIDI Files into their symbolic content: the
// note on / note off events of every track, the notes they form, and the track
// metadata (names, tempo, time and key signatures).
package midi

import "fmt"

type (
	// File is a decoded Standard MIDI File.
	File struct {
		// Format is 0 (single track), 1 (simultaneous tracks) or 2 (independent
		// tracks).
		Format uint16
		// Division is the time division field of the header. When the top bit
		// is clear, it is the number of ticks per quarter note.
		Division uint16
		Tracks   []Track
	}

	// Track is one MTrk chunk of the file.
	Track struct {
		Name       string `yaml:",omitempty"`
		Instrument string `yaml:",omitempty"`

		// Events holds the note on and note off events of the track, in file
		// order. Other channel messages are consumed but not kept.
		Events []Event `yaml:",omitempty"`

		// Notes are the events paired up into notes, sorted by start tick.
		Notes []Note `yaml:",omitempty"`

		Tempos         []TempoChange   `yaml:",omitempty"`
		TimeSignatures []TimeSignature `yaml:",omitempty"`
		KeySignature   *KeySignature   `yaml:",omitempty"`

		// Length is the tick of the last event of the track.
		Length uint32
	}

	// EventKind tells what a kept Event is.
	EventKind int

	Event struct {
		Kind      EventKind
		Channel   uint8
		Key       uint8
		Velocity  uint8
		DeltaTick uint32 `yaml:"delta"`
	}

	// Note is a note on event paired with the note off that ends it.
	Note struct {
		Channel   uint8
		Key       uint8
		Velocity  uint8
		StartTick uint32 `yaml:"start"`
		Duration  uint32
	}

	TempoChange struct {
		Tick uint32
		// MicrosPerQuarter is the length of a quarter note in microseconds.
		MicrosPerQuarter uint32 `yaml:"usperquarter"`
	}

	TimeSignature struct {
		Tick        uint32
		Numerator   uint8
		Denominator uint8 // as a power of two: 2 means a quarter note
	}

	KeySignature struct {
		Sharps int8 // negative for flats
		Minor  bool
	}
)

const (
	NoteOn EventKind = iota
	NoteOff
	Other
)

func (k EventKind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	}
	return "Other"
}

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// BPM converts the tempo into quarter notes per minute.
func (t TempoChange) BPM() float64 {
	if t.MicrosPerQuarter == 0 {
		return 0
	}
	return 60e6 / float64(t.MicrosPerQuarter)
}

func (s TimeSignature) String() string {
	return fmt.Sprintf("%d/%d", s.Numerator, 1<<s.Denominator)
}

// TicksPerQuarter returns the metrical time division, or 0 if the file uses
// SMPTE time.
func (f *File) TicksPerQuarter() uint16 {
	if f.Division&0x8000 != 0 {
		return 0
	}
	return f.Division
}
