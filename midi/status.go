package midi

// Status is the classification of a status byte.
type Status int

const (
	StatusOther Status = iota
	StatusNoteOff
	StatusNoteOn
	StatusAftertouch
	StatusControlChange
	StatusProgramChange
	StatusChannelPressure
	StatusPitchBend
	StatusSystemExclusive
)

var statusNames = [...]string{
	StatusOther:           "Other",
	StatusNoteOff:         "NoteOff",
	StatusNoteOn:          "NoteOn",
	StatusAftertouch:      "Aftertouch",
	StatusControlChange:   "ControlChange",
	StatusProgramChange:   "ProgramChange",
	StatusChannelPressure: "ChannelPressure",
	StatusPitchBend:       "PitchBend",
	StatusSystemExclusive: "SystemExclusive",
}

// Meta event types, the byte following 0xFF.
const (
	MetaSequence          = 0x00
	MetaText              = 0x01
	MetaCopyright         = 0x02
	MetaTrackName         = 0x03
	MetaInstrumentName    = 0x04
	MetaLyrics            = 0x05
	MetaMarker            = 0x06
	MetaCuePoint          = 0x07
	MetaChannelPrefix     = 0x20
	MetaEndOfTrack        = 0x2F
	MetaSetTempo          = 0x51
	MetaSMPTEOffset       = 0x54
	MetaTimeSignature     = 0x58
	MetaKeySignature      = 0x59
	MetaSequencerSpecific = 0x7F
)

// Classify maps a status byte to its Status by the high nibble. Bytes below
// 0x80 are data bytes and classify as StatusOther.
func Classify(b byte) Status {
	switch b & 0xF0 {
	case 0x80:
		return StatusNoteOff
	case 0x90:
		return StatusNoteOn
	case 0xA0:
		return StatusAftertouch
	case 0xB0:
		return StatusControlChange
	case 0xC0:
		return StatusProgramChange
	case 0xD0:
		return StatusChannelPressure
	case 0xE0:
		return StatusPitchBend
	case 0xF0:
		return StatusSystemExclusive
	}
	return StatusOther
}

// DataBytes returns how many data bytes follow a channel message status; 0
// for the others.
func (s Status) DataBytes() int {
	switch s {
	case StatusNoteOff, StatusNoteOn, StatusAftertouch, StatusControlChange, StatusPitchBend:
		return 2
	case StatusProgramChange, StatusChannelPressure:
		return 1
	}
	return 0
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "Other"
	}
	return statusNames[s]
}
