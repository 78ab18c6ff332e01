package midi

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Decoder decodes Standard MIDI Files. The zero value is ready to use.
type Decoder struct {
	// Logger receives diagnostics: text meta events, skipped chunks and
	// unrecognised status bytes. Nil discards them.
	Logger *log.Logger
}

type parser struct {
	data []byte

	// offset is our current position inside the data; end is the position
	// reads may not cross, the end of the current chunk.
	offset int
	end    int

	logger *log.Logger

	// These fields below are needed for better error reporting.
	stage      string
	stageIndex int
}

// Decode reads and decodes the file at path with a zero Decoder.
func Decode(path string) (*File, error) {
	var d Decoder
	return d.Decode(path)
}

// Parse decodes an in-memory file with a zero Decoder.
func Parse(data []byte) (*File, error) {
	var d Decoder
	return d.Parse(data)
}

// Decode reads and decodes the file at path.
func (d *Decoder) Decode(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read file %v: %w", path, err)
	}
	f, err := d.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("could not decode %v: %w", path, err)
	}
	return f, nil
}

// Parse decodes an in-memory file. Errors are of type *ParseError.
func (d *Decoder) Parse(data []byte) (file *File, err error) {
	p := &parser{data: data, end: len(data), logger: d.Logger, stageIndex: -1}
	defer func() {
		rv := recover()
		if rv == nil {
			return
		}
		if parseErr, ok := rv.(*ParseError); ok {
			file, err = nil, parseErr
			return
		}
		panic(rv)
	}()
	return p.parse(), nil
}

func (p *parser) parse() *File {
	p.startStage("header", -1)
	if id := string(p.read(4, "header id")); id != "MThd" {
		panic(p.errorf("not a MIDI file: header id %q, expected \"MThd\"", id))
	}
	length := p.readUint32("header length")
	if length < 6 {
		panic(p.errorf("header length %d too short", length))
	}
	f := &File{}
	f.Format = p.readUint16("format")
	numTracks := int(p.readUint16("track count"))
	f.Division = p.readUint16("division")
	p.skip(int(length-6), "header")
	p.logf("format = %d, track chunks = %d, division = %d", f.Format, numTracks, f.Division)
	f.Tracks = make([]Track, 0, numTracks)
	for len(f.Tracks) < numTracks {
		p.startStage("track", len(f.Tracks))
		id := string(p.read(4, "chunk id"))
		length := int(p.readUint32("chunk length"))
		if length > p.remaining() {
			panic(p.eofErrorf("chunk length %d exceeds the %d bytes left in the file", length, p.remaining()))
		}
		chunkEnd := p.offset + length
		if id != "MTrk" {
			// unknown chunk types are allowed by the format, and skipped
			p.logf("skipping %q chunk of %d bytes", id, length)
			p.offset = chunkEnd
			continue
		}
		p.end = chunkEnd
		f.Tracks = append(f.Tracks, p.parseTrack())
		p.offset = chunkEnd
		p.end = len(p.data)
	}
	return f
}

func (p *parser) parseTrack() Track {
	var (
		track      Track
		notes      noteBuilder
		prevStatus byte
		tick       uint32
		endOfTrack bool
	)
	for !endOfTrack && p.remaining() > 0 {
		delta := p.readVLQ("delta time")
		tick += delta
		status := p.readByte("status")
		if status < 0x80 {
			// running status: the byte is the first data byte of an event of
			// the same type as the previous one
			if prevStatus == 0 {
				panic(p.errorf("data byte %#X without a running status", status))
			}
			status = prevStatus
			p.offset--
		}
		switch s := Classify(status); s {
		case StatusNoteOff, StatusNoteOn:
			prevStatus = status
			key := p.readByte("key")
			velocity := p.readByte("velocity")
			kind := NoteOn
			if s == StatusNoteOff || velocity == 0 {
				kind = NoteOff
			}
			e := Event{Kind: kind, Channel: status & 0x0F, Key: key, Velocity: velocity, DeltaTick: delta}
			track.Events = append(track.Events, e)
			notes.add(e, tick)
		case StatusAftertouch, StatusControlChange, StatusProgramChange, StatusChannelPressure, StatusPitchBend:
			prevStatus = status
			p.skip(s.DataBytes(), strings.ToLower(s.String()))
		case StatusSystemExclusive:
			prevStatus = 0
			switch status {
			case 0xFF:
				endOfTrack = p.parseMeta(&track, tick)
			case 0xF0, 0xF7:
				length := p.readVLQ("sysex length")
				p.skip(int(length), "sysex data")
			default:
				p.logf("unrecognised status byte %#X", status)
			}
		default:
			p.logf("unrecognised status byte %#X", status)
		}
	}
	if !endOfTrack {
		p.logf("track ended without an end of track event")
	}
	track.Length = tick
	track.Notes = notes.finish(tick)
	return track
}

// parseMeta decodes the meta event following a 0xFF status byte and reports
// whether it was the end of the track.
func (p *parser) parseMeta(track *Track, tick uint32) bool {
	typ := p.readByte("meta type")
	length := p.readVLQ("meta length")
	data := p.read(int(length), "meta data")
	switch typ {
	case MetaSequence:
		if len(data) == 2 {
			p.logf("sequence number: %d", binary.BigEndian.Uint16(data))
		}
	case MetaText:
		p.logf("text: %s", decodeText(data))
	case MetaCopyright:
		p.logf("copyright: %s", decodeText(data))
	case MetaTrackName:
		track.Name = decodeText(data)
		p.logf("track name: %s", track.Name)
	case MetaInstrumentName:
		track.Instrument = decodeText(data)
		p.logf("instrument name: %s", track.Instrument)
	case MetaLyrics:
		p.logf("lyrics: %s", decodeText(data))
	case MetaMarker:
		p.logf("marker: %s", decodeText(data))
	case MetaCuePoint:
		p.logf("cue: %s", decodeText(data))
	case MetaChannelPrefix:
		if len(data) >= 1 {
			p.logf("channel prefix: %d", data[0])
		}
	case MetaEndOfTrack:
		return true
	case MetaSetTempo:
		if len(data) != 3 {
			p.logf("ignoring tempo event of %d bytes", len(data))
			break
		}
		us := uint32(data[0])<<16 | uint32(data[1])<<8 | uint32(data[2])
		track.Tempos = append(track.Tempos, TempoChange{Tick: tick, MicrosPerQuarter: us})
	case MetaTimeSignature:
		if len(data) < 2 {
			p.logf("ignoring time signature event of %d bytes", len(data))
			break
		}
		track.TimeSignatures = append(track.TimeSignatures, TimeSignature{Tick: tick, Numerator: data[0], Denominator: data[1]})
	case MetaKeySignature:
		if len(data) != 2 {
			p.logf("ignoring key signature event of %d bytes", len(data))
			break
		}
		track.KeySignature = &KeySignature{Sharps: int8(data[0]), Minor: data[1] == 1}
	default:
		p.logf("skipping meta event %#X of %d bytes", typ, len(data))
	}
	return false
}

func (p *parser) startStage(name string, index int) {
	p.stage = name
	p.stageIndex = index
}

func (p *parser) formatStage() string {
	if p.stageIndex >= 0 {
		return fmt.Sprintf("%s[%d]", p.stage, p.stageIndex)
	}
	return p.stage
}

func (p *parser) logf(format string, args ...any) {
	if p.logger == nil {
		return
	}
	p.logger.Printf("%s: %s", p.formatStage(), fmt.Sprintf(format, args...))
}

func (p *parser) errorf(format string, args ...any) *ParseError {
	text := fmt.Sprintf(format, args...)
	if tag := p.formatStage(); tag != "" {
		text = tag + ": " + text
	}
	return &ParseError{Message: text, Offset: p.offset}
}

func (p *parser) eofErrorf(format string, args ...any) *ParseError {
	e := p.errorf(format, args...)
	e.Err = io.ErrUnexpectedEOF
	return e
}

func (p *parser) remaining() int {
	return p.end - p.offset
}

func (p *parser) read(l int, what string) []byte {
	if p.remaining() < l {
		panic(p.eofErrorf("unexpected EOF while reading %s", what))
	}
	b := p.data[p.offset : p.offset+l]
	p.offset += l
	return b
}

func (p *parser) skip(l int, what string) {
	p.read(l, what)
}

func (p *parser) readByte(what string) byte {
	return p.read(1, what)[0]
}

func (p *parser) readUint16(what string) uint16 {
	return binary.BigEndian.Uint16(p.read(2, what))
}

func (p *parser) readUint32(what string) uint32 {
	return binary.BigEndian.Uint32(p.read(4, what))
}

// readVLQ reads a variable-length quantity: big-endian groups of 7 bits, the
// high bit set on every byte except the last. At most 4 bytes are allowed.
func (p *parser) readVLQ(what string) uint32 {
	var v uint32
	for i := 0; i < 4; i++ {
		b := p.readByte(what)
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v
		}
	}
	panic(p.errorf("%s: variable-length quantity longer than 4 bytes", what))
}
