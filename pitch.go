package rollsynth

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Pitch is a named musical pitch. Its value is a MIDI-like key number.
//
// The synthesizer plays a pitch at a frequency equal to its raw key number in
// Hz (see Frequency); it does not do equal-tempered pitch-to-Hz conversion.
// Songs are tuned with that in mind.
type Pitch uint8

var pitchNames = [12]string{"C", "Cs", "D", "Ds", "E", "F", "Fs", "G", "Gs", "A", "As", "B"}

// Frequency returns the pitch's raw key number reinterpreted as Hz.
func (p Pitch) Frequency() float32 {
	return float32(p)
}

// String returns the name of the pitch, e.g. "C4" or "Fs2". Key numbers below
// C0 or above B8 are printed as plain integers.
func (p Pitch) String() string {
	if p < C0 || p > B8 {
		return strconv.Itoa(int(p))
	}
	return fmt.Sprintf("%s%d", pitchNames[p%12], int(p)/12-1)
}

// ParsePitch parses a pitch name ("C4", "Fs2", "cs3") or a plain key number
// ("60").
func ParsePitch(s string) (Pitch, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return 0, fmt.Errorf("pitch %v out of range", n)
		}
		return Pitch(n), nil
	}
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid pitch %q", s)
	}
	i := len(s) - 1
	octave := int(s[i] - '0')
	if octave < 0 || octave > 8 {
		return 0, fmt.Errorf("invalid octave in pitch %q", s)
	}
	name := s[:i]
	for k, n := range pitchNames {
		if strings.EqualFold(n, name) {
			return C0 + Pitch(octave*12+k), nil
		}
	}
	return 0, fmt.Errorf("invalid note name in pitch %q", s)
}

func (p Pitch) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *Pitch) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParsePitch(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*p = v
	return nil
}

func (p Pitch) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Pitch) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		var n int
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("pitch should be a name or a number: %s", b)
		}
		s = strconv.Itoa(n)
	}
	v, err := ParsePitch(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
