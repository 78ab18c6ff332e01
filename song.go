package rollsynth

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Song includes a Patch (the oscillators, envelopes, filters and instruments
// that make up the sounds) and the list of Notes played with them. Tempo is
// fixed, see Roll.
type Song struct {
	Patch Patch
	Notes []Note
}

// LoadSong reads a song from a .json or .yml file.
func LoadSong(filename string) (Song, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return Song{}, fmt.Errorf("could not read file %v: %w", filename, err)
	}
	return ParseSong(b)
}

// ParseSong decodes a song from JSON or, if that fails, YAML.
func ParseSong(b []byte) (Song, error) {
	var song Song
	if errJSON := json.Unmarshal(b, &song); errJSON != nil {
		song = Song{}
		if errYaml := yaml.Unmarshal(b, &song); errYaml != nil {
			return Song{}, fmt.Errorf("the song could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return song, nil
}

// Validate checks that the song can be rendered: the patch resolves, there is
// at least one note, and every note has a known instrument, a positive pitch
// and finite, non-negative timing.
func (s *Song) Validate() error {
	if err := s.Patch.Validate(); err != nil {
		return err
	}
	if len(s.Notes) == 0 {
		return errors.New("song contains no notes")
	}
	for i, n := range s.Notes {
		if _, ok := s.Patch.Instruments[n.Instrument]; !ok {
			return fmt.Errorf("note %d: unknown instrument %q", i, n.Instrument)
		}
		if n.Pitch == 0 {
			return fmt.Errorf("note %d: pitch should be > 0", i)
		}
		if !finite(float32(n.Start)) || !finite(float32(n.Duration)) || !finite(n.Velocity) {
			return fmt.Errorf("note %d: start, duration and velocity should be finite", i)
		}
		if n.Start < 0 || n.Duration < 0 {
			return fmt.Errorf("note %d: start and duration should be >= 0", i)
		}
	}
	return nil
}

// Voices resolves every note against the patch, returning one Voice per note,
// in note order.
func (s *Song) Voices() ([]*Voice, error) {
	timbres := make(map[string]*Timbre, len(s.Patch.Instruments))
	ret := make([]*Voice, 0, len(s.Notes))
	for i, n := range s.Notes {
		tb, ok := timbres[n.Instrument]
		if !ok {
			var err error
			if tb, err = s.Patch.Timbre(n.Instrument); err != nil {
				return nil, fmt.Errorf("note %d: %w", i, err)
			}
			timbres[n.Instrument] = tb
		}
		v, err := NewVoice(n, tb)
		if err != nil {
			return nil, fmt.Errorf("note %d: %w", i, err)
		}
		ret = append(ret, v)
	}
	return ret, nil
}

func finite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
