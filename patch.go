package rollsynth

import (
	"errors"
	"fmt"
	"sort"
)

type (
	// Patch is the configuration table of a song. Oscillators, envelopes and
	// filters are defined once, by name, and instruments refer to them by those
	// names, so many instruments can share the same building blocks.
	Patch struct {
		Oscillators map[string]Oscillator `yaml:",omitempty" json:",omitempty"`
		Envelopes   map[string]Envelope   `yaml:",omitempty" json:",omitempty"`
		Filters     map[string]FilterSpec `yaml:",omitempty" json:",omitempty"`
		Instruments map[string]Instrument
	}

	// Instrument is a recipe for a sound: the oscillators that are summed, an
	// optional envelope and an optional low-pass filter, all referred to by
	// their names in the Patch, and an overall velocity. Envelope = "" and
	// Filter = "" mean no envelope and no filter.
	Instrument struct {
		Oscillators []string `yaml:",flow"`
		Envelope    string   `yaml:",omitempty" json:",omitempty"`
		Filter      string   `yaml:",omitempty" json:",omitempty"`
		Velocity    float32
	}

	// Timbre is an Instrument with the names resolved against a Patch. It is
	// immutable and can be shared by any number of voices; the per-note filter
	// state lives in Voice.
	Timbre struct {
		Oscillators []Oscillator
		Envelope    *Envelope
		Filter      *FilterSpec
		Velocity    float32
	}
)

// Timbre resolves the named instrument.
func (p *Patch) Timbre(name string) (*Timbre, error) {
	instr, ok := p.Instruments[name]
	if !ok {
		return nil, fmt.Errorf("instrument %q not found in patch", name)
	}
	ret := &Timbre{Velocity: instr.Velocity, Oscillators: make([]Oscillator, 0, len(instr.Oscillators))}
	for _, o := range instr.Oscillators {
		osc, ok := p.Oscillators[o]
		if !ok {
			return nil, fmt.Errorf("instrument %q: oscillator %q not found in patch", name, o)
		}
		ret.Oscillators = append(ret.Oscillators, osc)
	}
	if instr.Envelope != "" {
		env, ok := p.Envelopes[instr.Envelope]
		if !ok {
			return nil, fmt.Errorf("instrument %q: envelope %q not found in patch", name, instr.Envelope)
		}
		ret.Envelope = &env
	}
	if instr.Filter != "" {
		f, ok := p.Filters[instr.Filter]
		if !ok {
			return nil, fmt.Errorf("instrument %q: filter %q not found in patch", name, instr.Filter)
		}
		ret.Filter = &f
	}
	return ret, nil
}

// InstrumentNames returns the names of the instruments, sorted alphabetically.
func (p *Patch) InstrumentNames() []string {
	ret := make([]string, 0, len(p.Instruments))
	for k := range p.Instruments {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Validate checks that every instrument resolves and that the oscillators,
// filters and envelopes have usable, finite parameters.
func (p *Patch) Validate() error {
	if len(p.Instruments) == 0 {
		return errors.New("patch contains no instruments")
	}
	for name, o := range p.Oscillators {
		if !finite(o.Velocity) {
			return fmt.Errorf("oscillator %q: velocity should be finite, got %v", name, o.Velocity)
		}
	}
	for name, e := range p.Envelopes {
		if !finite(e.Attack) || !finite(e.Decay) || !finite(e.DecayRatio) || !finite(e.Release) {
			return fmt.Errorf("envelope %q has non-finite parameters", name)
		}
		if e.Attack < 0 || e.Decay < 0 || e.Release < 0 {
			return fmt.Errorf("envelope %q has negative durations", name)
		}
	}
	for name, f := range p.Filters {
		if _, err := f.LowPass(SampleRate); err != nil {
			return fmt.Errorf("filter %q: %w", name, err)
		}
	}
	for _, name := range p.InstrumentNames() {
		if v := p.Instruments[name].Velocity; !finite(v) {
			return fmt.Errorf("instrument %q: velocity should be finite, got %v", name, v)
		}
		if _, err := p.Timbre(name); err != nil {
			return err
		}
	}
	return nil
}

// Play returns the timbre's sample at time t for frequency f. If the timbre
// has a filter, filter must be the note's own filter state; it is advanced by
// one sample, so calls for one note must come in increasing t.
func (tb *Timbre) Play(t, f float32, note *Note, filter *Biquad) float32 {
	var v float32
	for _, o := range tb.Oscillators {
		v += o.Play(t, f)
	}
	if tb.Envelope != nil {
		v *= tb.Envelope.Play(t, note)
	}
	if filter != nil {
		v = filter.Run(v)
	}
	return v * tb.Velocity
}

// IsActive reports whether the timbre's envelope is still sounding for the
// note at t. A timbre without an envelope is never active by itself; its notes
// stay active only for their nominal duration.
func (tb *Timbre) IsActive(t float32, note *Note) bool {
	if tb.Envelope == nil {
		return false
	}
	return tb.Envelope.IsActive(t, note)
}
