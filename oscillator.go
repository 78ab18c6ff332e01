package rollsynth

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"
)

type (
	// Waveform selects the periodic function an Oscillator generates.
	Waveform int

	// Oscillator generates one waveform, scaled by Velocity. Oscillators are
	// plain values stored in the Patch and shared by any number of
	// instruments.
	Oscillator struct {
		Waveform Waveform
		Velocity float32
	}
)

const (
	Sine Waveform = iota
	Square
	Triangle
	Sawtooth
	DC
)

var waveformNames = [...]string{"sine", "square", "triangle", "sawtooth", "dc"}

// Play returns the oscillator's sample at time t (seconds) for frequency f
// (Hz). The result lies in [-Velocity, Velocity].
//
// f must be positive for the periodic waveforms; for f <= 0 Play returns 0.
//
// Sawtooth is 2*f*s - 1 with s = (t - T/2) mod T taken in [0, T). Both the
// factor f and the wrap into [0, T) differ from the plain (t - T/2) % T ramp,
// which without scaling by f stays near -1 at audible frequencies.
func (o Oscillator) Play(t, f float32) float32 {
	if o.Waveform == DC {
		return o.Velocity
	}
	if f <= 0 {
		return 0
	}
	T := 1 / f
	m := mod(t, T)
	var v float32
	switch o.Waveform {
	case Sine:
		v = float32(math.Sin(float64(2 * math.Pi * f * t)))
	case Square:
		if m < T/2 {
			v = 1
		} else {
			v = -1
		}
	case Triangle:
		switch {
		case m < T/4:
			v = 4 * f * mod(t, T/2)
		case m < 3*T/4:
			v = -4*f*m + 2
		default:
			v = 4*f*mod(t, T/2) - 2
		}
	case Sawtooth:
		// rises from -1 at half period to 1, crossing 0 at whole periods
		s := mod(t-T/2, T)
		if s < 0 {
			s += T
		}
		v = 2*f*s - 1
	}
	return v * o.Velocity
}

// mod is the float32 remainder with the sign of x, like math.Mod.
func mod(x, y float32) float32 {
	return float32(math.Mod(float64(x), float64(y)))
}

func (w Waveform) String() string {
	if w < 0 || int(w) >= len(waveformNames) {
		return fmt.Sprintf("waveform(%d)", int(w))
	}
	return waveformNames[w]
}

// ParseWaveform parses a waveform name, case-insensitively.
func ParseWaveform(s string) (Waveform, error) {
	for i, n := range waveformNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Waveform(i), nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

func (w Waveform) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

func (w *Waveform) UnmarshalText(b []byte) error {
	v, err := ParseWaveform(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}

func (w Waveform) MarshalYAML() (any, error) {
	return w.String(), nil
}

func (w *Waveform) UnmarshalYAML(node *yaml.Node) error {
	return w.UnmarshalText([]byte(node.Value))
}
