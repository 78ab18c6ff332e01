package rollsynth

import (
	"fmt"
	"math"
)

// ButterworthQ is the Q factor of a second order Butterworth low-pass filter.
const ButterworthQ float32 = math.Sqrt2 / 2

type (
	// FilterSpec configures a low-pass filter: the cutoff frequency in Hz and
	// the Q factor. Q = 0 means ButterworthQ. A FilterSpec is only a
	// description; every Voice builds its own Biquad from it.
	FilterSpec struct {
		Cutoff float32
		Q      float32 `yaml:",omitempty" json:",omitempty"`
	}

	// Biquad is a single-section IIR filter in direct form 1. It keeps the two
	// previous inputs and outputs, so it must be fed samples in time order.
	Biquad struct {
		b0, b1, b2, a1, a2 float32
		x1, x2, y1, y2     float32
	}
)

// LowPass returns a new low-pass Biquad for the given sample rate, using the
// usual bilinear-transform (audio EQ cookbook) coefficients.
func (s FilterSpec) LowPass(sampleRate float32) (*Biquad, error) {
	q := s.Q
	if q == 0 {
		q = ButterworthQ
	}
	if !finite(s.Cutoff) || !finite(q) {
		return nil, fmt.Errorf("filter cutoff %v Hz and Q %v should be finite", s.Cutoff, q)
	}
	if q < 0 {
		return nil, fmt.Errorf("filter Q should be positive, got %v", q)
	}
	if s.Cutoff <= 0 || s.Cutoff > sampleRate/2 {
		return nil, fmt.Errorf("filter cutoff %v Hz should be in (0, %v] Hz", s.Cutoff, sampleRate/2)
	}
	omega := 2 * math.Pi * float64(s.Cutoff) / float64(sampleRate)
	cos := float32(math.Cos(omega))
	alpha := float32(math.Sin(omega)) / (2 * q)
	a0 := 1 + alpha
	b1 := (1 - cos) / a0
	return &Biquad{
		b0: b1 / 2,
		b1: b1,
		b2: b1 / 2,
		a1: -2 * cos / a0,
		a2: (1 - alpha) / a0,
	}, nil
}

// Run pushes one input sample through the filter and returns the output.
func (f *Biquad) Run(x float32) float32 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

// Reset clears the filter history.
func (f *Biquad) Reset() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}
