package rollsynth_test

import (
	"math"
	"testing"

	"github.com/vsariola/rollsynth"
)

const epsilon = 1e-4

func TestSinePeriodicAndBounded(t *testing.T) {
	for _, f := range []float32{60, 64, 67, 440, 1000} {
		o := rollsynth.Oscillator{Waveform: rollsynth.Sine, Velocity: 0.5}
		period := 1 / f
		for i := 0; i < 200; i++ {
			tm := float32(i) * 0.37 / 1000
			a := o.Play(tm, f)
			b := o.Play(tm+period, f)
			if math.Abs(float64(a-b)) > 1e-3 {
				t.Fatalf("sine at %v Hz not periodic: play(%v) = %v, play(%v) = %v", f, tm, a, tm+period, b)
			}
			if a < -0.5 || a > 0.5 {
				t.Fatalf("sine at %v Hz out of [-velocity, velocity]: %v", f, a)
			}
		}
	}
}

func TestWaveformBreakpoints(t *testing.T) {
	const f = 100 // period 10 ms
	tests := []struct {
		name     string
		waveform rollsynth.Waveform
		t        float32
		want     float32
	}{
		{"square first half", rollsynth.Square, 0.001, 1},
		{"square just before flip", rollsynth.Square, 0.0049, 1},
		{"square at half period", rollsynth.Square, 0.005, -1},
		{"square second half", rollsynth.Square, 0.009, -1},
		{"triangle start", rollsynth.Triangle, 0, 0},
		{"triangle quarter", rollsynth.Triangle, 0.0025, 1},
		{"triangle half", rollsynth.Triangle, 0.005, 0},
		{"triangle three quarters", rollsynth.Triangle, 0.0075, -1},
		{"sawtooth start", rollsynth.Sawtooth, 0, 0},
		{"sawtooth quarter", rollsynth.Sawtooth, 0.0025, 0.5},
		{"sawtooth half", rollsynth.Sawtooth, 0.005, -1},
		{"sawtooth three quarters", rollsynth.Sawtooth, 0.0075, -0.5},
		{"dc", rollsynth.DC, 0.1234, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := rollsynth.Oscillator{Waveform: tt.waveform, Velocity: 1}
			if got := o.Play(tt.t, f); math.Abs(float64(got-tt.want)) > epsilon {
				t.Errorf("play(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

func TestPeriodicWaveformsBounded(t *testing.T) {
	for _, w := range []rollsynth.Waveform{rollsynth.Square, rollsynth.Triangle, rollsynth.Sawtooth} {
		o := rollsynth.Oscillator{Waveform: w, Velocity: 0.25}
		for i := 0; i < 4410; i++ {
			if v := o.Play(rollsynth.SampleTime(i), 123); v < -0.25-epsilon || v > 0.25+epsilon {
				t.Fatalf("%v sample %d out of bounds: %v", w, i, v)
			}
		}
	}
}

func TestOscillatorZeroFrequency(t *testing.T) {
	o := rollsynth.Oscillator{Waveform: rollsynth.Sawtooth, Velocity: 1}
	if v := o.Play(0.5, 0); v != 0 {
		t.Errorf("sawtooth at 0 Hz = %v, want 0", v)
	}
	dc := rollsynth.Oscillator{Waveform: rollsynth.DC, Velocity: 0.3}
	if v := dc.Play(0.5, 0); v != 0.3 {
		t.Errorf("dc at 0 Hz = %v, want 0.3", v)
	}
}

func TestParseWaveform(t *testing.T) {
	w, err := rollsynth.ParseWaveform("Triangle")
	if err != nil || w != rollsynth.Triangle {
		t.Fatalf("ParseWaveform(Triangle) = %v, %v", w, err)
	}
	if _, err := rollsynth.ParseWaveform("noise"); err == nil {
		t.Fatalf("ParseWaveform(noise) should fail")
	}
}
