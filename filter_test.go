package rollsynth_test

import (
	"math"
	"testing"

	"github.com/vsariola/rollsynth"
)

func TestLowPassPassesDC(t *testing.T) {
	f, err := rollsynth.FilterSpec{Cutoff: 300}.LowPass(rollsynth.SampleRate)
	if err != nil {
		t.Fatalf("LowPass failed: %v", err)
	}
	var y float32
	for i := 0; i < rollsynth.SampleRate; i++ {
		y = f.Run(1)
	}
	if math.Abs(float64(y-1)) > 1e-3 {
		t.Fatalf("low-pass response to DC settled at %v, want 1", y)
	}
}

func TestLowPassAttenuatesHighFrequencies(t *testing.T) {
	f, err := rollsynth.FilterSpec{Cutoff: 300}.LowPass(rollsynth.SampleRate)
	if err != nil {
		t.Fatalf("LowPass failed: %v", err)
	}
	o := rollsynth.Oscillator{Waveform: rollsynth.Sine, Velocity: 1}
	var peak float32
	for i := 0; i < rollsynth.SampleRate/10; i++ {
		y := f.Run(o.Play(rollsynth.SampleTime(i), 10000))
		if i > 1000 && float32(math.Abs(float64(y))) > peak {
			peak = float32(math.Abs(float64(y)))
		}
	}
	if peak > 0.01 {
		t.Fatalf("10 kHz sine through a 300 Hz low-pass has peak %v, want < 0.01", peak)
	}
}

func TestLowPassReset(t *testing.T) {
	f, _ := rollsynth.FilterSpec{Cutoff: 1000}.LowPass(rollsynth.SampleRate)
	first := f.Run(1)
	f.Run(1)
	f.Reset()
	if again := f.Run(1); again != first {
		t.Fatalf("after Reset, first output %v != %v", again, first)
	}
}

func TestLowPassInvalidParameters(t *testing.T) {
	for _, spec := range []rollsynth.FilterSpec{{Cutoff: 0}, {Cutoff: -5}, {Cutoff: 30000}, {Cutoff: 300, Q: -1}} {
		if _, err := spec.LowPass(rollsynth.SampleRate); err == nil {
			t.Errorf("LowPass(%+v) should fail", spec)
		}
	}
}
