package rollsynth_test

import (
	"math"
	"testing"

	"github.com/vsariola/rollsynth"
)

var testEnvelope = rollsynth.Envelope{Attack: 0.02, Decay: 0.05, DecayRatio: 1.5, Release: 0.05}

func TestEnvelopePhases(t *testing.T) {
	e := testEnvelope
	note := rollsynth.Note{Pitch: rollsynth.C4, Start: 4, Duration: 2, Velocity: 1}
	start := note.Start.Seconds()
	if v := e.Play(start, &note); v != 0 {
		t.Errorf("amplitude at note start = %v, want 0", v)
	}
	if v := e.Play(start+e.Attack-1e-6, &note); math.Abs(float64(v-e.DecayRatio)) > 1e-3 {
		t.Errorf("amplitude at end of attack = %v, want %v", v, e.DecayRatio)
	}
	if v := e.Play(start+e.Attack+e.Decay/2, &note); math.Abs(float64(v-(e.DecayRatio-0.25))) > 1e-3 {
		t.Errorf("amplitude in the middle of decay = %v, want %v", v, e.DecayRatio-0.25)
	}
	for _, rt := range []float32{e.Attack + e.Decay + 1e-3, e.Attack + e.Decay + 0.1, e.Attack + e.Decay + note.Duration.Seconds() - 1e-3} {
		if v := e.Play(start+rt, &note); v != 1 {
			t.Errorf("amplitude in sustain at %v = %v, want exactly 1", rt, v)
		}
	}
}

func TestEnvelopeReleaseDecays(t *testing.T) {
	e := testEnvelope
	note := rollsynth.Note{Pitch: rollsynth.C4, Start: 0, Duration: 1, Velocity: 1}
	releaseStart := e.Attack + e.Decay + note.Duration.Seconds()
	prev := float32(1.0001)
	for i := 1; i < 50; i++ {
		tm := releaseStart + float32(i)*e.Release/50
		v := e.Play(tm, &note)
		if v > prev || v < 0 || v > 1 {
			t.Fatalf("release amplitude at %v = %v, previous %v: should decay from 1 to 0", tm, v, prev)
		}
		prev = v
	}
	if v := e.Play(releaseStart+e.Release+1e-3, &note); v != 0 {
		t.Errorf("amplitude after release = %v, want 0", v)
	}
}

func TestEnvelopeIsActive(t *testing.T) {
	e := testEnvelope
	note := rollsynth.Note{Pitch: rollsynth.C4, Start: 0, Duration: 1, Velocity: 1}
	end := note.Duration.Seconds() + e.Attack + e.Decay + e.Release
	if !e.IsActive(end-1e-4, &note) {
		t.Errorf("envelope should be active just before %v", end)
	}
	if e.IsActive(end+1e-4, &note) {
		t.Errorf("envelope should be inactive after %v", end)
	}
}

func TestTimbreWithoutEnvelopeIsInactive(t *testing.T) {
	tb := &rollsynth.Timbre{Oscillators: []rollsynth.Oscillator{{Waveform: rollsynth.Sine, Velocity: 1}}, Velocity: 1}
	note := rollsynth.Note{Pitch: rollsynth.A4, Start: 0, Duration: 100, Velocity: 1}
	for _, tm := range []float32{0, 0.5, 10, 1000} {
		if tb.IsActive(tm, &note) {
			t.Fatalf("timbre without envelope reported active at %v", tm)
		}
	}
	voice, err := rollsynth.NewVoice(note, tb)
	if err != nil {
		t.Fatalf("NewVoice failed: %v", err)
	}
	if !voice.IsActive(0.5) {
		t.Errorf("voice should still be active within its nominal duration")
	}
}
