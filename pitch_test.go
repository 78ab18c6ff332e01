package rollsynth_test

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vsariola/rollsynth"
)

func TestPitchTable(t *testing.T) {
	tests := []struct {
		pitch rollsynth.Pitch
		value int
		name  string
	}{
		{rollsynth.C0, 12, "C0"},
		{rollsynth.C4, 60, "C4"},
		{rollsynth.E4, 64, "E4"},
		{rollsynth.G4, 67, "G4"},
		{rollsynth.A4, 69, "A4"},
		{rollsynth.Fs2, 42, "Fs2"},
		{rollsynth.B8, 119, "B8"},
	}
	for _, tt := range tests {
		if int(tt.pitch) != tt.value {
			t.Errorf("%v = %d, want %d", tt.name, tt.pitch, tt.value)
		}
		if tt.pitch.String() != tt.name {
			t.Errorf("Pitch(%d).String() = %q, want %q", tt.value, tt.pitch.String(), tt.name)
		}
		if p, err := rollsynth.ParsePitch(tt.name); err != nil || p != tt.pitch {
			t.Errorf("ParsePitch(%q) = %v, %v", tt.name, p, err)
		}
		if tt.pitch.Frequency() != float32(tt.value) {
			t.Errorf("%v.Frequency() = %v, want %v", tt.name, tt.pitch.Frequency(), tt.value)
		}
	}
}

func TestParsePitchErrors(t *testing.T) {
	for _, s := range []string{"", "H4", "C9", "C", "Cb4", "300"} {
		if _, err := rollsynth.ParsePitch(s); err == nil {
			t.Errorf("ParsePitch(%q) should fail", s)
		}
	}
}

func TestNoteYAML(t *testing.T) {
	var n rollsynth.Note
	if err := yaml.Unmarshal([]byte("{pitch: Ds3, start: 2, duration: 0.5, velocity: 0.7, instrument: lead}"), &n); err != nil {
		t.Fatalf("could not unmarshal note: %v", err)
	}
	want := rollsynth.Note{Pitch: rollsynth.Ds3, Start: 2, Duration: 0.5, Velocity: 0.7, Instrument: "lead"}
	if n != want {
		t.Fatalf("got %+v, want %+v", n, want)
	}
	b, err := yaml.Marshal(n)
	if err != nil {
		t.Fatalf("could not marshal note: %v", err)
	}
	var back rollsynth.Note
	if err := yaml.Unmarshal(b, &back); err != nil || back != n {
		t.Fatalf("note did not survive yaml: %+v, %v\n%s", back, err, b)
	}
}
