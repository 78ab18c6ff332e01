package rollsynth

// Envelope is an attack-decay-sustain-release amplitude shape. All durations
// are in seconds.
//
// During attack the amplitude ramps linearly from 0 to DecayRatio. During decay
// it falls by 1/2 over Decay seconds, ending at DecayRatio-1/2. The sustain
// phase holds exactly 1 until the note's duration has passed after decay, and
// the release phase ramps from 1 down to 0 over Release seconds.
type Envelope struct {
	Attack     float32
	Decay      float32
	DecayRatio float32 `yaml:"decayratio" json:"decayratio"`
	Release    float32
}

// Play returns the envelope amplitude at time t for the given note.
func (e *Envelope) Play(t float32, note *Note) float32 {
	if !e.IsActive(t, note) {
		return 0
	}
	rt := t - note.Start.Seconds()
	dur := note.Duration.Seconds()
	if rt < e.Attack {
		return mod(rt, e.Attack) * e.DecayRatio / e.Attack
	}
	if rt < e.Attack+e.Decay {
		return e.DecayRatio - mod(rt-e.Attack, e.Decay)/(2*e.Decay)
	}
	if rt <= e.Attack+e.Decay+dur {
		return 1
	}
	// the offset is in (-Release, 0) here, so the ramp runs from 1 down to 0
	return -mod(rt-e.Attack-e.Decay-e.Release-dur, e.Release) / e.Release
}

// IsActive reports whether t is before the end of the note's release tail.
func (e *Envelope) IsActive(t float32, note *Note) bool {
	return t < note.Start.Seconds()+note.Duration.Seconds()+e.Length()
}

// Length returns the time the envelope adds on top of a note's duration.
func (e *Envelope) Length() float32 {
	return e.Attack + e.Decay + e.Release
}
