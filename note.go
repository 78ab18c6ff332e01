package rollsynth

import "fmt"

type (
	// Note is one scheduled note of a song: what to play, when, for how long,
	// how loud, and with which instrument of the Patch.
	Note struct {
		Pitch      Pitch
		Start      Roll
		Duration   Roll
		Velocity   float32
		Instrument string
	}

	// Voice binds a Note to its resolved Timbre for one render. It owns the
	// note's private filter state, so two notes of the same instrument never
	// share filter history.
	Voice struct {
		Note   Note
		Timbre *Timbre
		filter *Biquad
	}
)

// End returns the time in seconds when the note's nominal duration ends.
func (n *Note) End() float32 {
	return n.Start.Add(n.Duration).Seconds()
}

// NewVoice prepares the note for rendering with the given timbre, building a
// fresh filter if the timbre has one.
func NewVoice(note Note, timbre *Timbre) (*Voice, error) {
	v := &Voice{Note: note, Timbre: timbre}
	if timbre.Filter != nil {
		f, err := timbre.Filter.LowPass(SampleRate)
		if err != nil {
			return nil, fmt.Errorf("cannot build filter for note %v: %w", note.Pitch, err)
		}
		v.filter = f
	}
	return v, nil
}

// Play returns the voice's sample at time t. Successive calls must come in
// increasing t, as they advance the voice's filter.
func (v *Voice) Play(t float32) float32 {
	if !v.IsActive(t) {
		return 0
	}
	if t < v.Note.Start.Seconds() {
		return 0
	}
	return v.Timbre.Play(t, v.Note.Pitch.Frequency(), &v.Note, v.filter) * v.Note.Velocity
}

// IsActive reports whether t is within the note's nominal duration or the
// envelope tail of its timbre.
func (v *Voice) IsActive(t float32) bool {
	return t < v.Note.End() || v.Timbre.IsActive(t, &v.Note)
}

// Reset clears the voice's filter history so it can be rendered again. The
// renderers call it before rendering a voice.
func (v *Voice) Reset() {
	if v.filter != nil {
		v.filter.Reset()
	}
}
