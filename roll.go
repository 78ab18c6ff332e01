package rollsynth

// Tempo and TimeSignature fix how beats map to seconds: 84 beats per minute,
// with a quarter note as the beat unit.
const (
	Tempo         float32 = 84
	TimeSignature float32 = 1.0 / 4.0
)

// Roll is a position or length on the piano roll, in beats.
type Roll float32

// Seconds converts the roll value into seconds using Tempo and TimeSignature.
func (r Roll) Seconds() float32 {
	return float32(r) * TimeSignature * 60 / Tempo
}

// Add returns the sum of two roll values. The raw beat values are summed before
// any conversion, so r.Add(o).Seconds() equals r.Seconds()+o.Seconds() up to
// rounding.
func (r Roll) Add(o Roll) Roll {
	return r + o
}
