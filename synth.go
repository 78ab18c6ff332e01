package rollsynth

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/viterin/vek/vek32"
)

type (
	// Renderer turns a list of voices into a mono sample buffer at
	// SampleRate. The buffer ends at the first sample at which every voice is
	// inactive.
	Renderer interface {
		Name() string
		Render(voices []*Voice) []float32
	}

	// SerialRenderer renders sample by sample, summing all voices at each
	// sample instant. Voices are reset first, so the same voices can be
	// rendered again.
	SerialRenderer struct{}

	// ParallelRenderer renders every voice into its own buffer on a pool of
	// goroutines and sums the buffers afterwards. The output is identical to
	// SerialRenderer. Workers <= 0 means runtime.NumCPU().
	ParallelRenderer struct {
		Workers int
	}
)

// Play validates the song, prepares its voices and renders them with r.
func Play(r Renderer, song Song) ([]float32, error) {
	if err := song.Validate(); err != nil {
		return nil, fmt.Errorf("invalid song: %w", err)
	}
	voices, err := song.Voices()
	if err != nil {
		return nil, fmt.Errorf("could not prepare voices: %w", err)
	}
	return r.Render(voices), nil
}

// SampleTime returns the time in seconds of the sample at index i.
func SampleTime(i int) float32 {
	return float32(i) / float32(SampleRate)
}

// Length returns the number of samples until every voice is inactive.
func Length(voices []*Voice) int {
	i := 0
	for anyActive(voices, SampleTime(i)) {
		i++
	}
	return i
}

func anyActive(voices []*Voice, t float32) bool {
	for _, v := range voices {
		if v.IsActive(t) {
			return true
		}
	}
	return false
}

func (SerialRenderer) Name() string { return "Serial" }

func (SerialRenderer) Render(voices []*Voice) []float32 {
	for _, v := range voices {
		v.Reset()
	}
	var buffer []float32
	for i := 0; ; i++ {
		t := SampleTime(i)
		if !anyActive(voices, t) {
			break
		}
		var v float32
		for _, voice := range voices {
			// the conversion keeps the sum from being fused with the
			// voice's last multiply, as in ParallelRenderer
			v += float32(voice.Play(t))
		}
		buffer = append(buffer, v)
	}
	return buffer
}

func (r ParallelRenderer) Name() string { return fmt.Sprintf("Parallel (%d workers)", r.workers()) }

func (r ParallelRenderer) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.NumCPU()
}

func (r ParallelRenderer) Render(voices []*Voice) []float32 {
	length := Length(voices)
	buffers := make([][]float32, len(voices))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(r.workers(), len(voices)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				buffers[j] = renderVoice(voices[j], length)
			}
		}()
	}
	for j := range voices {
		jobs <- j
	}
	close(jobs)
	wg.Wait()
	buffer := make([]float32, length)
	// summed in note order, like SerialRenderer, so the rounding is the same
	for _, b := range buffers {
		vek32.Add_Inplace(buffer, b)
	}
	return buffer
}

func renderVoice(v *Voice, length int) []float32 {
	v.Reset()
	ret := make([]float32, length)
	for i := range ret {
		ret[i] = v.Play(SampleTime(i))
	}
	return ret
}
