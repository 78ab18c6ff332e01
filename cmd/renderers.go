package cmd

import "github.com/vsariola/rollsynth"

// NewRenderer returns the renderer the command line tools use for the given
// number of worker goroutines: 1 renders serially, anything else renders in
// parallel, with 0 or less meaning one goroutine per CPU.
func NewRenderer(workers int) rollsynth.Renderer {
	if workers == 1 {
		return rollsynth.SerialRenderer{}
	}
	return rollsynth.ParallelRenderer{Workers: workers}
}
