package cmd_test

import (
	"testing"

	"github.com/vsariola/rollsynth"
	"github.com/vsariola/rollsynth/cmd"
)

func TestNewRenderer(t *testing.T) {
	if _, ok := cmd.NewRenderer(1).(rollsynth.SerialRenderer); !ok {
		t.Fatalf("one worker should render serially")
	}
	for _, workers := range []int{-1, 0, 4} {
		r, ok := cmd.NewRenderer(workers).(rollsynth.ParallelRenderer)
		if !ok || r.Workers != workers {
			t.Fatalf("NewRenderer(%d) = %#v, want a ParallelRenderer", workers, r)
		}
	}
}
