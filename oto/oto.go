package oto

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/rollsynth"
)

type (
	// OtoContext plays rendered songs through ebitengine/oto.
	OtoContext struct {
		context *oto.Context
	}

	OtoPlayback struct {
		player *oto.Player
	}
)

const otoBufferSize = 100 * time.Millisecond

// NewContext creates an oto context for mono 16-bit audio at
// rollsynth.SampleRate and waits until the audio device is ready.
func NewContext() (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rollsynth.SampleRate,
		ChannelCount: rollsynth.NumChannels,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts playing pcm in the background.
func (c *OtoContext) Play(pcm []int16) rollsynth.CloserWaiter {
	player := c.context.NewPlayer(bytes.NewReader(Int16ToLE(pcm)))
	player.Play()
	return &OtoPlayback{player: player}
}

// Wait blocks until the player has played everything it was given.
func (p *OtoPlayback) Wait() {
	for p.player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
}

// Close stops the playback and disposes of the player.
func (p *OtoPlayback) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}

// Int16ToLE converts samples into the little-endian byte stream oto expects.
func Int16ToLE(pcm []int16) []byte {
	ret := make([]byte, 2*len(pcm))
	for i, v := range pcm {
		binary.LittleEndian.PutUint16(ret[2*i:], uint16(v))
	}
	return ret
}
