package rollsynth

type (
	// AudioContext plays rendered 16-bit mono PCM at SampleRate on an audio
	// device.
	AudioContext interface {
		Play(pcm []int16) CloserWaiter
	}

	// CloserWaiter is a playback in progress. Wait blocks until playback
	// finishes; Close stops it early.
	CloserWaiter interface {
		Close() error
		Wait()
	}
)
