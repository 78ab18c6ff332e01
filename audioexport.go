package rollsynth

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/viterin/vek/vek32"
)

// The only output format: mono 16-bit signed PCM at 44100 Hz.
const (
	SampleRate    = 44100
	BitsPerSample = 16
	NumChannels   = 1
)

// Normalize scales buffer in place so that its largest absolute value is 1 and
// returns the peak found before scaling. An all-silent buffer has peak 0 and is
// left as is.
func Normalize(buffer []float32) float32 {
	if len(buffer) == 0 {
		return 0
	}
	peak := vek32.Max(vek32.Abs(buffer))
	if peak == 0 || math.IsNaN(float64(peak)) {
		return peak
	}
	vek32.DivNumber_Inplace(buffer, peak)
	return peak
}

// PCM16 quantizes samples in [-1, 1] to 16-bit signed integers by multiplying
// with 2^15 and truncating. The result is clamped to [-32767, 32767], so a
// normalized peak always has magnitude 32767 regardless of its sign.
func PCM16(buffer []float32) []int16 {
	scale := float32(math.Pow(2, BitsPerSample-1))
	ret := make([]int16, len(buffer))
	for i, v := range buffer {
		ret[i] = int16(clamp(int(v*scale), -math.MaxInt16, math.MaxInt16))
	}
	return ret
}

// Wav normalizes a copy of buffer and encodes it as a 16-bit mono .wav file.
// Buffers containing NaN or infinite samples are rejected.
func Wav(buffer []float32) ([]byte, error) {
	for i, v := range buffer {
		if !finite(v) {
			return nil, fmt.Errorf("cannot encode sample %d: %v is not finite", i, v)
		}
	}
	normalized := make([]float32, len(buffer))
	copy(normalized, buffer)
	Normalize(normalized)
	pcm := PCM16(normalized)
	buf := new(bytes.Buffer)
	buf.Grow(44 + 2*len(pcm))
	wavHeader(len(pcm), buf)
	if err := binary.Write(buf, binary.LittleEndian, pcm); err != nil {
		return nil, fmt.Errorf("could not binary write data to binary buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteWav renders the song with r and saves it as a .wav file. The file is
// written under a temporary name in the same directory and renamed into place
// only when complete, so a failed render never leaves a partial file behind.
func WriteWav(filename string, song Song, r Renderer) error {
	buffer, err := Play(r, song)
	if err != nil {
		return err
	}
	wav, err := Wav(buffer)
	if err != nil {
		return err
	}
	return WriteFile(filename, wav)
}

// WriteFile writes contents to filename through a temporary file in the same
// directory, so readers never see a partially written file.
func WriteFile(filename string, contents []byte) error {
	f, err := os.CreateTemp(filepath.Dir(filename), "."+filepath.Base(filename)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %v: %w", filename, err)
	}
	tmp := f.Name()
	if _, err := f.Write(contents); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write file %v: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not write file %v: %w", filename, err)
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not set permissions of %v: %w", filename, err)
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not move %v into place: %w", filename, err)
	}
	return nil
}

// wavHeader writes the 44 byte RIFF/WAVE header of a PCM file with numSamples
// mono 16-bit samples. All fields are little-endian.
func wavHeader(numSamples int, buf *bytes.Buffer) {
	// Refer to: http://www-mmsp.ece.mcgill.ca/Documents/AudioFormats/WAVE/WAVE.html
	bytesPerSample := BitsPerSample / 8
	dataSize := numSamples * NumChannels * bytesPerSample
	buf.Write([]byte("RIFF"))
	binary.Write(buf, binary.LittleEndian, uint32(36+dataSize))
	buf.Write([]byte("WAVE"))
	buf.Write([]byte("fmt "))
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(buf, binary.LittleEndian, uint16(NumChannels))
	binary.Write(buf, binary.LittleEndian, uint32(SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(SampleRate*NumChannels*bytesPerSample)) // avgBytesPerSec
	binary.Write(buf, binary.LittleEndian, uint16(NumChannels*bytesPerSample))            // blockAlign
	binary.Write(buf, binary.LittleEndian, uint16(BitsPerSample))
	buf.Write([]byte("data"))
	binary.Write(buf, binary.LittleEndian, uint32(dataSize))
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
