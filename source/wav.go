package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-audio/wav"
)

// LoadWAV reads a PCM WAV file. Multi-channel audio is mixed down to mono
// and samples are scaled to [-1, 1) by the source bit depth.
func LoadWAV(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("load %s: not a valid wav file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("load %s: decode pcm: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return nil, fmt.Errorf("load %s: missing audio format", path)
	}

	channels := buf.Format.NumChannels
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(decoder.BitDepth)
	}
	if bitDepth <= 0 {
		return nil, fmt.Errorf("load %s: unknown bit depth", path)
	}
	fullScale := float64(int64(1) << uint(bitDepth-1))

	frames := len(buf.Data) / channels
	mono := make([]float64, frames)
	for i := range frames {
		var sum float64
		for c := range channels {
			sum += float64(buf.Data[i*channels+c])
		}
		mono[i] = sum / float64(channels) / fullScale
	}

	sig, err := Uniform(filepath.Base(path), mono, float64(buf.Format.SampleRate))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return sig, nil
}
