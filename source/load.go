package source

import (
	"path/filepath"
	"strings"
)

// Load picks the reader from the file extension: .wav files are decoded as
// PCM audio, anything else is read as timestamp,amplitude CSV.
func Load(path string) (*Signal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return LoadWAV(path)
	default:
		return LoadCSV(path)
	}
}
