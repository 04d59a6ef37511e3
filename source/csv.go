package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// LoadCSV reads a signal from a two-column CSV file. The signal is named
// after the file's base name.
func LoadCSV(path string) (*Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open signal file: %w", err)
	}
	defer f.Close()

	sig, err := ReadCSV(f, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return sig, nil
}

// ReadCSV parses "timestamp,amplitude" rows. There is no header; blank lines
// are skipped and any extra columns are ignored.
func ReadCSV(r io.Reader, name string) (*Signal, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	sig := &Signal{Name: name}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)
		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: expected timestamp,amplitude, got %d field(s)", line, len(record))
		}

		ts, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse timestamp: %w", line, err)
		}
		amp, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: parse amplitude: %w", line, err)
		}

		sig.Timestamps = append(sig.Timestamps, ts)
		sig.Samples = append(sig.Samples, amp)
	}

	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return sig, nil
}
