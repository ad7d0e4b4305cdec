// Package export writes finished grids as zstd-compressed JSON.
//
// A file is a single JSON header line followed by the JSON grid body.
package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"antgen.dev/internal/models"
)

// Version is the current export format version
const Version = 1

var ErrVersion = errors.New("unsupported export version")

// Header leads every export
type Header struct {
	Version int    `json:"version"`
	Seed    uint64 `json:"seed"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

// Write encodes data to w
func Write(w io.Writer, data *models.GridData) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(enc)
	hb, _ := json.Marshal(Header{Version: Version, Seed: data.Seed, Width: data.Width, Height: data.Height})
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := json.NewEncoder(bw).Encode(data); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Read decodes an export from r
func Read(r io.Reader) (Header, *models.GridData, error) {
	var h Header
	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, nil, err
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return h, nil, fmt.Errorf("read header: %w", err)
	}
	if err := json.Unmarshal(line, &h); err != nil {
		return h, nil, fmt.Errorf("decode header: %w", err)
	}
	if h.Version != Version {
		return h, nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	var data models.GridData
	if err := json.NewDecoder(br).Decode(&data); err != nil {
		return h, nil, fmt.Errorf("json decode: %w", err)
	}
	return h, &data, nil
}

// WriteFile writes an export to path, creating parent directories
func WriteFile(path string, data *models.GridData) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads an export from path
func ReadFile(path string) (Header, *models.GridData, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, nil, err
	}
	defer f.Close()
	return Read(f)
}
