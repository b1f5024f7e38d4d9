// Package export writes journal dispatches as zstd compressed JSON lines.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// Fix is a misoriented center recorded with a fix dispatch.
type Fix struct {
	Face        string `json:"face"`
	Orientation int    `json:"orientation"`
}

// Entry is one exported dispatch.
type Entry struct {
	SessionID     string `json:"session_id"`
	DispatchIndex int    `json:"dispatch_index"`
	TsMs          int64  `json:"ts_ms"`
	Mode          string `json:"mode"`
	Raw           string `json:"raw"`
	Tokens        string `json:"tokens"`
	MoveCount     int    `json:"move_count"`
	Fixes         []Fix  `json:"fixes,omitempty"`
}

// JSONLZstdWriter writes one JSON document per line through a zstd encoder.
type JSONLZstdWriter struct {
	mu  sync.Mutex
	enc *zstd.Encoder
	w   *bufio.Writer
	n   int
}

func NewJSONLZstdWriter(w io.Writer) (*JSONLZstdWriter, error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	return &JSONLZstdWriter{
		enc: enc,
		w:   bufio.NewWriterSize(enc, 128*1024),
	}, nil
}

func (w *JSONLZstdWriter) Write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	w.n++
	return nil
}

// Count returns the number of lines written.
func (w *JSONLZstdWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.n
}

// Close flushes buffered lines and finishes the zstd frame. It does not
// close the underlying writer.
func (w *JSONLZstdWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return nil
	}
	err := w.w.Flush()
	if cerr := w.enc.Close(); err == nil {
		err = cerr
	}
	w.enc = nil
	return err
}

// WriteFile writes entries to path, creating parent directories.
func WriteFile(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w, err := NewJSONLZstdWriter(f)
	if err != nil {
		_ = f.Close()
		return err
	}
	for _, e := range entries {
		if err := w.Write(e); err != nil {
			_ = w.Close()
			_ = f.Close()
			return fmt.Errorf("dispatch %d: %w", e.DispatchIndex, err)
		}
	}
	if err := w.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Read decodes entries from a zstd JSONL stream and calls fn for each.
func Read(r io.Reader, fn func(Entry) error) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return err
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		var e Entry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return fmt.Errorf("line %d: unmarshal: %w", line, err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	return sc.Err()
}

// ReadFile reads every entry of an exported file.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	err = Read(f, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return entries, nil
}
