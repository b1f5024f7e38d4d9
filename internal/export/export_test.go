package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "session.jsonl.zst")
	entries := []Entry{
		{SessionID: "s1", DispatchIndex: 0, TsMs: 5, Mode: "shuffling", Raw: "fbu", Tokens: "fbu", MoveCount: 3},
		{SessionID: "s1", DispatchIndex: 1, TsMs: 900, Mode: "fixing", Raw: "BRbR", Tokens: "BRbR", MoveCount: 4,
			Fixes: []Fix{{Face: "r", Orientation: 180}}},
	}

	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(got))
	}
	if got[0].Tokens != "fbu" || got[1].Mode != "fixing" {
		t.Errorf("unexpected entries: %+v", got)
	}
	if len(got[1].Fixes) != 1 || got[1].Fixes[0].Orientation != 180 {
		t.Errorf("fixes lost: %+v", got[1].Fixes)
	}
}

func TestFileIsCompressed(t *testing.T) {
	entries := make([]Entry, 500)
	for i := range entries {
		entries[i] = Entry{SessionID: "s1", DispatchIndex: i, Mode: "solving", Raw: "fbu", Tokens: "fbu", MoveCount: 3}
	}
	var raw bytes.Buffer
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			t.Fatal(err)
		}
		raw.Write(line)
		raw.WriteByte('\n')
	}

	path := filepath.Join(t.TempDir(), "session.jsonl.zst")
	if err := WriteFile(path, entries); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// zstd frame magic number
	if !bytes.HasPrefix(data, []byte{0x28, 0xb5, 0x2f, 0xfd}) {
		t.Errorf("file does not start with a zstd frame: % x", data[:4])
	}
	if len(data)*4 > raw.Len() {
		t.Errorf("file is %d bytes for %d bytes of JSONL, want compressed", len(data), raw.Len())
	}
}

func TestRead_StopsOnCallbackError(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewJSONLZstdWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := w.Write(Entry{DispatchIndex: i}); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if w.Count() != 3 {
		t.Errorf("Count = %d, want 3", w.Count())
	}

	stop := errors.New("stop")
	seen := 0
	err = Read(&buf, func(e Entry) error {
		seen++
		if e.DispatchIndex == 1 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || seen != 2 {
		t.Errorf("Read = %v after %d entries, want stop after 2", err, seen)
	}
}

func TestFromJournal(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if err := db.MigrateUp(); err != nil {
		t.Fatal(err)
	}

	sid, err := storage.NewSessionRepository(db).Create("", "right", 450)
	if err != nil {
		t.Fatal(err)
	}
	repo := storage.NewDispatchRepository(db)
	if _, err := repo.Create(storage.DispatchRecord{SessionID: sid, Mode: "solving", Tokens: "r", MoveCount: 1}, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(storage.DispatchRecord{SessionID: sid, DispatchIndex: 1, Mode: "fixing", Tokens: "BRbR", MoveCount: 4},
		[]storage.FixRecord{{Face: "b", Orientation: 180}}); err != nil {
		t.Fatal(err)
	}

	entries, err := FromJournal(db, sid)
	if err != nil {
		t.Fatalf("FromJournal failed: %v", err)
	}
	if len(entries) != 2 || entries[1].Fixes[0].Face != "b" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
