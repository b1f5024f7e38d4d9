package recorder

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

func openTestDB(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp failed: %v", err)
	}
	return db
}

func TestSession_RecordsControllerDispatches(t *testing.T) {
	db := openTestDB(t)
	sf, err := NewStateFile(filepath.Join(t.TempDir(), "state.json"))
	if err != nil {
		t.Fatalf("NewStateFile failed: %v", err)
	}
	session := NewSession(db, sf, nil)

	var flags cubeanim.FixFlags
	flags[cubeanim.GroupBack] = true
	id, err := session.Start("test", flags, 450)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if !sf.HasActiveSession() || sf.ActiveSessionID() != id {
		t.Error("state file should hold the active session")
	}
	if _, err := session.Start("again", flags, 450); !errors.Is(err, ErrRecording) {
		t.Errorf("second Start error = %v, want ErrRecording", err)
	}

	c := cubeanim.NewController(nil, cubeanim.WithFixFlags(flags), cubeanim.WithDispatchHook(session.Hook()))
	if _, err := c.CustomMove('r', false); err != nil {
		t.Fatalf("CustomMove failed: %v", err)
	}
	for c.Mode() != cubeanim.Idle {
		if err := c.Tick(100 * time.Millisecond); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	if err := session.Record(cubeanim.Dispatch{
		Mode:   cubeanim.Fixing,
		Raw:    cubeanim.MustParseTokens("fBrFbD"),
		Tokens: cubeanim.MustParseTokens("fBrFbD"),
		Fixes:  []cubeanim.WrongCenter{{Face: cubeanim.FaceR, Orientation: 270}},
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if session.DispatchCount() != 2 {
		t.Errorf("DispatchCount = %d, want 2", session.DispatchCount())
	}
	if err := session.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if sf.HasActiveSession() {
		t.Error("state file should be cleared after End")
	}
	if err := session.End(); !errors.Is(err, ErrNotRecording) {
		t.Errorf("second End error = %v, want ErrNotRecording", err)
	}

	repo := storage.NewDispatchRepository(db)
	records, err := repo.GetBySession(id)
	if err != nil {
		t.Fatalf("GetBySession failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(records))
	}
	if records[0].Mode != "customizing" || records[0].Tokens != "r" || records[0].MoveCount != 1 {
		t.Errorf("unexpected first dispatch: %+v", records[0])
	}
	fixes, err := repo.GetFixes(records[1].DispatchID)
	if err != nil || len(fixes) != 1 || fixes[0].Face != "r" {
		t.Errorf("GetFixes = %+v, %v", fixes, err)
	}

	s, err := storage.NewSessionRepository(db).Get(id)
	if err != nil || s == nil {
		t.Fatalf("Get = %v, %v", s, err)
	}
	if s.FixFlags != "back" {
		t.Errorf("FixFlags = %q, want %q", s.FixFlags, "back")
	}
}

func TestSession_RecordOutsideSession(t *testing.T) {
	session := NewSession(openTestDB(t), nil, nil)
	if err := session.Record(cubeanim.Dispatch{Mode: cubeanim.Customizing}); err != nil {
		t.Errorf("Record outside a session = %v, want nil", err)
	}
	if session.DispatchCount() != 0 {
		t.Error("nothing should be recorded outside a session")
	}
}

func TestSession_Resume(t *testing.T) {
	db := openTestDB(t)
	first := NewSession(db, nil, nil)
	id, err := first.Start("", cubeanim.FixFlags{}, 450)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := first.Record(cubeanim.Dispatch{Mode: cubeanim.Shuffling, Tokens: cubeanim.MustParseTokens("fb")}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	second := NewSession(db, nil, nil)
	if err := second.Resume(id); err != nil {
		t.Fatalf("Resume failed: %v", err)
	}
	if second.DispatchCount() != 1 || second.State() != StateRecording {
		t.Errorf("resumed session: count %d, state %v", second.DispatchCount(), second.State())
	}
	if err := second.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if err := NewSession(db, nil, nil).Resume(id); err == nil {
		t.Error("resuming an ended session should fail")
	}
}
