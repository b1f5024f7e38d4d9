package recorder

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SeamusWaldron/cubeanim"
)

func TestStateFile_ActiveSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile failed: %v", err)
	}
	if sf.HasActiveSession() {
		t.Fatal("fresh state should have no active session")
	}

	var flags cubeanim.FixFlags
	flags[cubeanim.GroupRight] = true
	flags[cubeanim.GroupUp] = true
	if err := sf.SetActiveSession("abc", flags, 720); err != nil {
		t.Fatalf("SetActiveSession failed: %v", err)
	}

	reloaded, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	active, ok := reloaded.ActiveSession()
	if !ok {
		t.Fatal("reloaded state lost the active session")
	}
	if active.ID != "abc" || active.Speed != 720 || active.FixFlags != "right,up" {
		t.Errorf("active = %+v", active)
	}
	if active.StartedAt.IsZero() {
		t.Error("StartedAt not recorded")
	}
	got, err := active.Flags()
	if err != nil {
		t.Fatalf("Flags failed: %v", err)
	}
	if got != flags {
		t.Errorf("Flags = %v, want %v", got, flags)
	}

	if err := reloaded.ClearActiveSession(); err != nil {
		t.Fatalf("ClearActiveSession failed: %v", err)
	}
	if reloaded.HasActiveSession() || reloaded.ActiveSessionID() != "" {
		t.Error("session still active after clear")
	}
}

func TestStateFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStateFile(path); err == nil {
		t.Error("NewStateFile accepted a corrupt file")
	}
}

func TestParseFlags(t *testing.T) {
	var want cubeanim.FixFlags
	want[cubeanim.GroupFront] = true
	want[cubeanim.GroupDown] = true

	got, err := ParseFlags(FormatFlags(want))
	if err != nil || got != want {
		t.Errorf("ParseFlags(FormatFlags) = %v, %v", got, err)
	}
	if got, err := ParseFlags(""); err != nil || got != (cubeanim.FixFlags{}) {
		t.Errorf("ParseFlags(\"\") = %v, %v", got, err)
	}
	if _, err := ParseFlags("front,sideways"); err == nil {
		t.Error("ParseFlags accepted an unknown group")
	}
}
