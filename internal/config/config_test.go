package config

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/SeamusWaldron/cubeanim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
	if cfg.Speed != 450 {
		t.Errorf("expected speed 450, got %g", cfg.Speed)
	}
	flags := cfg.FixRequired.Flags()
	for _, g := range cubeanim.Groups {
		if flags[g] != (g == cubeanim.GroupRight) {
			t.Errorf("group %v: fix flag %v", g, flags[g])
		}
	}
}

func TestLoad_OverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubeanim.yaml")
	data := "fix_required:\n  up: true\nspeed: 900\nshuffle:\n  max: 40\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Speed != 900 {
		t.Errorf("expected speed 900, got %g", cfg.Speed)
	}
	if !cfg.FixRequired.Up {
		t.Error("expected up to require a fix")
	}
	if cfg.Shuffle.Min != cubeanim.DefaultShuffleMin || cfg.Shuffle.Max != 40 {
		t.Errorf("expected shuffle [%d,40], got %+v", cubeanim.DefaultShuffleMin, cfg.Shuffle)
	}
	if cfg.FrameRate != DefaultFrameRate {
		t.Errorf("expected default frame rate, got %d", cfg.FrameRate)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []string{
		"speed: 0\n",
		"frame_rate: -1\n",
		"shuffle:\n  min: 30\n  max: 10\n",
	}
	for _, data := range tests {
		path := filepath.Join(t.TempDir(), "cubeanim.yaml")
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); !errors.Is(err, ErrInvalid) {
			t.Errorf("Load(%q) error = %v, want ErrInvalid", data, err)
		}
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubeanim.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 7
	cfg.FixRequired.Down = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	sort.Strings(names)
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5
	cfg.FixRequired = FixConfig{Left: true}
	c := cubeanim.NewController(nil, cfg.Options()...)
	if got := c.Tracker().FixFlags(); got != cfg.FixRequired.Flags() {
		t.Errorf("controller flags = %v, want %v", got, cfg.FixRequired.Flags())
	}
}
