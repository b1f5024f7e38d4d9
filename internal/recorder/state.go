// Package recorder journals animation sessions to storage.
package recorder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/SeamusWaldron/cubeanim"
)

// ActiveSession describes the journal session a running animator has open.
// It survives a crash so the next run can close it.
type ActiveSession struct {
	ID        string    `json:"id"`
	FixFlags  string    `json:"fix_flags,omitempty"`
	Speed     float64   `json:"speed"`
	StartedAt time.Time `json:"started_at"`
}

// Flags decodes the recorded fix flags.
func (a ActiveSession) Flags() (cubeanim.FixFlags, error) {
	return ParseFlags(a.FixFlags)
}

// AppState is what cubeanim keeps between runs.
type AppState struct {
	DBPath string         `json:"db_path"`
	Active *ActiveSession `json:"active,omitempty"`
}

// StateFile persists AppState as JSON.
type StateFile struct {
	path  string
	state AppState
}

// DefaultStatePath returns ~/.cubeanim/state.json, creating the directory.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".cubeanim")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return filepath.Join(dir, "state.json"), nil
}

// NewStateFile loads the state at path. A missing file is an empty state.
func NewStateFile(path string) (*StateFile, error) {
	sf := &StateFile{path: path}
	if err := sf.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return sf, nil
}

// NewDefaultStateFile loads the state at DefaultStatePath.
func NewDefaultStateFile() (*StateFile, error) {
	path, err := DefaultStatePath()
	if err != nil {
		return nil, err
	}
	return NewStateFile(path)
}

func (sf *StateFile) Load() error {
	data, err := os.ReadFile(sf.path)
	if err != nil {
		return err
	}
	var st AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("failed to parse state file %s: %w", sf.path, err)
	}
	sf.state = st
	return nil
}

func (sf *StateFile) Save() error {
	data, err := json.MarshalIndent(sf.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(sf.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

func (sf *StateFile) State() AppState {
	return sf.state
}

func (sf *StateFile) SetDBPath(path string) error {
	sf.state.DBPath = path
	return sf.Save()
}

// SetActiveSession records the open session together with the fix flags
// and speed the animator was started with.
func (sf *StateFile) SetActiveSession(sessionID string, flags cubeanim.FixFlags, speed float64) error {
	sf.state.Active = &ActiveSession{
		ID:        sessionID,
		FixFlags:  FormatFlags(flags),
		Speed:     speed,
		StartedAt: time.Now().UTC(),
	}
	return sf.Save()
}

func (sf *StateFile) ClearActiveSession() error {
	sf.state.Active = nil
	return sf.Save()
}

// HasActiveSession reports whether a session was left open.
func (sf *StateFile) HasActiveSession() bool {
	return sf.state.Active != nil && sf.state.Active.ID != ""
}

// ActiveSession returns the open session, if any.
func (sf *StateFile) ActiveSession() (ActiveSession, bool) {
	if !sf.HasActiveSession() {
		return ActiveSession{}, false
	}
	return *sf.state.Active, true
}

func (sf *StateFile) ActiveSessionID() string {
	if sf.state.Active == nil {
		return ""
	}
	return sf.state.Active.ID
}

func (sf *StateFile) DBPath() string {
	return sf.state.DBPath
}
