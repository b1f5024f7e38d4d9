package recorder

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var (
	ErrRecording    = errors.New("recorder: session already in progress")
	ErrNotRecording = errors.New("recorder: no session in progress")
)

// SessionState represents the current state of a journal session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session journals every dispatched sequence of one animation run.
type Session struct {
	db        *storage.DB
	stateFile *StateFile
	log       *slog.Logger

	mu            sync.RWMutex
	state         SessionState
	sessionID     string
	startTime     time.Time
	dispatchIndex int

	sessionRepo  *storage.SessionRepository
	dispatchRepo *storage.DispatchRepository
}

// NewSession creates a new session manager. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		db:           db,
		stateFile:    stateFile,
		log:          log,
		state:        StateIdle,
		sessionRepo:  storage.NewSessionRepository(db),
		dispatchRepo: storage.NewDispatchRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// DispatchCount returns the number of dispatches recorded so far.
func (s *Session) DispatchCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatchIndex
}

// FormatFlags renders fix flags as a comma separated list of group names.
func FormatFlags(flags cubeanim.FixFlags) string {
	var names []string
	for _, g := range cubeanim.Groups {
		if flags[g] {
			names = append(names, g.String())
		}
	}
	return strings.Join(names, ",")
}

// ParseFlags is the inverse of FormatFlags.
func ParseFlags(s string) (cubeanim.FixFlags, error) {
	var flags cubeanim.FixFlags
	if s == "" {
		return flags, nil
	}
	for _, name := range strings.Split(s, ",") {
		g, ok := cubeanim.ParseGroup(strings.TrimSpace(name))
		if !ok {
			return flags, fmt.Errorf("unknown group %q in fix flags", name)
		}
		flags[g] = true
	}
	return flags, nil
}

// Start starts a new journal session.
func (s *Session) Start(notes string, flags cubeanim.FixFlags, speed float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", ErrRecording
	}

	sessionID, err := s.sessionRepo.Create(notes, FormatFlags(flags), speed)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = time.Now()
	s.dispatchIndex = 0
	s.state = StateRecording

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSession(sessionID, flags, speed); err != nil {
			s.log.Warn("failed to update state file", "error", err)
		}
	}

	return sessionID, nil
}

// End ends the current session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return ErrNotRecording
	}

	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSession(); err != nil {
			s.log.Warn("failed to clear state file", "error", err)
		}
	}

	return nil
}

// Record stores one dispatch. Dispatches outside a session are ignored.
func (s *Session) Record(d cubeanim.Dispatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	rec := storage.DispatchRecord{
		SessionID:     s.sessionID,
		DispatchIndex: s.dispatchIndex,
		TsMs:          time.Since(s.startTime).Milliseconds(),
		Mode:          d.Mode.String(),
		Raw:           cubeanim.FormatTokens(d.Raw),
		Tokens:        cubeanim.FormatTokens(d.Tokens),
		MoveCount:     len(d.Moves),
	}
	var fixes []storage.FixRecord
	for _, w := range d.Fixes {
		fixes = append(fixes, storage.FixRecord{Face: w.Face.String(), Orientation: w.Orientation})
	}

	if _, err := s.dispatchRepo.Create(rec, fixes); err != nil {
		return fmt.Errorf("failed to store dispatch: %w", err)
	}
	s.dispatchIndex++
	return nil
}

// Hook returns a dispatch hook for the controller. Storage errors are
// logged; they never stop the animation.
func (s *Session) Hook() func(cubeanim.Dispatch) {
	return func(d cubeanim.Dispatch) {
		if err := s.Record(d); err != nil {
			s.log.Error("journal write failed", "error", err, "mode", d.Mode)
		}
	}
}

// Resume continues an interrupted session.
func (s *Session) Resume(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.sessionRepo.Get(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	if session.EndedAt != nil {
		return fmt.Errorf("session already ended")
	}

	nextIndex, err := s.dispatchRepo.GetNextIndex(sessionID)
	if err != nil {
		return fmt.Errorf("failed to get next dispatch index: %w", err)
	}

	s.sessionID = sessionID
	s.startTime = session.StartedAt
	s.dispatchIndex = nextIndex
	s.state = StateRecording
	return nil
}
