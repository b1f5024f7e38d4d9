// Package analysis derives statistics from journaled dispatches.
package analysis

import (
	"fmt"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/export"
)

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	SessionID  string           `json:"session_id"`
	Dispatches int              `json:"dispatches"`
	ByMode     map[string]int   `json:"by_mode"`
	RawTokens  int              `json:"raw_tokens"`
	Tokens     int              `json:"tokens"`
	Moves      int              `json:"moves"`
	HalfTurns  int              `json:"half_turns"`
	Fixes      int              `json:"fixes"`
	FixTokens  int              `json:"fix_tokens"`
	DurationMs int64            `json:"duration_ms"`
	Saved      int              `json:"saved"`
	Efficiency float64          `json:"efficiency"`
	Profile    *MovementProfile `json:"profile"`
}

// Summarize computes the summary of a session's dispatches.
func Summarize(entries []export.Entry) (*SessionSummary, error) {
	s := &SessionSummary{ByMode: make(map[string]int)}

	var all []cubeanim.Token
	for _, e := range entries {
		tokens, err := cubeanim.ParseTokens(e.Tokens)
		if err != nil {
			return nil, fmt.Errorf("dispatch %d: %w", e.DispatchIndex, err)
		}
		raw, err := cubeanim.ParseTokens(e.Raw)
		if err != nil {
			return nil, fmt.Errorf("dispatch %d raw: %w", e.DispatchIndex, err)
		}

		if s.SessionID == "" {
			s.SessionID = e.SessionID
		}
		s.Dispatches++
		s.ByMode[e.Mode]++
		s.RawTokens += len(raw)
		s.Tokens += len(tokens)
		for _, m := range cubeanim.Parse(tokens) {
			s.Moves++
			if m.Angle == 180 || m.Angle == -180 {
				s.HalfTurns++
			}
		}
		if len(e.Fixes) > 0 {
			s.Fixes += len(e.Fixes)
			s.FixTokens += len(tokens)
		}
		if e.TsMs > s.DurationMs {
			s.DurationMs = e.TsMs
		}
		all = append(all, tokens...)
	}

	s.Saved = s.RawTokens - s.Tokens
	if s.RawTokens > 0 {
		s.Efficiency = float64(s.Tokens) / float64(s.RawTokens)
	}
	s.Profile = AnalyzeMovementProfile(all)
	return s, nil
}

// MovementProfile analyzes which faces are turned and how.
type MovementProfile struct {
	FaceCounts    map[string]int `json:"face_counts"`
	ReverseCount  int            `json:"reverse_count"`
	MostUsedFace  string         `json:"most_used_face"`
	FaceSequences map[string]int `json:"face_sequences"` // e.g., "fr" -> count
}

// AnalyzeMovementProfile counts face usage and consecutive face pairs.
func AnalyzeMovementProfile(tokens []cubeanim.Token) *MovementProfile {
	profile := &MovementProfile{
		FaceCounts:    make(map[string]int),
		FaceSequences: make(map[string]int),
	}

	for i, t := range tokens {
		profile.FaceCounts[t.Face().String()]++
		if t.Reverse() {
			profile.ReverseCount++
		}

		// Track 2-move face sequences
		if i > 0 {
			seq := tokens[i-1].Face().String() + t.Face().String()
			profile.FaceSequences[seq]++
		}
	}

	// Find most used, first face in table order on ties
	maxFaceCount := 0
	for _, f := range cubeanim.Faces {
		if count := profile.FaceCounts[f.String()]; count > maxFaceCount {
			maxFaceCount = count
			profile.MostUsedFace = f.String()
		}
	}

	return profile
}
