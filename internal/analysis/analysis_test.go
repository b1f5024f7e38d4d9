package analysis

import (
	"testing"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/export"
)

func TestMineNGrams(t *testing.T) {
	tokens := cubeanim.MustParseTokens("fBrFbDfBrFbD" + "ud")
	report := MineNGrams(tokens, 2, 6, 3)

	six, ok := report.TopNGrams[6]
	if !ok || len(six) == 0 {
		t.Fatal("expected a repeated 6-gram")
	}
	if six[0].Sequence != "fBrFbD" || six[0].Count != 2 {
		t.Errorf("top 6-gram = %+v, want fBrFbD x2", six[0])
	}
	if len(six[0].Occurrences) != 2 || six[0].Occurrences[1].StartIndex != 6 {
		t.Errorf("occurrences = %+v", six[0].Occurrences)
	}

	two := report.TopNGrams[2]
	if len(two) != 3 {
		t.Fatalf("top 2-grams = %d, want 3 (topK)", len(two))
	}
	if two[0].Sequence != "fB" {
		t.Errorf("first 2-gram = %q, want first seen %q", two[0].Sequence, "fB")
	}
	for _, ng := range two {
		if ng.Count < 2 {
			t.Errorf("n-gram %q counted %d times", ng.Sequence, ng.Count)
		}
	}
}

func TestMineNGrams_NoRepeats(t *testing.T) {
	report := MineNGrams(cubeanim.MustParseTokens("fbrlud"), 2, 4, 5)
	if len(report.TopNGrams) != 0 {
		t.Errorf("expected no repeated n-grams, got %v", report.TopNGrams)
	}
	if report := MineNGrams(nil, 2, 4, 5); len(report.TopNGrams) != 0 {
		t.Error("empty input should give an empty report")
	}
}

func TestRollingHash(t *testing.T) {
	a := NewRollingHash(3)
	for _, tok := range cubeanim.MustParseTokens("fbr") {
		a.Roll(tok)
	}
	b := NewRollingHash(3)
	for _, tok := range cubeanim.MustParseTokens("udfbr") {
		b.Roll(tok)
	}
	if !a.Ready() || !b.Ready() {
		t.Fatal("windows should be full")
	}
	if a.Hash() != b.Hash() {
		t.Error("equal windows should hash equal after rolling")
	}
	if cubeanim.FormatTokens(b.Window()) != "fbr" {
		t.Errorf("window = %q, want fbr", cubeanim.FormatTokens(b.Window()))
	}
}

func TestSummarize(t *testing.T) {
	entries := []export.Entry{
		{SessionID: "s1", DispatchIndex: 0, TsMs: 10, Mode: "shuffling", Raw: "fbrrU", Tokens: "fbrrU"},
		{SessionID: "s1", DispatchIndex: 1, TsMs: 900, Mode: "solving", Raw: "uRRrFB", Tokens: "urBF"},
		{SessionID: "s1", DispatchIndex: 2, TsMs: 1500, Mode: "fixing", Raw: "BRbR", Tokens: "BRbR",
			Fixes: []export.Fix{{Face: "b", Orientation: 180}}},
	}

	s, err := Summarize(entries)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.SessionID != "s1" || s.Dispatches != 3 {
		t.Errorf("summary = %+v", s)
	}
	if s.ByMode["shuffling"] != 1 || s.ByMode["solving"] != 1 || s.ByMode["fixing"] != 1 {
		t.Errorf("ByMode = %v", s.ByMode)
	}
	if s.RawTokens != 15 || s.Tokens != 13 || s.Saved != 2 {
		t.Errorf("raw=%d tokens=%d saved=%d, want 15 13 2", s.RawTokens, s.Tokens, s.Saved)
	}
	// "rr" merges into one half turn.
	if s.Moves != 12 || s.HalfTurns != 1 {
		t.Errorf("moves=%d half=%d, want 12 1", s.Moves, s.HalfTurns)
	}
	if s.Fixes != 1 || s.FixTokens != 4 {
		t.Errorf("fixes=%d fixTokens=%d", s.Fixes, s.FixTokens)
	}
	if s.DurationMs != 1500 {
		t.Errorf("DurationMs = %d", s.DurationMs)
	}
	if s.Profile.MostUsedFace != "r" {
		t.Errorf("MostUsedFace = %q, want r", s.Profile.MostUsedFace)
	}

	if _, err := Summarize([]export.Entry{{Tokens: "fq"}}); err == nil {
		t.Error("expected error for invalid tokens")
	}
}

func TestAnalyzeMovementProfile(t *testing.T) {
	p := AnalyzeMovementProfile(cubeanim.MustParseTokens("fFrfR"))
	if p.FaceCounts["f"] != 3 || p.FaceCounts["r"] != 2 {
		t.Errorf("FaceCounts = %v", p.FaceCounts)
	}
	if p.ReverseCount != 2 {
		t.Errorf("ReverseCount = %d, want 2", p.ReverseCount)
	}
	if p.FaceSequences["ff"] != 1 || p.FaceSequences["fr"] != 2 || p.FaceSequences["rf"] != 1 {
		t.Errorf("FaceSequences = %v", p.FaceSequences)
	}
	if p.MostUsedFace != "f" {
		t.Errorf("MostUsedFace = %q", p.MostUsedFace)
	}
}
