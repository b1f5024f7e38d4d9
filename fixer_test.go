package cubeanim

import (
	"testing"
)

func centerOf(t *testing.T, tr *Tracker, g Group) *Piece {
	t.Helper()
	for i := range tr.pieces {
		p := &tr.pieces[i]
		if p.IsCenter() && p.BelongsTo(g) {
			return p
		}
	}
	t.Fatalf("no center on %v", g)
	return nil
}

func TestDetect_SolvedCube(t *testing.T) {
	tr := NewTracker(FixFlags{true, true, true, true, true, true})
	if wrong := tr.Detect(); len(wrong) != 0 {
		t.Errorf("Detect on a solved cube = %v, want empty", wrong)
	}
	if seq := Synthesize(nil); len(seq) != 0 {
		t.Errorf("Synthesize(nil) = %q, want empty", FormatTokens(seq))
	}
}

func TestDetect_IgnoresUnflaggedCenters(t *testing.T) {
	tr := NewTracker(FixFlags{GroupFront: true})
	if err := tr.Apply(Parse(MustParseTokens("bdur"))); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if wrong := tr.Detect(); len(wrong) != 0 {
		t.Errorf("Detect = %v, want empty", wrong)
	}

	if err := tr.Apply(Parse(MustParseTokens("l"))); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	wrong := tr.Detect()
	if len(wrong) != 1 || wrong[0].Face != FaceL || wrong[0].Orientation != 90 {
		t.Errorf("Detect = %v, want [l->90]", wrong)
	}
}

func TestFixPatternsKeepPiecesInPlace(t *testing.T) {
	for _, f := range Faces {
		for _, p := range []fixPattern{quarterFixes[f], halfFixes[f]} {
			tr := NewTracker(FixFlags{})
			seq := p.appendTo(nil)
			if err := tr.Apply(Parse(seq)); err != nil {
				t.Fatalf("%v %q: Apply failed: %v", f, p.tokens, err)
			}
			if !tr.Solved() {
				t.Errorf("%v: %q x %d moves pieces", f, p.tokens, p.repeat)
			}
		}
	}
}

func TestFixPatternsTurnTheirCenter(t *testing.T) {
	for _, f := range Faces {
		for _, p := range []fixPattern{quarterFixes[f], halfFixes[f]} {
			g := f.Group()
			var flags FixFlags
			flags[g] = true
			tr := NewTracker(flags)
			if err := tr.Apply(Parse(p.appendTo(nil))); err != nil {
				t.Fatalf("%v %q: Apply failed: %v", f, p.tokens, err)
			}
			if got := centerOf(t, tr, g).Orientation(); got != p.turn {
				t.Errorf("%v: %q x %d turns the center %d, table says %d", f, p.tokens, p.repeat, got, p.turn)
			}
		}
	}
}

func TestSynthesize_RestoresSingleCenter(t *testing.T) {
	for _, g := range Groups {
		for _, orientation := range []int{90, 180, 270} {
			var flags FixFlags
			flags[g] = true
			tr := NewTracker(flags)
			centerOf(t, tr, g).orientation = orientation

			wrong := tr.Detect()
			if len(wrong) != 1 {
				t.Fatalf("%v at %d: Detect = %v", g, orientation, wrong)
			}
			seq := Synthesize(wrong)
			if len(seq) == 0 {
				t.Fatalf("%v at %d: empty fix", g, orientation)
			}
			if err := tr.Apply(Parse(seq)); err != nil {
				t.Fatalf("%v at %d: Apply failed: %v", g, orientation, err)
			}
			if !tr.Solved() {
				t.Errorf("%v at %d: fix left the cube unsolved, center at %d",
					g, orientation, centerOf(t, tr, g).Orientation())
			}
		}
	}
}
