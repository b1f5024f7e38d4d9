package cubeanim

import (
	"errors"
	"testing"
)

func TestNewTracker(t *testing.T) {
	tr := NewTracker(FixFlags{})
	if !tr.Solved() {
		t.Error("new tracker should be solved")
	}

	kinds := map[Kind]int{}
	for _, p := range tr.Pieces() {
		kinds[p.Kind()]++
	}
	if kinds[KindCenter] != 6 || kinds[KindEdge] != 12 || kinds[KindCorner] != 8 {
		t.Errorf("piece kinds = %v, want 6 centers, 12 edges, 8 corners", kinds)
	}

	for _, g := range Groups {
		if n := len(tr.Members(g)); n != sliceSize {
			t.Errorf("group %v has %d members, want %d", g, n, sliceSize)
		}
	}
}

func TestNewTracker_FixFlags(t *testing.T) {
	tr := NewTracker(FixFlags{GroupRight: true})
	for _, p := range tr.Pieces() {
		want := p.IsCenter() && p.Home() == GroupRight.Normal()
		if p.FixRequired() != want {
			t.Errorf("%v: FixRequired = %v, want %v", &p, p.FixRequired(), want)
		}
	}
}

func TestVec3Rotate(t *testing.T) {
	tests := []struct {
		v     Vec3
		axis  Vec3
		angle float64
		want  Vec3
	}{
		{Vec3{0, 1, 0}, Vec3{1, 0, 0}, 90, Vec3{0, 0, 1}},
		{Vec3{0, 0, 1}, Vec3{0, 1, 0}, 90, Vec3{1, 0, 0}},
		{Vec3{1, 0, 0}, Vec3{0, 0, 1}, 90, Vec3{0, 1, 0}},
		{Vec3{1, 1, 1}, Vec3{0, 0, 1}, -90, Vec3{1, -1, 1}},
		{Vec3{1, 1, -1}, Vec3{1, 0, 0}, 180, Vec3{1, -1, 1}},
	}

	for _, tt := range tests {
		if got := tt.v.rotate(tt.axis, tt.angle); got != tt.want {
			t.Errorf("%v.rotate(%v, %g) = %v, want %v", tt.v, tt.axis, tt.angle, got, tt.want)
		}
	}
}

func TestFourQuarterTurnsRestoreMembership(t *testing.T) {
	for _, f := range Faces {
		for _, reverse := range []bool{false, true} {
			tok := NewToken(f, reverse)
			tr := NewTracker(FixFlags{})
			for i := 0; i < 4; i++ {
				m := Parse([]Token{tok})[0]
				if err := tr.CommitSlice(m.Group, m.Angle); err != nil {
					t.Fatalf("%q: CommitSlice failed: %v", tok, err)
				}
			}
			if !tr.Solved() {
				t.Errorf("%q x 4 should return to solved", tok)
			}
		}
	}
}

func TestTwoFullTurnsRestoreState(t *testing.T) {
	flags := FixFlags{true, true, true, true, true, true}
	for _, f := range Faces {
		tr := NewTracker(flags)
		seq := make([]Token, 8)
		for i := range seq {
			seq[i] = NewToken(f, false)
		}
		if err := tr.Apply(Parse(seq)); err != nil {
			t.Fatalf("%v: Apply failed: %v", f, err)
		}
		if !tr.Solved() {
			t.Errorf("%v x 8 should restore membership and orientation", f)
		}
	}
}

func TestSingleTurnMovesOnlyItsSlice(t *testing.T) {
	tr := NewTracker(FixFlags{})
	before := tr.pieces

	if err := tr.Apply(Parse(MustParseTokens("f"))); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	moved := 0
	for i, p := range tr.pieces {
		inSlice := before[i].BelongsTo(GroupLeft)
		if !inSlice && p.membership != before[i].membership {
			t.Errorf("%v moved but is not in the left slice", &p)
		}
		if inSlice && !p.BelongsTo(GroupLeft) {
			t.Errorf("%v left its slice", &p)
		}
		if p.membership != before[i].membership {
			moved++
		}
	}
	if moved != 8 {
		t.Errorf("%d pieces moved, want the 8 around the left center", moved)
	}
}

func TestRotateSliceIsTransient(t *testing.T) {
	tr := NewTracker(FixFlags{})
	tr.RotateSlice(GroupUp, 30)
	tr.RotateSlice(GroupUp, 30)

	animated := 0
	for _, p := range tr.Pieces() {
		if !p.AtHome() {
			t.Errorf("%v moved during animation", &p)
		}
		if rot, ok := p.Rotation(); ok {
			animated++
			if rot.Group != GroupUp || rot.Angle != 60 || rot.Axis != (Vec3{0, 1, 0}) {
				t.Errorf("%v: rotation = %+v", &p, rot)
			}
		}
	}
	if animated != sliceSize {
		t.Errorf("%d pieces animated, want %d", animated, sliceSize)
	}

	if err := tr.CommitSlice(GroupUp, 90); err != nil {
		t.Fatalf("CommitSlice failed: %v", err)
	}
	for _, p := range tr.Pieces() {
		if _, ok := p.Rotation(); ok {
			t.Errorf("%v still animated after commit", &p)
		}
	}
}

func TestCommitSlice_CenterOrientation(t *testing.T) {
	tr := NewTracker(FixFlags{GroupUp: true, GroupDown: false})
	for i := 0; i < 3; i++ {
		if err := tr.CommitSlice(GroupUp, 90); err != nil {
			t.Fatalf("CommitSlice failed: %v", err)
		}
		if err := tr.CommitSlice(GroupDown, 90); err != nil {
			t.Fatalf("CommitSlice failed: %v", err)
		}
	}

	for _, p := range tr.Pieces() {
		if !p.IsCenter() {
			continue
		}
		want := 0
		if p.Home() == GroupUp.Normal() {
			want = 270
		}
		if p.Orientation() != want {
			t.Errorf("%v: orientation = %d, want %d", &p, p.Orientation(), want)
		}
	}

	if err := tr.CommitSlice(GroupUp, 90); err != nil {
		t.Fatalf("CommitSlice failed: %v", err)
	}
	for _, p := range tr.Pieces() {
		if p.IsCenter() && p.Orientation() != 0 {
			t.Errorf("%v: orientation = %d after a full turn", &p, p.Orientation())
		}
	}
}

func TestCommitSlice_Desync(t *testing.T) {
	tr := NewTracker(FixFlags{})
	if err := tr.CommitSlice(groupNone, 90); !errors.Is(err, ErrDesync) {
		t.Errorf("unknown group: error = %v, want ErrDesync", err)
	}

	// Push a left corner onto the right face.
	tr.pieces[0].membership = Vec3{1, 1, 1}
	if err := tr.CommitSlice(GroupLeft, 90); !errors.Is(err, ErrDesync) {
		t.Errorf("short slice: error = %v, want ErrDesync", err)
	}
	if err := tr.CommitSlice(GroupRight, 90); !errors.Is(err, ErrDesync) {
		t.Errorf("long slice: error = %v, want ErrDesync", err)
	}
}

func TestCommitSlice_RejectsPartialTurn(t *testing.T) {
	tr := NewTracker(FixFlags{})
	for _, angle := range []float64{45, -30, 90.5} {
		if err := tr.CommitSlice(GroupFront, angle); !errors.Is(err, ErrDesync) {
			t.Errorf("CommitSlice(Front, %g) error = %v, want ErrDesync", angle, err)
		}
	}
	for i := range tr.pieces {
		if p := &tr.pieces[i]; !p.AtHome() {
			t.Errorf("%v moved by a rejected commit", p)
		}
	}
	if err := tr.CommitSlice(GroupFront, -90); err != nil {
		t.Errorf("CommitSlice(Front, -90) = %v", err)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	tests := map[int]int{0: 0, 90: 90, 360: 0, 450: 90, -90: 270, -360: 0, -450: 270}
	for in, want := range tests {
		if got := normalizeDegrees(in); got != want {
			t.Errorf("normalizeDegrees(%d) = %d, want %d", in, got, want)
		}
	}
}
