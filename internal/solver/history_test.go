package solver

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubeanim"
)

func TestHistorySolver(t *testing.T) {
	s := NewHistorySolver()
	if !s.IsSolved() {
		t.Fatal("new solver should be solved")
	}

	s.ApplyMoves(cubeanim.MustParseTokens("fbr"))
	s.ApplyMoves(cubeanim.MustParseTokens("Rd"))
	if s.IsSolved() {
		t.Fatal("solver should be scrambled")
	}
	if got := cubeanim.FormatTokens(s.History()); got != "fbd" {
		t.Errorf("History = %q, want %q", got, "fbd")
	}

	sol, err := s.Solve()
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if got := cubeanim.FormatTokens(sol); got != "DBF" {
		t.Errorf("Solve = %q, want %q", got, "DBF")
	}
	if s.IsSolved() || len(s.History()) != 3 {
		t.Error("Solve should not change the solver")
	}

	s.ApplyMoves(sol)
	if !s.IsSolved() {
		t.Error("applying the solution should solve the cube")
		t.Log(s.String())
	}
	if len(s.History()) != 0 {
		t.Errorf("History = %q after solving, want empty", cubeanim.FormatTokens(s.History()))
	}
}

func TestHistorySolver_Reset(t *testing.T) {
	s := NewHistorySolver()
	s.ApplyMoves(cubeanim.MustParseTokens("fff"))
	s.Reset()
	if !s.IsSolved() || len(s.History()) != 0 {
		t.Error("Reset should return to a solved cube")
	}
}

func runUntilIdle(t *testing.T, c *cubeanim.Controller) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if c.Mode() == cubeanim.Idle {
			return
		}
		if err := c.Tick(50 * time.Millisecond); err != nil {
			t.Fatalf("Tick failed: %v", err)
		}
	}
	t.Fatal("controller never returned to idle")
}

func TestShuffleThenSolve(t *testing.T) {
	s := NewHistorySolver()
	c := cubeanim.NewController(s,
		cubeanim.WithFixRequired(cubeanim.GroupFront, cubeanim.GroupUp),
		cubeanim.WithRand(rand.New(rand.NewPCG(11, 12))),
	)

	accepted, err := c.Shuffle()
	if err != nil || !accepted {
		t.Fatalf("Shuffle = %v, %v", accepted, err)
	}
	runUntilIdle(t, c)
	if s.IsSolved() || c.Tracker().Solved() {
		t.Fatal("shuffle left the cube solved")
	}

	accepted, err = c.Solve()
	if err != nil || !accepted {
		t.Fatalf("Solve = %v, %v", accepted, err)
	}
	runUntilIdle(t, c)

	if !s.IsSolved() {
		t.Error("solver cube not solved")
		t.Log(s.String())
	}
	if !c.Tracker().Solved() {
		t.Error("piece model not solved")
	}

	accepted, err = c.Solve()
	if err != nil || accepted {
		t.Errorf("second Solve = %v, %v; want a no-op", accepted, err)
	}
}
