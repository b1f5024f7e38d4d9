package solver

import (
	"github.com/SeamusWaldron/cubeanim"
)

// HistorySolver solves by undoing everything it has been told about. It
// keeps a facelet cube in step with the animation and the simplified
// history of every token replayed into it.
type HistorySolver struct {
	cube    *Cube
	history []cubeanim.Token
}

var _ cubeanim.Solver = (*HistorySolver)(nil)

// NewHistorySolver creates a solver for a solved cube.
func NewHistorySolver() *HistorySolver {
	return &HistorySolver{cube: New()}
}

// IsSolved reports whether the facelet cube is solved.
func (s *HistorySolver) IsSolved() bool {
	return s.cube.IsSolved()
}

// Solve returns the inverse of the recorded history. It does not change
// the solver.
func (s *HistorySolver) Solve() ([]cubeanim.Token, error) {
	return cubeanim.InverseSequence(s.history), nil
}

// ApplyMoves replays tokens into the facelet cube and the history.
func (s *HistorySolver) ApplyMoves(tokens []cubeanim.Token) {
	s.cube.ApplyTokens(tokens)
	s.history = cubeanim.Simplify(append(s.history, tokens...))
}

// History returns the simplified history.
func (s *HistorySolver) History() []cubeanim.Token {
	return append([]cubeanim.Token(nil), s.history...)
}

// Cube returns a copy of the facelet cube.
func (s *HistorySolver) Cube() *Cube {
	return s.cube.Clone()
}

// Reset returns the solver to a solved cube with no history.
func (s *HistorySolver) Reset() {
	s.cube = New()
	s.history = nil
}

func (s *HistorySolver) String() string {
	return s.cube.String()
}
