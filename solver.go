package cubeanim

// Solver is the external oracle that owns the logical cube. Every sequence
// the Controller animates is also replayed through ApplyMoves, in the same
// order, so the solver's model and the piece model stay in step.
type Solver interface {
	// IsSolved reports whether the solver's cube is solved.
	IsSolved() bool

	// Solve returns a sequence that would solve the current cube. It must
	// not change the solver's state; the Controller applies the sequence
	// through ApplyMoves when it dispatches it.
	Solve() ([]Token, error)

	// ApplyMoves applies tokens to the solver's cube.
	ApplyMoves(tokens []Token)
}
