package cubeanim

import "errors"

// Sentinel errors for the cubeanim package.
var (
	// Input errors
	ErrInvalidToken = errors.New("cubeanim: invalid move token")

	// Model errors
	ErrDesync = errors.New("cubeanim: piece model out of sync with move queue")

	// Solver errors
	ErrNoSolver = errors.New("cubeanim: no solver attached")
)
