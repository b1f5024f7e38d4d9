// Package cubeanim is the move and state engine behind an animated 3x3
// Rubik's cube that is solved by an external solving oracle.
//
// # Features
//
//   - Move token simplification and parsing into face rotations
//   - Per-piece position and center orientation tracking
//   - Detection and correction of misoriented center artwork
//   - A frame-driven controller that animates one move at a time
//
// # Quick Start
//
// Drive the controller from a render loop:
//
//	ctrl := cubeanim.NewController(solver,
//	    cubeanim.WithFixRequired(cubeanim.GroupBack),
//	)
//
//	ctrl.Shuffle()
//	for ctrl.Mode() != cubeanim.Idle {
//	    if err := ctrl.Tick(16 * time.Millisecond); err != nil {
//	        log.Fatal(err)
//	    }
//	    draw(ctrl.Tracker().Pieces())
//	}
//
// # Tokens
//
// A move is a single letter from f, b, l, r, u, d. Lower case is a quarter
// turn, upper case the reverse quarter turn:
//
//	tokens, err := cubeanim.ParseTokens("fBrFbD")
//	moves := cubeanim.Parse(cubeanim.Simplify(tokens))
//
// # Pieces
//
// The cube is assembled from 26 pieces. A piece's membership records which
// face planes it touches; the renderer reads it together with the transient
// rotation of the move currently being animated.
package cubeanim
