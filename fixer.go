package cubeanim

import "fmt"

// WrongCenter is a center whose orientation-sensitive artwork is not upright.
type WrongCenter struct {
	Face        Face
	Orientation int
}

func (w WrongCenter) String() string {
	return fmt.Sprintf("%s->%d", w.Face, w.Orientation)
}

// fixPattern is a sequence that, repeated, returns every piece to its place
// while spinning the center of its face by turn degrees.
type fixPattern struct {
	tokens string
	repeat int
	turn   int
}

// quarterFixes spin a center by a quarter turn.
var quarterFixes = [faceCount]fixPattern{
	FaceF: {"lRfLrD", 15, 90},
	FaceB: {"LrBlRd", 15, 90},
	FaceL: {"FbLfBd", 15, 90},
	FaceR: {"fBrFbD", 15, 90},
	FaceU: {"LrulRB", 15, 90},
	FaceD: {"fBdFbL", 15, 270},
}

// halfFixes spin a center by a half turn.
var halfFixes = [faceCount]fixPattern{
	FaceF: {"RFrF", 5, 180},
	FaceB: {"LBlB", 5, 180},
	FaceL: {"FLfL", 5, 180},
	FaceR: {"BRbR", 5, 180},
	FaceU: {"LUlU", 5, 180},
	FaceD: {"RDrD", 5, 180},
}

func (p fixPattern) appendTo(seq []Token) []Token {
	tokens := MustParseTokens(p.tokens)
	for i := 0; i < p.repeat; i++ {
		seq = append(seq, tokens...)
	}
	return seq
}

// Detect returns the centers that require a fix and are not upright.
// An empty result means no fix is needed.
func (t *Tracker) Detect() []WrongCenter {
	var wrong []WrongCenter
	for i := range t.pieces {
		p := &t.pieces[i]
		if !p.IsCenter() || !p.fixRequired || p.orientation == 0 {
			continue
		}
		face, ok := p.Face()
		if !ok {
			continue
		}
		wrong = append(wrong, WrongCenter{Face: face, Orientation: p.orientation})
	}
	return wrong
}

// Synthesize builds the corrective sequence for the given centers from the
// fixed pattern tables. Each center gets the quarter pattern, the half
// pattern, or both, whichever brings it back to zero. The tables only cover
// one misoriented center at a time.
func Synthesize(wrong []WrongCenter) []Token {
	var seq []Token
	for _, w := range wrong {
		if w.Face < 0 || w.Face >= faceCount {
			continue
		}
		quarter, half := quarterFixes[w.Face], halfFixes[w.Face]
		need := normalizeDegrees(-w.Orientation)
		switch need {
		case 0:
		case quarter.turn:
			seq = quarter.appendTo(seq)
		case half.turn:
			seq = half.appendTo(seq)
		default:
			seq = half.appendTo(seq)
			seq = quarter.appendTo(seq)
		}
	}
	return seq
}
