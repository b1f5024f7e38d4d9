package cubeanim

import "math/rand/v2"

// RandomShuffle returns n random tokens. Consecutive tokens never turn the
// same face, so the shuffle cannot undo or fold into itself.
func RandomShuffle(rng *rand.Rand, n int) []Token {
	if n <= 0 {
		return nil
	}
	seq := make([]Token, 0, n)
	prev := Faces[rng.IntN(len(Faces))]
	for i := 0; i < n; i++ {
		f := Faces[rng.IntN(len(Faces)-1)]
		if f >= prev {
			f++
		}
		t := NewToken(f, rng.IntN(2) == 1)
		seq = append(seq, t)
		prev = f
	}
	return seq
}
