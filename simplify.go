package cubeanim

// Simplify shortens a raw token sequence without changing the state it
// produces. Working left to right against the emitted tail:
//
//   - a token that turns the tail's face the other way cancels the tail
//   - a third identical token replaces the run of two with one reverse token
//   - anything else is appended
//
// The result never contains two adjacent complementary tokens or a run of
// three identical tokens, so Simplify(Simplify(s)) == Simplify(s).
func Simplify(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		n := len(out)
		switch {
		case n > 0 && t.Complements(out[n-1]):
			out = out[:n-1]
		case n > 0 && t == out[n-1] && tailRun(out) == 2:
			out = append(out[:n-2], t.Inverse())
		default:
			out = append(out, t)
		}
	}
	return out
}

// tailRun counts how many identical tokens end the sequence.
func tailRun(tokens []Token) int {
	n := len(tokens)
	if n == 0 {
		return 0
	}
	run := 1
	for run < n && tokens[n-1-run] == tokens[n-1] {
		run++
	}
	return run
}
