package cubeanim

import (
	"fmt"
	"strings"
)

// Face identifies the letter of a move token, as named by the solver.
type Face int

const (
	FaceF Face = iota
	FaceB
	FaceL
	FaceR
	FaceU
	FaceD

	faceCount
)

var faceLetters = [faceCount]byte{'f', 'b', 'l', 'r', 'u', 'd'}

// Faces lists every move letter in table order.
var Faces = [faceCount]Face{FaceF, FaceB, FaceL, FaceR, FaceU, FaceD}

// Letter returns the lower case token letter of the face.
func (f Face) Letter() byte {
	if f < 0 || f >= faceCount {
		return '?'
	}
	return faceLetters[f]
}

func (f Face) String() string {
	return string(f.Letter())
}

// FaceFromLetter maps a token letter of either case to its face.
func FaceFromLetter(c byte) (Face, bool) {
	switch c {
	case 'f', 'F':
		return FaceF, true
	case 'b', 'B':
		return FaceB, true
	case 'l', 'L':
		return FaceL, true
	case 'r', 'R':
		return FaceR, true
	case 'u', 'U':
		return FaceU, true
	case 'd', 'D':
		return FaceD, true
	default:
		return 0, false
	}
}

// Token is a single move: lower case turns the face a quarter turn, upper
// case turns it back.
type Token byte

// NewToken builds the token for a face, upper case when reverse is set.
func NewToken(f Face, reverse bool) Token {
	c := f.Letter()
	if reverse {
		c -= 'a' - 'A'
	}
	return Token(c)
}

// ParseToken validates a single token character.
func ParseToken(c byte) (Token, error) {
	if _, ok := FaceFromLetter(c); !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, c)
	}
	return Token(c), nil
}

// ParseTokens parses a token string such as "fBrFbD". Whitespace is skipped;
// any other character outside the token alphabet rejects the whole string.
func ParseTokens(s string) ([]Token, error) {
	tokens := make([]Token, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		t, err := ParseToken(c)
		if err != nil {
			return nil, fmt.Errorf("position %d: %w", i, err)
		}
		tokens = append(tokens, t)
	}
	return tokens, nil
}

// MustParseTokens is like ParseTokens but panics on invalid input.
// It is meant for static tables and tests.
func MustParseTokens(s string) []Token {
	tokens, err := ParseTokens(s)
	if err != nil {
		panic(err)
	}
	return tokens
}

// Valid reports whether t is in the token alphabet.
func (t Token) Valid() bool {
	_, ok := FaceFromLetter(byte(t))
	return ok
}

// Face returns the face named by the token, ignoring case.
func (t Token) Face() Face {
	f, _ := FaceFromLetter(byte(t))
	return f
}

// Reverse reports whether the token is upper case.
func (t Token) Reverse() bool {
	return t >= 'A' && t <= 'Z'
}

// Inverse returns the same face turned the other way.
func (t Token) Inverse() Token {
	return NewToken(t.Face(), !t.Reverse())
}

// Complements reports whether t and o turn the same face in opposite
// directions.
func (t Token) Complements(o Token) bool {
	return t != o && t.Valid() && o.Valid() && t.Face() == o.Face()
}

func (t Token) String() string {
	return string(rune(t))
}

// FormatTokens joins tokens into their compact string form.
func FormatTokens(tokens []Token) string {
	var b strings.Builder
	b.Grow(len(tokens))
	for _, t := range tokens {
		b.WriteByte(byte(t))
	}
	return b.String()
}

// InverseSequence returns the sequence that undoes tokens.
func InverseSequence(tokens []Token) []Token {
	inv := make([]Token, len(tokens))
	for i, t := range tokens {
		inv[len(tokens)-1-i] = t.Inverse()
	}
	return inv
}
