// Package solver provides a facelet model of the cube and a reference solver
// that keeps it in step with the animated piece model.
package solver

import (
	"strings"

	"github.com/SeamusWaldron/cubeanim"
)

// Cube is a 3x3 cube as 54 facelets. Faces are indexed by world group and
// each facelet holds the group whose color it shows. Facelets of a face are
// numbered as seen from outside:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// The center (index 4) never moves.
type Cube struct {
	Facelets [6][9]cubeanim.Group
}

// New creates a solved cube.
func New() *Cube {
	c := &Cube{}
	for _, g := range cubeanim.Groups {
		for i := 0; i < 9; i++ {
			c.Facelets[g][i] = g
		}
	}
	return c
}

// Clone creates a deep copy of the cube.
func (c *Cube) Clone() *Cube {
	clone := *c
	return &clone
}

// IsSolved returns true if every face shows a single color.
func (c *Cube) IsSolved() bool {
	for _, g := range cubeanim.Groups {
		for i := 0; i < 9; i++ {
			if c.Facelets[g][i] != g {
				return false
			}
		}
	}
	return true
}

// strip is three facelets of one face.
type strip struct {
	face cubeanim.Group
	idx  [3]int
}

// rings lists, per face, the four strips of neighbouring facelets that a
// clockwise turn of that face carries along, in the order they travel.
var rings = [6][4]strip{
	cubeanim.GroupUp: {
		{cubeanim.GroupFront, [3]int{0, 1, 2}},
		{cubeanim.GroupLeft, [3]int{0, 1, 2}},
		{cubeanim.GroupBack, [3]int{0, 1, 2}},
		{cubeanim.GroupRight, [3]int{0, 1, 2}},
	},
	cubeanim.GroupDown: {
		{cubeanim.GroupFront, [3]int{6, 7, 8}},
		{cubeanim.GroupRight, [3]int{6, 7, 8}},
		{cubeanim.GroupBack, [3]int{6, 7, 8}},
		{cubeanim.GroupLeft, [3]int{6, 7, 8}},
	},
	cubeanim.GroupFront: {
		{cubeanim.GroupUp, [3]int{6, 7, 8}},
		{cubeanim.GroupRight, [3]int{0, 3, 6}},
		{cubeanim.GroupDown, [3]int{2, 1, 0}},
		{cubeanim.GroupLeft, [3]int{8, 5, 2}},
	},
	cubeanim.GroupBack: {
		{cubeanim.GroupUp, [3]int{2, 1, 0}},
		{cubeanim.GroupLeft, [3]int{0, 3, 6}},
		{cubeanim.GroupDown, [3]int{6, 7, 8}},
		{cubeanim.GroupRight, [3]int{8, 5, 2}},
	},
	cubeanim.GroupRight: {
		{cubeanim.GroupUp, [3]int{2, 5, 8}},
		{cubeanim.GroupBack, [3]int{6, 3, 0}},
		{cubeanim.GroupDown, [3]int{2, 5, 8}},
		{cubeanim.GroupFront, [3]int{2, 5, 8}},
	},
	cubeanim.GroupLeft: {
		{cubeanim.GroupUp, [3]int{0, 3, 6}},
		{cubeanim.GroupFront, [3]int{0, 3, 6}},
		{cubeanim.GroupDown, [3]int{0, 3, 6}},
		{cubeanim.GroupBack, [3]int{8, 5, 2}},
	},
}

// Turn rotates the face of group g by quarter clockwise quarter turns, as
// seen from outside. Negative values turn counter-clockwise.
func (c *Cube) Turn(g cubeanim.Group, quarter int) {
	quarter %= 4
	if quarter < 0 {
		quarter += 4
	}
	for i := 0; i < quarter; i++ {
		c.turnCW(g)
	}
}

// Apply turns the face named by a token. Lower case tokens turn the face
// counter-clockwise, matching a positive rotation about its outward normal.
func (c *Cube) Apply(t cubeanim.Token) {
	if t.Reverse() {
		c.Turn(t.Face().Group(), 1)
	} else {
		c.Turn(t.Face().Group(), -1)
	}
}

// ApplyTokens applies a token sequence in order.
func (c *Cube) ApplyTokens(tokens []cubeanim.Token) {
	for _, t := range tokens {
		c.Apply(t)
	}
}

func (c *Cube) turnCW(g cubeanim.Group) {
	f := &c.Facelets[g]
	// Corners 0->2->8->6->0, edges 1->5->7->3->1
	f[0], f[2], f[8], f[6] = f[6], f[0], f[2], f[8]
	f[1], f[5], f[7], f[3] = f[3], f[1], f[5], f[7]

	r := &rings[g]
	var saved [3]cubeanim.Group
	for k, i := range r[0].idx {
		saved[k] = c.Facelets[r[0].face][i]
	}
	c.copyStrip(r[0], r[3])
	c.copyStrip(r[3], r[2])
	c.copyStrip(r[2], r[1])
	for k, i := range r[1].idx {
		c.Facelets[r[1].face][i] = saved[k]
	}
}

// copyStrip overwrites dst with the facelets of src.
func (c *Cube) copyStrip(dst, src strip) {
	for k := 0; k < 3; k++ {
		c.Facelets[dst.face][dst.idx[k]] = c.Facelets[src.face][src.idx[k]]
	}
}

func colorOf(g cubeanim.Group) string {
	return strings.ToUpper(g.String()[:1])
}

// String returns a text net of the cube: up on top, then left, front,
// right and back side by side, then down.
func (c *Cube) String() string {
	var b strings.Builder

	writeRows := func(faces ...cubeanim.Group) {
		for row := 0; row < 3; row++ {
			if len(faces) == 1 {
				b.WriteString("      ")
			}
			for _, face := range faces {
				for col := 0; col < 3; col++ {
					b.WriteString(colorOf(c.Facelets[face][row*3+col]))
					b.WriteByte(' ')
				}
			}
			b.WriteByte('\n')
		}
	}

	writeRows(cubeanim.GroupUp)
	writeRows(cubeanim.GroupLeft, cubeanim.GroupFront, cubeanim.GroupRight, cubeanim.GroupBack)
	writeRows(cubeanim.GroupDown)
	return b.String()
}
