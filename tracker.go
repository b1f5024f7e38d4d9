package cubeanim

import (
	"fmt"
	"math"
)

// PieceCount is the number of visible pieces of a 3x3 cube.
const PieceCount = 26

// sliceSize is the number of pieces in one face layer.
const sliceSize = 9

// FixFlags records, per face group, whether the center artwork is
// orientation sensitive.
type FixFlags [groupCount]bool

// Tracker owns the authoritative piece model: where each piece is and how
// each center is spun. Animation ticks only touch transient per-piece
// angles; membership and orientation change in CommitSlice.
type Tracker struct {
	pieces [PieceCount]Piece
	flags  FixFlags
}

// NewTracker assembles a solved cube. Pieces are created in x, y, z order
// over {-1,0,1}, skipping the core.
func NewTracker(flags FixFlags) *Tracker {
	t := &Tracker{flags: flags}
	i := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				pos := Vec3{x, y, z}
				p := Piece{id: i, home: pos, membership: pos, animGroup: groupNone}
				if pos.Norm() == 1 {
					for _, g := range Groups {
						if g.Normal() == pos {
							p.fixRequired = flags[g]
						}
					}
				}
				t.pieces[i] = p
				i++
			}
		}
	}
	return t
}

// FixFlags returns the configuration the cube was assembled with.
func (t *Tracker) FixFlags() FixFlags {
	return t.flags
}

// Pieces returns the pieces in assembly order. The slice aliases the
// tracker's storage and must be treated as read-only.
func (t *Tracker) Pieces() []Piece {
	return t.pieces[:]
}

// Piece returns the piece with the given assembly index.
func (t *Tracker) Piece(id int) *Piece {
	return &t.pieces[id]
}

// Members returns the indices of the pieces in the group's layer.
func (t *Tracker) Members(g Group) []int {
	members := make([]int, 0, sliceSize)
	for i := range t.pieces {
		if t.pieces[i].BelongsTo(g) {
			members = append(members, i)
		}
	}
	return members
}

// RotateSlice advances the animation of every piece in the group by delta
// degrees. It never changes membership or orientation.
func (t *Tracker) RotateSlice(g Group, delta float64) {
	for i := range t.pieces {
		p := &t.pieces[i]
		if !p.BelongsTo(g) {
			continue
		}
		if p.animGroup != g {
			p.animGroup = g
			p.animAngle = 0
		}
		p.animAngle += delta
	}
}

// CommitSlice applies a completed move of angle degrees to the group's
// layer. Non-center members are moved by the exact rotation; centers that
// require a fix accumulate orientation. Transient animation is cleared.
func (t *Tracker) CommitSlice(g Group, angle float64) error {
	if g < 0 || g >= groupCount {
		return fmt.Errorf("%w: commit on unknown group %d", ErrDesync, g)
	}
	if math.Mod(angle, 90) != 0 {
		return fmt.Errorf("%w: commit on %s by %g degrees, not a multiple of 90", ErrDesync, g, angle)
	}
	members := t.Members(g)
	if len(members) == 0 {
		return fmt.Errorf("%w: commit on %s with no members", ErrDesync, g)
	}
	if len(members) != sliceSize {
		return fmt.Errorf("%w: commit on %s found %d members", ErrDesync, g, len(members))
	}

	axis := g.Axis()
	for _, i := range members {
		p := &t.pieces[i]
		if p.IsCenter() {
			if p.fixRequired {
				p.orientation = normalizeDegrees(p.orientation + int(math.Round(angle)))
			}
		} else {
			moved := p.membership.rotate(axis, angle)
			if moved.Norm() != p.membership.Norm() {
				return fmt.Errorf("%w: %s rotated off the lattice to %s", ErrDesync, p, moved)
			}
			p.membership = moved
		}
		p.animGroup = groupNone
		p.animAngle = 0
	}
	return nil
}

// Apply commits a parsed sequence without animating it.
func (t *Tracker) Apply(moves []Move) error {
	for _, m := range moves {
		if err := t.CommitSlice(m.Group, m.Angle); err != nil {
			return err
		}
	}
	return nil
}

// Solved reports whether every piece is home and every tracked center is
// upright.
func (t *Tracker) Solved() bool {
	for i := range t.pieces {
		p := &t.pieces[i]
		if !p.AtHome() || p.orientation != 0 {
			return false
		}
	}
	return true
}

// normalizeDegrees wraps an angle into [0,360).
func normalizeDegrees(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}
