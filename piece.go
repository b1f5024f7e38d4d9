package cubeanim

import (
	"fmt"
	"math"
)

// Vec3 is an integral cube coordinate. Each component is -1, 0 or 1 for a
// piece membership.
type Vec3 struct {
	X, Y, Z int
}

// Abs returns the component-wise absolute value.
func (v Vec3) Abs() Vec3 {
	return Vec3{absInt(v.X), absInt(v.Y), absInt(v.Z)}
}

// Norm returns the Manhattan norm.
func (v Vec3) Norm() int {
	return absInt(v.X) + absInt(v.Y) + absInt(v.Z)
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%d,%d,%d)", v.X, v.Y, v.Z)
}

// rotate turns v by angle degrees about a positive world axis and rounds
// the result back onto the integral lattice.
func (v Vec3) rotate(axis Vec3, angle float64) Vec3 {
	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	x, y, z := float64(v.X), float64(v.Y), float64(v.Z)
	switch {
	case axis.X != 0:
		y, z = y*cos-z*sin, y*sin+z*cos
	case axis.Y != 0:
		x, z = x*cos+z*sin, -x*sin+z*cos
	default:
		x, y = x*cos-y*sin, x*sin+y*cos
	}
	return Vec3{roundUnit(x), roundUnit(y), roundUnit(z)}
}

// roundUnit rounds to the nearest of -1, 0, 1 with ties going away from zero.
func roundUnit(v float64) int {
	r := int(v + math.Copysign(0.5, v))
	switch {
	case r > 1:
		return 1
	case r < -1:
		return -1
	}
	return r
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Kind classifies a piece by how many faces it shows.
type Kind int

const (
	KindCenter Kind = 1
	KindEdge   Kind = 2
	KindCorner Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindCenter:
		return "center"
	case KindEdge:
		return "edge"
	case KindCorner:
		return "corner"
	default:
		return "invalid"
	}
}

// Piece is one of the 26 visible sub-cubes.
type Piece struct {
	id          int
	home        Vec3
	membership  Vec3
	orientation int
	fixRequired bool

	// Transient animation state, reset at commit.
	animGroup Group
	animAngle float64
}

// ID returns the assembly index of the piece.
func (p *Piece) ID() int { return p.id }

// Home returns the position the piece was assembled at.
func (p *Piece) Home() Vec3 { return p.home }

// Membership returns the face planes the piece currently touches.
func (p *Piece) Membership() Vec3 { return p.membership }

// Orientation returns the accumulated spin of a center in degrees, [0,360).
// It stays 0 for pieces that do not track orientation.
func (p *Piece) Orientation() int { return p.orientation }

// FixRequired reports whether the piece is a center whose artwork is
// orientation sensitive.
func (p *Piece) FixRequired() bool { return p.fixRequired }

// Kind returns center, edge or corner.
func (p *Piece) Kind() Kind { return Kind(p.membership.Norm()) }

// IsCenter reports whether the piece touches exactly one face.
func (p *Piece) IsCenter() bool { return p.Kind() == KindCenter }

// AtHome reports whether the piece is back where it was assembled.
func (p *Piece) AtHome() bool { return p.membership == p.home }

// BelongsTo reports whether the piece is part of the group's layer.
func (p *Piece) BelongsTo(g Group) bool {
	n := g.Normal()
	m := p.membership
	switch {
	case n.X != 0:
		return m.X == n.X
	case n.Y != 0:
		return m.Y == n.Y
	default:
		return m.Z == n.Z
	}
}

// Groups returns the face groups the piece currently belongs to.
func (p *Piece) Groups() []Group {
	groups := make([]Group, 0, 3)
	for _, g := range Groups {
		if p.BelongsTo(g) {
			groups = append(groups, g)
		}
	}
	return groups
}

// Face returns the token letter of the face a center sits on.
func (p *Piece) Face() (Face, bool) {
	if !p.IsCenter() {
		return 0, false
	}
	for _, g := range Groups {
		if p.BelongsTo(g) {
			return g.Face(), true
		}
	}
	return 0, false
}

// Rotation describes the in-flight transform of a piece for the renderer:
// a rotation of Angle degrees about Axis through Center.
type Rotation struct {
	Group  Group
	Axis   Vec3
	Center Vec3
	Angle  float64
}

// Rotation returns the transient rotation applied since the current move
// began, or false when the piece is not being animated.
func (p *Piece) Rotation() (Rotation, bool) {
	if p.animGroup == groupNone {
		return Rotation{}, false
	}
	return Rotation{
		Group:  p.animGroup,
		Axis:   p.animGroup.Axis(),
		Center: p.animGroup.Normal(),
		Angle:  p.animAngle,
	}, true
}

func (p *Piece) String() string {
	return fmt.Sprintf("piece %d %s at %s", p.id, p.Kind(), p.membership)
}
