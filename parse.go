package cubeanim

import (
	"fmt"
	"strings"
)

// Group is one of the six face layers of the cube in world coordinates.
// A move rotates every piece of one group about the group's axis.
type Group int

const (
	GroupFront Group = iota
	GroupBack
	GroupLeft
	GroupRight
	GroupUp
	GroupDown

	groupCount
	groupNone Group = -1
)

// Groups lists every face group in table order.
var Groups = [groupCount]Group{GroupFront, GroupBack, GroupLeft, GroupRight, GroupUp, GroupDown}

var groupNames = [groupCount]string{"front", "back", "left", "right", "up", "down"}

func (g Group) String() string {
	if g < 0 || g >= groupCount {
		return "none"
	}
	return groupNames[g]
}

// ParseGroup maps a group name such as "front" to its Group.
func ParseGroup(name string) (Group, bool) {
	for g, n := range groupNames {
		if strings.EqualFold(n, name) {
			return Group(g), true
		}
	}
	return groupNone, false
}

// groupNormals holds the outward normal of each face group.
var groupNormals = [groupCount]Vec3{
	GroupFront: {0, 0, 1},
	GroupBack:  {0, 0, -1},
	GroupLeft:  {-1, 0, 0},
	GroupRight: {1, 0, 0},
	GroupUp:    {0, 1, 0},
	GroupDown:  {0, -1, 0},
}

// Normal returns the outward normal of the group's face.
func (g Group) Normal() Vec3 {
	return groupNormals[g]
}

// Axis returns the positive world axis the group rotates about.
func (g Group) Axis() Vec3 {
	return groupNormals[g].Abs()
}

// sign is the component sum of the normal, +1 or -1.
func (g Group) sign() float64 {
	n := groupNormals[g]
	return float64(n.X + n.Y + n.Z)
}

// faceGroups maps each token letter to the world group it turns.
var faceGroups = [faceCount]Group{
	FaceF: GroupLeft,
	FaceB: GroupRight,
	FaceR: GroupBack,
	FaceL: GroupFront,
	FaceU: GroupDown,
	FaceD: GroupUp,
}

// Group returns the world group turned by the face letter.
func (f Face) Group() Group {
	return faceGroups[f]
}

// Face returns the token letter that turns the group.
func (g Group) Face() Face {
	for f, fg := range faceGroups {
		if fg == g {
			return Face(f)
		}
	}
	return faceCount
}

// Move is a parsed rotation of one group. Angle is in degrees about the
// group's positive world axis and is always a multiple of 90.
type Move struct {
	Group Group
	Angle float64
}

func (m Move) String() string {
	return fmt.Sprintf("%s%+g", m.Group, m.Angle)
}

// Parse converts tokens into group rotations. Lower case turns +90 degrees
// about the face's outward normal, upper case -90; the angle is then
// expressed about the positive world axis. A token repeating the previous
// raw token folds into the previous quarter turn as a half turn.
func Parse(tokens []Token) []Move {
	moves := make([]Move, 0, len(tokens))
	var last Token
	for _, t := range tokens {
		g := t.Face().Group()
		angle := 90.0
		if t.Reverse() {
			angle = -90
		}
		angle *= g.sign()

		n := len(moves)
		if n > 0 && t == last && abs(moves[n-1].Angle) == 90 {
			moves[n-1].Angle *= 2
		} else {
			moves = append(moves, Move{Group: g, Angle: angle})
		}
		last = t
	}
	return moves
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
