// Package observer streams the piece model over websocket and accepts
// triggers from remote clients.
package observer

import (
	"github.com/SeamusWaldron/cubeanim"
)

// Version is the observer protocol version a client must subscribe with.
const Version = "1"

// Message types
const (
	TypeSubscribe = "SUBSCRIBE"
	TypeSnapshot  = "SNAPSHOT"
	TypeTrigger   = "TRIGGER"
	TypeResult    = "RESULT"
)

// Trigger actions
const (
	ActionSolve   = "solve"
	ActionShuffle = "shuffle"
	ActionMove    = "move"
)

type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
}

type TriggerMsg struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Letter string `json:"letter,omitempty"`
	Upper  bool   `json:"upper,omitempty"`
}

type ResultMsg struct {
	Type     string `json:"type"`
	Action   string `json:"action"`
	Accepted bool   `json:"accepted"`
	Error    string `json:"error,omitempty"`
}

type RotationState struct {
	Group  string  `json:"group"`
	Axis   [3]int  `json:"axis"`
	Center [3]int  `json:"center"`
	Angle  float64 `json:"angle"`
}

type PieceState struct {
	ID          int            `json:"id"`
	Membership  [3]int         `json:"membership"`
	Orientation int            `json:"orientation,omitempty"`
	Rotation    *RotationState `json:"rotation,omitempty"`
}

type Snapshot struct {
	Type     string       `json:"type"`
	Frame    uint64       `json:"frame"`
	Mode     string       `json:"mode"`
	Status   string       `json:"status"`
	Cursor   int          `json:"cursor"`
	QueueLen int          `json:"queue_len"`
	Tokens   string       `json:"tokens,omitempty"`
	Error    string       `json:"error,omitempty"`
	Pieces   []PieceState `json:"pieces"`
}

type BootstrapResponse struct {
	ProtocolVersion string   `json:"protocol_version"`
	FrameRate       int      `json:"frame_rate"`
	FixRequired     []string `json:"fix_required"`
}

func vec(v cubeanim.Vec3) [3]int {
	return [3]int{v.X, v.Y, v.Z}
}

// NewSnapshot captures the controller and every piece.
func NewSnapshot(frame uint64, c *cubeanim.Controller) Snapshot {
	s := Snapshot{
		Type:     TypeSnapshot,
		Frame:    frame,
		Mode:     c.Mode().String(),
		Status:   c.Status().String(),
		Cursor:   c.Cursor(),
		QueueLen: len(c.Queue()),
		Tokens:   cubeanim.FormatTokens(c.Tokens()),
	}
	if err := c.Err(); err != nil {
		s.Error = err.Error()
	}

	pieces := c.Tracker().Pieces()
	s.Pieces = make([]PieceState, len(pieces))
	for i := range pieces {
		p := &pieces[i]
		ps := PieceState{
			ID:          p.ID(),
			Membership:  vec(p.Membership()),
			Orientation: p.Orientation(),
		}
		if rot, ok := p.Rotation(); ok {
			ps.Rotation = &RotationState{
				Group:  rot.Group.String(),
				Axis:   vec(rot.Axis),
				Center: vec(rot.Center),
				Angle:  rot.Angle,
			}
		}
		s.Pieces[i] = ps
	}
	return s
}
