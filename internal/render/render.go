// Package render draws the piece model as a colored text net.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cubeanim"
)

// Hints is presentation state owned by the surface that draws the cube.
type Hints struct {
	// Highlight emphasizes pieces that are away from home.
	Highlight bool
	// Upper makes single moves turn faces in reverse.
	Upper bool
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	StatusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	ModeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	MoveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	homeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	displacedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	animatedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Cell is one facelet position of a face and the piece sitting there.
type Cell struct {
	ID          int
	Kind        cubeanim.Kind
	Displaced   bool
	Animated    bool
	Angle       float64
	Orientation int
	Tracked     bool
}

// frame gives, per face, the world directions of a grid column step and a
// grid row step as seen from outside the face.
var frame = map[cubeanim.Group][2]cubeanim.Vec3{
	cubeanim.GroupFront: {{X: 1}, {Y: -1}},
	cubeanim.GroupBack:  {{X: -1}, {Y: -1}},
	cubeanim.GroupLeft:  {{Z: 1}, {Y: -1}},
	cubeanim.GroupRight: {{Z: -1}, {Y: -1}},
	cubeanim.GroupUp:    {{X: 1}, {Z: 1}},
	cubeanim.GroupDown:  {{X: 1}, {Z: -1}},
}

// Grid returns the 3x3 view of the group's face, row by row.
func Grid(tr *cubeanim.Tracker, g cubeanim.Group) [3][3]Cell {
	at := make(map[cubeanim.Vec3]*cubeanim.Piece, cubeanim.PieceCount)
	pieces := tr.Pieces()
	for i := range pieces {
		at[pieces[i].Membership()] = &pieces[i]
	}

	n := g.Normal()
	col, row := frame[g][0], frame[g][1]
	var grid [3][3]Cell
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			pos := cubeanim.Vec3{
				X: n.X + (c-1)*col.X + (r-1)*row.X,
				Y: n.Y + (c-1)*col.Y + (r-1)*row.Y,
				Z: n.Z + (c-1)*col.Z + (r-1)*row.Z,
			}
			p, ok := at[pos]
			if !ok {
				continue
			}
			cell := Cell{
				ID:          p.ID(),
				Kind:        p.Kind(),
				Displaced:   !p.AtHome(),
				Orientation: p.Orientation(),
				Tracked:     p.FixRequired(),
			}
			if rot, ok := p.Rotation(); ok {
				cell.Animated = true
				cell.Angle = rot.Angle
			}
			grid[r][c] = cell
		}
	}
	return grid
}

// arrow shows which way a tracked center's artwork points.
func arrow(orientation int) string {
	switch orientation {
	case 90:
		return "←"
	case 180:
		return "↓"
	case 270:
		return "→"
	default:
		return "↑"
	}
}

func (c Cell) glyph() string {
	switch {
	case c.Kind == cubeanim.KindCenter && c.Tracked:
		return arrow(c.Orientation)
	case c.Kind == cubeanim.KindCenter:
		return "+"
	case c.Displaced:
		return "#"
	default:
		return "."
	}
}

func (c Cell) render(h Hints) string {
	g := c.glyph()
	switch {
	case c.Animated:
		return animatedStyle.Render(g)
	case h.Highlight && c.Displaced:
		return displacedStyle.Render(g)
	default:
		return homeStyle.Render(g)
	}
}

func faceRows(tr *cubeanim.Tracker, g cubeanim.Group, h Hints) []string {
	grid := Grid(tr, g)
	rows := make([]string, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			cells[c] = grid[r][c].render(h)
		}
		rows[r] = strings.Join(cells, " ")
	}
	return rows
}

// Net draws the cube unfolded: up on top, then left, front, right and back,
// then down. Each face is labelled with the token letter that turns it.
func Net(tr *cubeanim.Tracker, h Hints) string {
	var b strings.Builder
	pad := strings.Repeat(" ", 7)

	label := func(g cubeanim.Group) string {
		return labelStyle.Render(fmt.Sprintf("%-7s", fmt.Sprintf("%s(%s)", strings.ToUpper(g.String()[:1]), g.Face())))
	}

	b.WriteString(pad + label(cubeanim.GroupUp) + "\n")
	for _, row := range faceRows(tr, cubeanim.GroupUp, h) {
		b.WriteString(pad + row + "\n")
	}

	side := []cubeanim.Group{cubeanim.GroupLeft, cubeanim.GroupFront, cubeanim.GroupRight, cubeanim.GroupBack}
	for _, g := range side {
		b.WriteString(label(g))
	}
	b.WriteString("\n")
	rows := make([][]string, len(side))
	for i, g := range side {
		rows[i] = faceRows(tr, g, h)
	}
	for r := 0; r < 3; r++ {
		for i := range side {
			b.WriteString(rows[i][r] + "  ")
		}
		b.WriteString("\n")
	}

	b.WriteString(pad + label(cubeanim.GroupDown) + "\n")
	for _, row := range faceRows(tr, cubeanim.GroupDown, h) {
		b.WriteString(pad + row + "\n")
	}
	return b.String()
}

// Status summarizes the controller state on one line.
func Status(c *cubeanim.Controller, h Hints) string {
	var b strings.Builder
	b.WriteString(ModeStyle.Render(strings.ToUpper(c.Mode().String())))
	if m, angle, ok := c.Current(); ok {
		b.WriteString(StatusStyle.Render(fmt.Sprintf("  move %d/%d %s %.0f°",
			c.Cursor()+1, len(c.Queue()), m, angle)))
	}
	if h.Upper {
		b.WriteString(StatusStyle.Render("  [REVERSE]"))
	}
	if h.Highlight {
		b.WriteString(StatusStyle.Render("  [HIGHLIGHT]"))
	}
	return b.String()
}

// Tokens renders the queued sequence with the executed part dimmed.
func Tokens(c *cubeanim.Controller) string {
	tokens := c.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	done := doneTokens(c.Queue(), c.Cursor(), len(tokens))
	return StatusStyle.Render(cubeanim.FormatTokens(tokens[:done])) +
		MoveStyle.Render(cubeanim.FormatTokens(tokens[done:]))
}

// doneTokens maps a move cursor back to a token count. Half turns came from
// two tokens.
func doneTokens(moves []cubeanim.Move, cursor, total int) int {
	n := 0
	for i := 0; i < cursor && i < len(moves); i++ {
		if moves[i].Angle == 180 || moves[i].Angle == -180 {
			n += 2
		} else {
			n++
		}
	}
	if n > total {
		n = total
	}
	return n
}
