package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/render"
	"github.com/SeamusWaldron/cubeanim/internal/solver"
	"github.com/SeamusWaldron/cubeanim/internal/storage"
)

var playNoJournal bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive terminal animation",
	Long: `Start an interactive TUI that animates the cube one face turn at a time.

Keyboard shortcuts:
  s            - Solve the cube
  m            - Shuffle the cube (only when solved)
  f b l r u d  - Turn a single face
  1 / 2        - Single turns in reverse / normal direction
  a / q        - Highlight displaced pieces on / off
  Esc          - Quit

Each dispatched sequence is journaled unless --no-journal is given.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&playNoJournal, "no-journal", false, "Do not record the session")
}

// Messages
type frameMsg time.Time

// Model
type playModel struct {
	ctrl      *cubeanim.Controller
	solver    *solver.HistorySolver
	session   *recorder.Session
	frameRate int
	last      time.Time

	hints    render.Hints
	notice   string
	err      error
	quitting bool
}

func newPlayModel(cfg *config.Config, session *recorder.Session, logger *slog.Logger) *playModel {
	s := solver.NewHistorySolver()
	opts := append(cfg.Options(), cubeanim.WithLogger(logger))
	if session != nil {
		opts = append(opts, cubeanim.WithDispatchHook(session.Hook()))
	}
	return &playModel{
		ctrl:      cubeanim.NewController(s, opts...),
		solver:    s,
		session:   session,
		frameRate: cfg.FrameRate,
	}
}

func (m *playModel) Init() tea.Cmd {
	m.last = time.Now()
	return m.frameCmd()
}

func (m *playModel) frameCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case frameMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last)
		m.last = now
		if err := m.ctrl.Tick(dt); err != nil {
			m.err = err
		}
		return m, m.frameCmd()
	}

	return m, nil
}

func (m *playModel) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "s":
		m.trigger("solve", m.ctrl.Solve)
	case "m":
		m.trigger("shuffle", m.ctrl.Shuffle)

	case "1":
		m.hints.Upper = true
	case "2":
		m.hints.Upper = false
	case "a":
		m.hints.Highlight = true
	case "q":
		m.hints.Highlight = false

	default:
		if len(key) == 1 {
			if _, ok := cubeanim.FaceFromLetter(key[0]); ok {
				letter := key[0]
				m.trigger("move "+key, func() (bool, error) {
					return m.ctrl.CustomMove(letter, m.hints.Upper)
				})
			}
		}
	}
	return m, nil
}

// trigger runs fn and records why it was refused, if it was.
func (m *playModel) trigger(name string, fn func() (bool, error)) {
	accepted, err := fn()
	switch {
	case err != nil:
		m.notice = fmt.Sprintf("%s: %v", name, err)
	case !accepted:
		m.notice = fmt.Sprintf("%s ignored (%s)", name, refusal(m.ctrl, m.solver))
	default:
		m.notice = ""
	}
}

// refusal explains why a trigger was not accepted.
func refusal(c *cubeanim.Controller, s cubeanim.Solver) string {
	if c.Mode() != cubeanim.Idle {
		return "busy " + c.Mode().String()
	}
	if s.IsSolved() {
		return "already solved"
	}
	return "cube not solved"
}

func (m *playModel) View() string {
	if m.quitting {
		msg := "Goodbye!\n"
		if m.session != nil && m.session.SessionID() != "" {
			msg += fmt.Sprintf("Session %s: %d dispatches journaled\n",
				m.session.SessionID()[:8], m.session.DispatchCount())
		}
		return msg
	}

	var b strings.Builder

	b.WriteString(render.TitleStyle.Render("cubeanim"))
	b.WriteString("\n\n")
	b.WriteString(render.Status(m.ctrl, m.hints))
	b.WriteString("\n")
	if tokens := render.Tokens(m.ctrl); tokens != "" {
		b.WriteString(tokens)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(render.Net(m.ctrl.Tracker(), m.hints))
	b.WriteString("\n")

	if m.solver.IsSolved() {
		b.WriteString(render.MoveStyle.Render("SOLVED"))
	} else {
		b.WriteString(render.StatusStyle.Render(fmt.Sprintf("%d moves from solved", len(m.solver.History()))))
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(render.ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	} else if m.notice != "" {
		b.WriteString(render.StatusStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(render.HelpStyle.Render("s: solve  m: shuffle  fblrud: turn  1/2: reverse on/off  a/q: highlight on/off  esc: quit"))
	return b.String()
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Log to nowhere while the TUI owns the terminal.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	var session *recorder.Session
	if !playNoJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		session, err = startJournal(db, cfg, logger)
		if err != nil {
			return err
		}
		defer session.End()
	}

	model := newPlayModel(cfg, session, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return model.err
}

// startJournal opens a recorder session and marks it active in the state
// file. A session left active by a crashed run is closed first.
func startJournal(db *storage.DB, cfg *config.Config, logger *slog.Logger) (*recorder.Session, error) {
	stateFile, err := recorder.NewDefaultStateFile()
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	if active, ok := stateFile.ActiveSession(); ok {
		logger.Info("closing unfinished session", "session", active.ID,
			"fixes", active.FixFlags, "speed", active.Speed, "started", active.StartedAt)
		if flags, err := active.Flags(); err == nil && flags != cfg.FixRequired.Flags() {
			logger.Warn("fix flags changed since last session", "was", active.FixFlags,
				"now", recorder.FormatFlags(cfg.FixRequired.Flags()))
		}
		stale := recorder.NewSession(db, stateFile, logger)
		if err := stale.Resume(active.ID); err == nil {
			_ = stale.End()
		} else {
			_ = stateFile.ClearActiveSession()
		}
	}

	session := recorder.NewSession(db, stateFile, logger)
	if _, err := session.Start("play", cfg.FixRequired.Flags(), cfg.Speed); err != nil {
		return nil, err
	}
	return session, nil
}
