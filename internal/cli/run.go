package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeanim"
	"github.com/SeamusWaldron/cubeanim/internal/config"
	"github.com/SeamusWaldron/cubeanim/internal/recorder"
	"github.com/SeamusWaldron/cubeanim/internal/solver"
)

var (
	runPlot    bool
	runJournal bool
	runMaxTime time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Shuffle and solve headlessly",
	Long: `Shuffle the cube, solve it and fix any misoriented centers without a
terminal UI. The animation clock advances by one frame per tick at the
configured frame rate, so runs are deterministic for a fixed seed.

Examples:
  cubeanim run
  cubeanim run --config demo --plot
  cubeanim run --config artwork --journal`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runPlot, "plot", false, "Plot move progress over time")
	runCmd.Flags().BoolVar(&runJournal, "journal", false, "Record the run to the database")
	runCmd.Flags().DurationVar(&runMaxTime, "max-time", 10*time.Minute, "Give up after this much simulated time")
}

var errRunTimeout = errors.New("run did not return to idle")

// phaseStats summarizes one trigger and everything it chained into.
type phaseStats struct {
	Name       string
	Dispatches []cubeanim.Dispatch
	Frames     int
}

func (p phaseStats) moves() int {
	n := 0
	for _, d := range p.Dispatches {
		n += len(d.Moves)
	}
	return n
}

// headless drives a controller with a fixed frame interval.
type headless struct {
	ctrl     *cubeanim.Controller
	dt       time.Duration
	maxTime  time.Duration
	elapsed  time.Duration
	progress []float64
	pending  []cubeanim.Dispatch
}

func newHeadless(cfg *config.Config, s cubeanim.Solver, logger *slog.Logger, hook func(cubeanim.Dispatch)) *headless {
	h := &headless{
		dt:      time.Second / time.Duration(cfg.FrameRate),
		maxTime: runMaxTime,
	}
	opts := append(cfg.Options(),
		cubeanim.WithLogger(logger),
		cubeanim.WithDispatchHook(func(d cubeanim.Dispatch) {
			h.pending = append(h.pending, d)
			if hook != nil {
				hook(d)
			}
		}),
	)
	h.ctrl = cubeanim.NewController(s, opts...)
	return h
}

// phase fires trigger and ticks until the controller is idle again.
func (h *headless) phase(name string, trigger func() (bool, error)) (phaseStats, error) {
	stats := phaseStats{Name: name}
	h.pending = nil

	accepted, err := trigger()
	if err != nil {
		return stats, fmt.Errorf("%s: %w", name, err)
	}
	if !accepted {
		return stats, nil
	}

	for h.ctrl.Mode() != cubeanim.Idle {
		if h.elapsed >= h.maxTime {
			return stats, fmt.Errorf("%s: %w after %s", name, errRunTimeout, h.elapsed)
		}
		if err := h.ctrl.Tick(h.dt); err != nil {
			return stats, fmt.Errorf("%s: %w", name, err)
		}
		h.elapsed += h.dt
		stats.Frames++
		h.progress = append(h.progress, moveProgress(h.ctrl))
	}
	stats.Dispatches = h.pending
	return stats, nil
}

// moveProgress is the position within the queue in moves, with the move in
// flight counted fractionally.
func moveProgress(c *cubeanim.Controller) float64 {
	p := float64(c.Cursor())
	if m, rotated, ok := c.Current(); ok && m.Angle != 0 {
		p += rotated / abs(m.Angle)
	}
	return p
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// downsample keeps at most n evenly spaced points.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n || n <= 0 {
		return data
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = data[i*len(data)/n]
	}
	return out
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	var hook func(cubeanim.Dispatch)
	var session *recorder.Session
	if runJournal {
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		session = recorder.NewSession(db, nil, logger)
		if _, err := session.Start("run", cfg.FixRequired.Flags(), cfg.Speed); err != nil {
			return err
		}
		defer session.End()
		hook = session.Hook()
	}

	s := solver.NewHistorySolver()
	h := newHeadless(cfg, s, logger, hook)

	shuffle, err := h.phase("shuffle", h.ctrl.Shuffle)
	if err != nil {
		return err
	}
	solve, err := h.phase("solve", h.ctrl.Solve)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printPhase(out, shuffle, h.dt)
	printPhase(out, solve, h.dt)
	fmt.Fprintf(out, "\nSimulated time: %s at %d fps\n", h.elapsed.Round(time.Millisecond), cfg.FrameRate)
	if s.IsSolved() {
		fmt.Fprintln(out, "Cube solved")
	} else {
		fmt.Fprintln(out, "Cube NOT solved")
	}
	if wrong := h.ctrl.Tracker().Detect(); len(wrong) > 0 {
		for _, w := range wrong {
			fmt.Fprintf(out, "  center %s left at %d°\n", w.Face, w.Orientation)
		}
	}
	if session != nil {
		fmt.Fprintf(out, "Journaled session %s (%d dispatches)\n", session.SessionID(), session.DispatchCount())
	}

	if runPlot && len(h.progress) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(downsample(h.progress, 80),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("moves completed per queue"),
		))
	}
	return nil
}

func printPhase(w io.Writer, p phaseStats, dt time.Duration) {
	if len(p.Dispatches) == 0 {
		fmt.Fprintf(w, "%-8s skipped\n", p.Name)
		return
	}
	fmt.Fprintf(w, "%-8s %d moves, %d frames (%s)\n", p.Name, p.moves(), p.Frames,
		(time.Duration(p.Frames) * dt).Round(time.Millisecond))
	for _, d := range p.Dispatches {
		line := fmt.Sprintf("  %-11s %s", d.Mode, cubeanim.FormatTokens(d.Tokens))
		if len(d.Raw) != len(d.Tokens) {
			line += fmt.Sprintf(" (simplified from %d tokens)", len(d.Raw))
		}
		fmt.Fprintln(w, line)
		for _, f := range d.Fixes {
			fmt.Fprintf(w, "    fixing %s center at %d°\n", f.Face, f.Orientation)
		}
	}
}
