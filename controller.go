package cubeanim

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"
)

// Mode is the kind of command stream the controller is working through.
type Mode int

const (
	Idle Mode = iota
	Solving
	Shuffling
	Fixing
	Customizing
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Solving:
		return "solving"
	case Shuffling:
		return "shuffling"
	case Fixing:
		return "fixing"
	case Customizing:
		return "customizing"
	default:
		return "unknown"
	}
}

// AnimationStatus tells whether a move is in flight.
type AnimationStatus int

const (
	Paused AnimationStatus = iota
	Running
)

func (s AnimationStatus) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Dispatch describes a sequence queued for animation.
type Dispatch struct {
	Mode Mode
	// Raw is the sequence as produced by the trigger or the solver.
	Raw []Token
	// Tokens is the sequence actually queued, after simplification.
	Tokens []Token
	Moves  []Move
	// Fixes lists the centers a Fixing dispatch corrects.
	Fixes []WrongCenter
}

// Controller paces queued moves through the animation clock, one move at a
// time, and commits each move to the tracker when its animation completes.
// It is driven by Tick and is not safe for concurrent use.
type Controller struct {
	cfg     *config
	log     *slog.Logger
	rng     *rand.Rand
	solver  Solver
	tracker *Tracker

	queue   []Move
	tokens  []Token
	cursor  int
	status  AnimationStatus
	mode    Mode
	active  []int
	rotated float64

	halted error
}

// NewController assembles a solved cube and returns an idle controller
// driving it. The solver may be nil when only custom moves are used.
func NewController(solver Solver, opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c := &Controller{
		cfg:     cfg,
		log:     cfg.logger,
		rng:     cfg.rng,
		solver:  solver,
		tracker: NewTracker(cfg.flags),
	}
	if c.log == nil {
		c.log = discardLogger()
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return c
}

// Tracker returns the piece model.
func (c *Controller) Tracker() *Tracker { return c.tracker }

// Mode returns the current action mode.
func (c *Controller) Mode() Mode { return c.mode }

// Status returns whether a move is currently being animated.
func (c *Controller) Status() AnimationStatus { return c.status }

// Cursor returns the index of the move being executed.
func (c *Controller) Cursor() int { return c.cursor }

// Queue returns the parsed moves of the current command stream.
func (c *Controller) Queue() []Move {
	return append([]Move(nil), c.queue...)
}

// Tokens returns the token sequence behind the current queue.
func (c *Controller) Tokens() []Token {
	return append([]Token(nil), c.tokens...)
}

// Active returns the pieces of the slice being animated.
func (c *Controller) Active() []int {
	return append([]int(nil), c.active...)
}

// Current returns the move in flight and how many degrees of it have been
// animated so far.
func (c *Controller) Current() (Move, float64, bool) {
	if c.status != Running || c.cursor >= len(c.queue) {
		return Move{}, 0, false
	}
	return c.queue[c.cursor], c.rotated, true
}

// Err returns the desync error that halted the controller, if any.
func (c *Controller) Err() error { return c.halted }

func (c *Controller) ready() bool {
	return c.mode == Idle && len(c.queue) == 0
}

// Solve asks the solver for a solution and queues it. It is a no-op when
// the controller is busy or the solver reports the cube solved.
func (c *Controller) Solve() (bool, error) {
	if c.halted != nil {
		return false, c.halted
	}
	if c.solver == nil {
		return false, ErrNoSolver
	}
	if !c.ready() || c.solver.IsSolved() {
		return false, nil
	}

	raw, err := c.solver.Solve()
	if err != nil {
		return false, fmt.Errorf("solve: %w", err)
	}
	for i, t := range raw {
		if !t.Valid() {
			return false, fmt.Errorf("solver output position %d: %w: %q", i, ErrInvalidToken, byte(t))
		}
	}

	tokens := Simplify(raw)
	c.log.Info("expected solution", "tokens", FormatTokens(tokens), "raw_len", len(raw))
	c.dispatch(Dispatch{Mode: Solving, Raw: raw, Tokens: tokens})
	return true, nil
}

// Shuffle queues a random sequence. It is only accepted on a solved cube.
func (c *Controller) Shuffle() (bool, error) {
	if c.halted != nil {
		return false, c.halted
	}
	if c.solver == nil {
		return false, ErrNoSolver
	}
	if !c.ready() || !c.solver.IsSolved() {
		return false, nil
	}

	n := c.cfg.shuffleMin + c.rng.IntN(c.cfg.shuffleMax-c.cfg.shuffleMin+1)
	mix := RandomShuffle(c.rng, n)
	c.log.Info("mixer movements", "tokens", FormatTokens(mix))
	c.dispatch(Dispatch{Mode: Shuffling, Raw: mix, Tokens: mix})
	return true, nil
}

// CustomMove queues a single turn of the face named by letter, reversed when
// upper is set. The case of letter itself is ignored.
func (c *Controller) CustomMove(letter byte, upper bool) (bool, error) {
	if c.halted != nil {
		return false, c.halted
	}
	face, ok := FaceFromLetter(letter)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrInvalidToken, letter)
	}
	if !c.ready() {
		return false, nil
	}

	seq := []Token{NewToken(face, upper)}
	c.dispatch(Dispatch{Mode: Customizing, Raw: seq, Tokens: seq})
	return true, nil
}

// dispatch queues d.Tokens and replays them against the solver.
func (c *Controller) dispatch(d Dispatch) {
	d.Moves = Parse(d.Tokens)
	if c.solver != nil {
		c.solver.ApplyMoves(d.Tokens)
		if s, ok := c.solver.(fmt.Stringer); ok {
			c.log.Debug("solver state", "cube", s.String())
		}
	}

	c.queue = d.Moves
	c.tokens = d.Tokens
	c.cursor = 0
	c.status = Paused
	c.active = nil
	c.rotated = 0
	c.mode = d.Mode

	c.log.Debug("dispatch", "mode", d.Mode, "tokens", FormatTokens(d.Tokens), "moves", len(d.Moves))
	if c.cfg.onDispatch != nil {
		c.cfg.onDispatch(d)
	}

	if len(c.queue) == 0 {
		c.finishQueue()
	}
}

// Tick advances the state machine by one frame that took dt. A desync halts
// the controller; the same error is returned by every later call.
func (c *Controller) Tick(dt time.Duration) error {
	if c.halted != nil {
		return c.halted
	}
	if c.mode == Idle {
		return nil
	}

	var err error
	switch {
	case c.cursor > len(c.queue):
		err = fmt.Errorf("%w: cursor %d past queue of %d", ErrDesync, c.cursor, len(c.queue))
	case c.cursor == len(c.queue):
		c.finishQueue()
	case c.status == Paused:
		err = c.beginMove()
	default:
		err = c.advance(dt)
	}

	if err != nil {
		c.halted = err
		c.log.Error("animation halted", "error", err, "mode", c.mode, "cursor", c.cursor)
	}
	return err
}

// beginMove snapshots the slice of the next move.
func (c *Controller) beginMove() error {
	m := c.queue[c.cursor]
	members := c.tracker.Members(m.Group)
	if len(members) != sliceSize {
		return fmt.Errorf("%w: move %d (%s) found %d pieces in slice", ErrDesync, c.cursor, m, len(members))
	}
	c.active = members
	c.status = Running
	c.rotated = 0
	return nil
}

// advance animates the move in flight and commits it once complete.
func (c *Controller) advance(dt time.Duration) error {
	m := c.queue[c.cursor]
	total := abs(m.Angle)

	step := abs(c.cfg.speed * dt.Seconds())
	delta := step
	if remaining := total - c.rotated; step >= remaining {
		delta = remaining
		c.rotated = total
	} else {
		c.rotated += step
	}
	if m.Angle < 0 {
		delta = -delta
	}
	c.tracker.RotateSlice(m.Group, delta)

	if c.rotated < total {
		return nil
	}
	if err := c.tracker.CommitSlice(m.Group, m.Angle); err != nil {
		return fmt.Errorf("move %d: %w", c.cursor, err)
	}
	c.cursor++
	c.active = nil
	c.status = Paused
	return nil
}

// finishQueue runs when every queued move has been animated. A finished
// solve may chain into a fix; everything else returns to idle.
func (c *Controller) finishQueue() {
	if c.mode == Solving {
		if wrong := c.tracker.Detect(); len(wrong) > 0 {
			if fix := Synthesize(wrong); len(fix) > 0 {
				for _, w := range wrong {
					c.log.Warn("center not oriented, fixing", "face", w.Face, "orientation", w.Orientation)
				}
				c.dispatch(Dispatch{Mode: Fixing, Raw: fix, Tokens: fix, Fixes: wrong})
				return
			}
		}
	}

	c.log.Info("queue complete", "mode", c.mode, "moves", len(c.queue))
	c.queue = nil
	c.tokens = nil
	c.cursor = 0
	c.status = Paused
	c.active = nil
	c.rotated = 0
	c.mode = Idle
}
