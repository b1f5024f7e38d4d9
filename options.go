package cubeanim

import (
	"io"
	"log/slog"
	"math/rand/v2"
)

// DefaultSpeed is the animation speed in degrees per second.
const DefaultSpeed = 450.0

// Default shuffle length range, inclusive.
const (
	DefaultShuffleMin = 20
	DefaultShuffleMax = 29
)

// Option configures Controller behavior.
type Option func(*config)

type config struct {
	speed      float64
	flags      FixFlags
	logger     *slog.Logger
	rng        *rand.Rand
	shuffleMin int
	shuffleMax int
	onDispatch func(Dispatch)
}

func defaultConfig() *config {
	return &config{
		speed:      DefaultSpeed,
		shuffleMin: DefaultShuffleMin,
		shuffleMax: DefaultShuffleMax,
	}
}

// WithSpeed sets the animation speed in degrees per second.
// Non-positive values are ignored.
func WithSpeed(degPerSec float64) Option {
	return func(c *config) {
		if degPerSec > 0 {
			c.speed = degPerSec
		}
	}
}

// WithFixFlags sets which face groups carry orientation-sensitive center
// artwork. The flags are read once when the cube is assembled.
func WithFixFlags(flags FixFlags) Option {
	return func(c *config) {
		c.flags = flags
	}
}

// WithFixRequired marks the given face groups as orientation sensitive.
func WithFixRequired(groups ...Group) Option {
	return func(c *config) {
		for _, g := range groups {
			if g >= 0 && g < groupCount {
				c.flags[g] = true
			}
		}
	}
}

// WithLogger sets the structured logger for dispatch and fixer diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRand sets the random source used for shuffles.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) {
		c.rng = rng
	}
}

// WithShuffleLength sets the inclusive range of shuffle lengths.
func WithShuffleLength(min, max int) Option {
	return func(c *config) {
		if min >= 1 && max >= min {
			c.shuffleMin = min
			c.shuffleMax = max
		}
	}
}

// WithDispatchHook registers a callback that fires each time a token
// sequence is queued for animation.
func WithDispatchHook(fn func(Dispatch)) Option {
	return func(c *config) {
		c.onDispatch = fn
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
