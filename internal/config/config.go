// Package config loads cubeanim settings from YAML.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubeanim"
)

const (
	DefaultFrameRate    = 60
	DefaultObserverAddr = "127.0.0.1:8088"
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	FixRequired  FixConfig     `yaml:"fix_required"`
	Speed        float64       `yaml:"speed"`
	FrameRate    int           `yaml:"frame_rate"`
	Shuffle      ShuffleConfig `yaml:"shuffle"`
	Seed         uint64        `yaml:"seed"`
	DBPath       string        `yaml:"db_path"`
	ObserverAddr string        `yaml:"observer_addr"`
}

// FixConfig marks the faces whose center artwork is orientation sensitive.
type FixConfig struct {
	Front bool `yaml:"front"`
	Back  bool `yaml:"back"`
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
	Up    bool `yaml:"up"`
	Down  bool `yaml:"down"`
}

type ShuffleConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		FixRequired: FixConfig{Right: true},
		Speed:       cubeanim.DefaultSpeed,
		FrameRate:   DefaultFrameRate,
		Shuffle: ShuffleConfig{
			Min: cubeanim.DefaultShuffleMin,
			Max: cubeanim.DefaultShuffleMax,
		},
		ObserverAddr: DefaultObserverAddr,
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the controller cannot run with.
func (c *Config) Validate() error {
	if c.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %g", ErrInvalid, c.Speed)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("%w: frame_rate must be positive, got %d", ErrInvalid, c.FrameRate)
	}
	if c.Shuffle.Min < 1 || c.Shuffle.Max < c.Shuffle.Min {
		return fmt.Errorf("%w: shuffle range [%d,%d]", ErrInvalid, c.Shuffle.Min, c.Shuffle.Max)
	}
	return nil
}

// Flags converts the per-face settings into the piece model's flags.
func (f FixConfig) Flags() cubeanim.FixFlags {
	var flags cubeanim.FixFlags
	flags[cubeanim.GroupFront] = f.Front
	flags[cubeanim.GroupBack] = f.Back
	flags[cubeanim.GroupLeft] = f.Left
	flags[cubeanim.GroupRight] = f.Right
	flags[cubeanim.GroupUp] = f.Up
	flags[cubeanim.GroupDown] = f.Down
	return flags
}

// Options returns the controller options for this configuration. A zero
// seed leaves the shuffle source time based.
func (c *Config) Options() []cubeanim.Option {
	opts := []cubeanim.Option{
		cubeanim.WithFixFlags(c.FixRequired.Flags()),
		cubeanim.WithSpeed(c.Speed),
		cubeanim.WithShuffleLength(c.Shuffle.Min, c.Shuffle.Max),
	}
	if c.Seed != 0 {
		opts = append(opts, cubeanim.WithRand(rand.New(rand.NewPCG(c.Seed, c.Seed))))
	}
	return opts
}
