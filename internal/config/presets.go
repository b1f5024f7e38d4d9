package config

// Presets are named configurations selectable with --config.
var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"slow": {
		FixRequired: FixConfig{Right: true}, Speed: 180, FrameRate: 60,
		Shuffle: ShuffleConfig{Min: 20, Max: 29}, ObserverAddr: DefaultObserverAddr,
	},
	"artwork": {
		FixRequired: FixConfig{Front: true, Back: true, Left: true, Right: true, Up: true, Down: true},
		Speed:       450, FrameRate: 60,
		Shuffle:      ShuffleConfig{Min: 20, Max: 29},
		ObserverAddr: DefaultObserverAddr,
	},
	"demo": {
		FixRequired: FixConfig{Right: true}, Speed: 900, FrameRate: 30,
		Shuffle: ShuffleConfig{Min: 8, Max: 12}, Seed: 42, ObserverAddr: DefaultObserverAddr,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
