package config

import "sort"

func newPreset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

// Presets are named organism scenarios. Each is a full Config built over
// the defaults, so loading one and running it needs no further setup.
var Presets = map[string]*Config{
	"reference": newPreset(func(c *Config) {}),

	// Same ultimate size as the reference, reached far more slowly:
	// low conductance starves growth of reserve throughput.
	"slow-grower": newPreset(func(c *Config) {
		c.Params.V = 0.008
		c.Grid.TEnd = 12000
	}),

	// High turnover organism: quadrupled conductance and doubled
	// maintenance give a small adult reached in a few hundred days.
	"fast-grower": newPreset(func(c *Config) {
		c.Params.V = 0.08
		c.Params.PM = 36
		c.Grid.TEnd = 1000
	}),

	// All rates depressed as in a colder habitat; the assimilation to
	// maintenance ratio, and so the ultimate size, stays put.
	"cold-water": newPreset(func(c *Config) {
		c.Params.PAm = 50
		c.Params.V = 0.01
		c.Params.PM = 9
		c.Grid.TEnd = 10000
	}),

	// Ten years under an annually oscillating food supply, sampled
	// daily so the ripple survives into the output.
	"seasonal": newPreset(func(c *Config) {
		c.Forcing = ForcingConfig{Kind: "seasonal", Mean: 0.8, Amplitude: 0.1, Period: 365}
		c.Grid.TEnd = 3650
		c.Grid.Points = 3651
	}),
}

// GetPreset returns a private copy of the named preset, or nil if there
// is no such preset. Callers may mutate the copy freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
