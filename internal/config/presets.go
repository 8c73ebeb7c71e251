package config

import "sort"

var Presets = map[string]func(*Config){
	"universe": func(c *Config) {},
	"zup": func(c *Config) {
		c.FlipAxes = true
	},
	"large": func(c *Config) {
		c.PointSize = 3
		c.Display.Width, c.Display.Height = 120, 48
	},
	"flat": func(c *Config) {
		c.Shader = "flat"
		c.GridVisible = true
	},
	"wide": func(c *Config) {
		c.Grid = [6]float64{-1.1, -1.1, -1.1, 1.1, 1.1, 1.1}
		c.GridVisible = true
	},
}

// GetPreset returns a fresh config with the named preset applied, or nil.
func GetPreset(preset string) *Config {
	apply, ok := Presets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
