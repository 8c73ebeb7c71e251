package config

import (
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/nbodyvis/internal/viz"
)

const (
	DefaultData      = "./results/barnes-hut.csv"
	DefaultName      = "Universe"
	DefaultPointSize = 1.0
	DefaultColor     = 0xd0d0d0
	DefaultShader    = "3d"
	DefaultGridHalf  = 0.55
	DefaultTheme     = "minimal"
	DefaultWidth     = 80
	DefaultHeight    = 32
	DefaultFormat    = "term"
	DefaultFPS       = 10
)

type Config struct {
	Data        string     `yaml:"data"`
	Name        string     `yaml:"name"`
	PointSize   float64    `yaml:"point_size"`
	FlipAxes    bool       `yaml:"flip_axes"`
	Color       uint32     `yaml:"color"`
	Shader      string     `yaml:"shader"`
	Grid        [6]float64 `yaml:"grid,flow"`
	GridVisible bool       `yaml:"grid_visible"`
	Sort        bool       `yaml:"sort"`
	Display     Display    `yaml:"display"`
}

type Display struct {
	Format     string `yaml:"format"`
	Theme      string `yaml:"theme"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	AssetsHost string `yaml:"assets_host,omitempty"`
}

// DefaultGrid is the cube [-0.55, 0.55]^3 as (xmin, ymin, zmin, xmax, ymax, zmax).
func DefaultGrid() [6]float64 {
	h := DefaultGridHalf
	return [6]float64{-h, -h, -h, h, h, h}
}

func DefaultConfig() *Config {
	return &Config{
		Data:      DefaultData,
		Name:      DefaultName,
		PointSize: DefaultPointSize,
		Color:     DefaultColor,
		Shader:    DefaultShader,
		Grid:      DefaultGrid(),
		Display: Display{
			Format: DefaultFormat,
			Theme:  DefaultTheme,
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base, so keys the file leaves out keep
// base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// Validate checks the fields a renderer cannot work around.
func (c *Config) Validate() error {
	if c.PointSize <= 0 {
		return fmt.Errorf("config: point_size must be positive, got %g", c.PointSize)
	}
	for i := 0; i < 3; i++ {
		if c.Grid[i] >= c.Grid[i+3] {
			return fmt.Errorf("config: grid axis %d has min %g >= max %g", i, c.Grid[i], c.Grid[i+3])
		}
	}
	if !slices.Contains(viz.Shaders, c.Shader) {
		return fmt.Errorf("config: unknown shader %q (available: %v)", c.Shader, viz.Shaders)
	}
	if !slices.Contains(viz.ThemeNames(), c.Display.Theme) {
		return fmt.Errorf("config: unknown theme %q (available: %v)", c.Display.Theme, viz.ThemeNames())
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("config: display size must be positive, got %dx%d", c.Display.Width, c.Display.Height)
	}
	return nil
}
