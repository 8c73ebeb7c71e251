// Package render turns point arrays and simulation frames into plots and
// hands them to a display.
package render

import (
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/san-kum/nbodyvis/internal/config"
	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/pcd"
	"github.com/san-kum/nbodyvis/internal/viz"
)

var (
	// ErrPointSize indicates a non-positive point size.
	ErrPointSize = errors.New("render: point size must be positive")

	// ErrShader indicates a shader no back-end knows.
	ErrShader = errors.New("render: unknown shader")
)

type Options struct {
	PointSize   float64
	FlipAxes    bool
	Name        string
	Color       uint32
	Shader      string
	Grid        [6]float64
	GridVisible bool
}

// DefaultOptions: size 1, no flip, "Universe", light gray, grid
// [-0.55, 0.55]^3 hidden.
func DefaultOptions() Options {
	return Options{
		PointSize: config.DefaultPointSize,
		Name:      config.DefaultName,
		Color:     config.DefaultColor,
		Shader:    config.DefaultShader,
		Grid:      config.DefaultGrid(),
	}
}

// FromConfig picks the render options out of a config.
func FromConfig(c *config.Config) Options {
	return Options{
		PointSize:   c.PointSize,
		FlipAxes:    c.FlipAxes,
		Name:        c.Name,
		Color:       c.Color,
		Shader:      c.Shader,
		Grid:        c.Grid,
		GridVisible: c.GridVisible,
	}
}

// Build constructs the plot for pts without displaying it. pts itself is
// never modified; flipping works on a copy.
func Build(pts pcd.Points, o Options) (*viz.Plot, error) {
	if o.PointSize <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrPointSize, o.PointSize)
	}
	if !slices.Contains(viz.Shaders, o.Shader) {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrShader, o.Shader, viz.Shaders)
	}
	if err := pts.Validate(); err != nil {
		return nil, err
	}
	if o.FlipAxes {
		pts = pts.FlipAxes()
	}
	plot := viz.NewPlot(o.Name, o.Grid, o.GridVisible)
	plot.Add(&viz.PointLayer{
		Positions: pts.Float32(),
		Size:      o.PointSize,
		Color:     o.Color,
		Shader:    o.Shader,
	})
	return plot, nil
}

// Points renders a point cloud on d and returns the plot it built.
func Points(d viz.Display, pts pcd.Points, o Options) (*viz.Plot, error) {
	plot, err := Build(pts, o)
	if err != nil {
		return nil, err
	}
	if err := d.Display(plot); err != nil {
		return nil, err
	}
	return plot, nil
}

// Frame renders the bodies of one step of a simulation CSV with the default
// options. A step with no rows renders an empty cloud.
func Frame(d viz.Display, path string, frame int) (*viz.Plot, error) {
	return FrameWith(d, path, frame, DefaultOptions())
}

func FrameWith(d viz.Display, path string, frame int, o Options) (*viz.Plot, error) {
	tbl, err := frames.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pts := frames.Select(tbl, frame)
	if pts.Len() == 0 {
		log.Printf("render: frame %d has no rows in %s", frame, path)
	}
	return Points(d, pts, o)
}

// Cloud renders every position of every step as one static cloud.
func Cloud(d viz.Display, path string, o Options) (*viz.Plot, error) {
	tbl, err := frames.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pts pcd.Points
	for _, r := range tbl.Records {
		pts.Append(r.X, r.Y, r.Z)
	}
	return Points(d, pts, o)
}
