package viz

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Shaders for point layers. The 3d shader projects with perspective and
// dims points by depth; flat projects orthographically with uniform fill.
const (
	ShaderPerspective = "3d"
	ShaderFlat        = "flat"
)

var Shaders = []string{ShaderPerspective, ShaderFlat}

// PointLayer is one batch of points drawn with a single style.
type PointLayer struct {
	Positions []mgl32.Vec3
	Size      float64
	Color     uint32
	Shader    string
}

// Plot is a 3D scene: a bounding grid plus point layers. Grid is
// (xmin, ymin, zmin, xmax, ymax, zmax).
type Plot struct {
	Name        string
	Grid        [6]float64
	GridVisible bool
	Layers      []*PointLayer
}

func NewPlot(name string, grid [6]float64, gridVisible bool) *Plot {
	return &Plot{Name: name, Grid: grid, GridVisible: gridVisible}
}

// Add appends a layer and returns the plot for chaining.
func (p *Plot) Add(l *PointLayer) *Plot {
	p.Layers = append(p.Layers, l)
	return p
}

// Count returns the number of points across all layers.
func (p *Plot) Count() int {
	n := 0
	for _, l := range p.Layers {
		n += len(l.Positions)
	}
	return n
}

// Shader is the shader of the first layer; the grid box is drawn with it.
func (p *Plot) Shader() string {
	if len(p.Layers) == 0 || p.Layers[0].Shader == "" {
		return ShaderPerspective
	}
	return p.Layers[0].Shader
}

func (p *Plot) Center() Vec3 {
	g := p.Grid
	return Vec3{(g[0] + g[3]) / 2, (g[1] + g[4]) / 2, (g[2] + g[5]) / 2}
}

// Extent is the largest half-width of the grid over the three axes.
func (p *Plot) Extent() float64 {
	g := p.Grid
	return math.Max((g[3]-g[0])/2, math.Max((g[4]-g[1])/2, (g[5]-g[2])/2))
}

// Display shows a plot somewhere: a terminal, a file, a browser page.
type Display interface {
	Display(*Plot) error
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(*Plot) error

func (f DisplayFunc) Display(p *Plot) error { return f(p) }

// Shade scales the channels of a 0xRRGGBB colour by f in [0, 1].
func Shade(c uint32, f float64) uint32 {
	f = math.Max(0, math.Min(1, f))
	ch := func(shift uint) uint32 { return uint32(math.Round(float64(c>>shift&0xff)*f)) << shift }
	return ch(16) | ch(8) | ch(0)
}

// HexColor formats a 0xRRGGBB colour as "#rrggbb".
func HexColor(c uint32) string {
	return fmt.Sprintf("#%06x", c&0xffffff)
}
