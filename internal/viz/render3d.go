package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func FromMgl(v mgl32.Vec3) Vec3 { return Vec3{float64(v[0]), float64(v[1]), float64(v[2])} }

// Camera orbits the plot centre. Points are scaled by Zoom/Extent so the
// grid box maps to roughly [-1, 1] before perspective.
type Camera struct {
	RotX, RotY, RotZ float64
	Zoom             float64
	Distance         float64
	Extent           float64
	Center           Vec3
}

func NewCamera() *Camera {
	return &Camera{RotX: -0.4, RotY: 0.6, Zoom: 1.0, Distance: 6, Extent: 1}
}

// Fit centres the camera on the plot grid.
func (c *Camera) Fit(p *Plot) {
	c.Center = p.Center()
	if e := p.Extent(); e > 0 {
		c.Extent = e
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) RotatePoint(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// View returns p in normalised camera space: rotated about the centre and
// scaled so the grid spans about [-1, 1].
func (c *Camera) View(p Vec3) Vec3 {
	return c.RotatePoint(p.Sub(c.Center)).Scale(c.Zoom / c.Extent)
}

// ViewFor is View with the projection of shader applied: X and Y are
// scaled by the perspective divide for 3d and left as is for flat. Z stays
// the view depth. It reports false for points behind the camera.
func (c *Camera) ViewFor(shader string, p Vec3) (Vec3, bool) {
	rot := c.View(p)
	if shader == ShaderFlat {
		return rot, true
	}
	dist := c.Distance
	if rot.Z >= dist-0.1 {
		return rot, false
	}
	s := dist / (dist - rot.Z)
	return Vec3{rot.X * s, rot.Y * s, rot.Z}, true
}

// ProjectFor converts world coordinates to sub-pixel screen coordinates
// under shader. Returns x, y, depth, and visibility.
func (c *Camera) ProjectFor(shader string, p Vec3, sw, sh int) (int, int, float64, bool) {
	v, ok := c.ViewFor(shader, p)
	if !ok {
		return 0, 0, 0, false
	}
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	// keeps every corner of the grid box on screen at zoom 1
	pScale := minDim / 5
	sx := int(v.X*pScale) + sw/2
	sy := int(-v.Y*pScale) + sh/2
	return sx, sy, v.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

// Project is ProjectFor with perspective.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	return c.ProjectFor(ShaderPerspective, p, sw, sh)
}

// DepthShade is the brightness of a point at view depth under shader. The
// 3d shader dims far points; flat lights everything evenly.
func DepthShade(shader string, depth float64) float64 {
	if shader == ShaderFlat {
		return 1
	}
	return math.Max(0.35, math.Min(1, 0.65+0.35*depth/math.Sqrt(3)))
}

type Edge struct {
	Start, End Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe         { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e Vec3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) Clear()            { w.Edges = w.Edges[:0] }
func (w *Wireframe) Len() int          { return len(w.Edges) }

// BoxWireframe returns the 12 edges of the axis-aligned box
// (xmin, ymin, zmin, xmax, ymax, zmax).
func BoxWireframe(b [6]float64) *Wireframe {
	w := NewWireframe()
	lo, hi := Vec3{b[0], b[1], b[2]}, Vec3{b[3], b[4], b[5]}
	v := []Vec3{
		{lo.X, lo.Y, lo.Z}, {hi.X, lo.Y, lo.Z}, {hi.X, hi.Y, lo.Z}, {lo.X, hi.Y, lo.Z},
		{lo.X, lo.Y, hi.Z}, {hi.X, lo.Y, hi.Z}, {hi.X, hi.Y, hi.Z}, {lo.X, hi.Y, hi.Z},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

type projectedPoint struct {
	X, Y   int
	Depth  float64
	Radius int
}

// dotRadius maps a point size to a square of sub-pixels: size 1 is a single
// dot, each further unit adds one ring.
func dotRadius(size float64) int {
	r := int(math.Round(size)) - 1
	if r < 0 {
		return 0
	}
	return r
}

// RenderPlot draws every layer of the plot, back to front, plus the grid box
// if it is visible.
func RenderPlot(c *Canvas, p *Plot, cam *Camera) {
	if c == nil || p == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()

	if p.GridVisible {
		shader := p.Shader()
		for _, e := range BoxWireframe(p.Grid).Edges {
			x1, y1, _, v1 := cam.ProjectFor(shader, e.Start, sw, sh)
			x2, y2, _, v2 := cam.ProjectFor(shader, e.End, sw, sh)
			if v1 || v2 {
				c.DrawLine(x1, y1, x2, y2)
			}
		}
	}

	proj := make([]projectedPoint, 0, p.Count())
	for _, l := range p.Layers {
		r := dotRadius(l.Size)
		for _, pos := range l.Positions {
			x, y, d, ok := cam.ProjectFor(l.Shader, FromMgl(pos), sw, sh)
			if ok {
				proj = append(proj, projectedPoint{x, y, d, r})
			}
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].Depth < proj[j].Depth })
	for _, pt := range proj {
		c.Dot(pt.X, pt.Y, pt.Radius)
	}
}
