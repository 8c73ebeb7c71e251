package export

import (
	"image/color"
	"io"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/nbodyvis/internal/viz"
)

// viewRange bounds the normalised camera space; the grid corners sit at
// most sqrt(3) from the centre.
const viewRange = 1.8

// PNG writes a raster of the camera projection using gonum/plot.
type PNG struct {
	W      io.Writer
	Size   vg.Length
	Camera *viz.Camera
}

func NewPNG(w io.Writer) *PNG {
	return &PNG{W: w, Size: 8 * vg.Inch}
}

func RGBA(c uint32) color.RGBA {
	return color.RGBA{R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c), A: 0xff}
}

func (g *PNG) Display(p *viz.Plot) error {
	pl, err := g.build(p)
	if err != nil {
		return err
	}
	wt, err := pl.WriterTo(g.Size, g.Size, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(g.W)
	return err
}

func (g *PNG) build(p *viz.Plot) (*plot.Plot, error) {
	cam := g.Camera
	if cam == nil {
		cam = viz.NewCamera()
		cam.Fit(p)
	}

	pl := plot.New()
	pl.Title.Text = p.Name
	pl.BackgroundColor = color.RGBA{R: 0x0a, G: 0x0a, B: 0x0a, A: 0xff}
	pl.Title.TextStyle.Color = RGBA(0xd0d0d0)
	pl.X.Min, pl.X.Max = -viewRange, viewRange
	pl.Y.Min, pl.Y.Max = -viewRange, viewRange
	pl.HideAxes()

	if p.GridVisible {
		shader := p.Shader()
		for _, e := range viz.BoxWireframe(p.Grid).Edges {
			a, _ := cam.ViewFor(shader, e.Start)
			b, _ := cam.ViewFor(shader, e.End)
			line, err := plotter.NewLine(plotter.XYs{{X: a.X, Y: a.Y}, {X: b.X, Y: b.Y}})
			if err != nil {
				return nil, err
			}
			line.Color = RGBA(0x444466)
			line.Width = vg.Points(0.5)
			pl.Add(line)
		}
	}

	for _, l := range p.Layers {
		if len(l.Positions) == 0 {
			continue
		}
		views := make([]viz.Vec3, 0, len(l.Positions))
		for _, pos := range l.Positions {
			if v, ok := cam.ViewFor(l.Shader, viz.FromMgl(pos)); ok {
				views = append(views, v)
			}
		}
		if len(views) == 0 {
			continue
		}
		sort.Slice(views, func(i, j int) bool { return views[i].Z < views[j].Z })
		xys := make(plotter.XYs, len(views))
		for i, v := range views {
			xys[i] = plotter.XY{X: v.X, Y: v.Y}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = RGBA(l.Color)
		s.GlyphStyle.Radius = vg.Points(l.Size)
		if l.Shader != viz.ShaderFlat {
			base, shader := s.GlyphStyle, l.Shader
			s.GlyphStyleFunc = func(i int) draw.GlyphStyle {
				g := base
				g.Color = RGBA(viz.Shade(l.Color, viz.DepthShade(shader, views[i].Z)))
				return g
			}
		}
		pl.Add(s)
	}
	return pl, nil
}
