package export

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/san-kum/nbodyvis/internal/viz"
)

// SVG writes a plot as a projection: one circle per point, drawn back to
// front and shaded by the layer's shader.
type SVG struct {
	W             io.Writer
	Width, Height int
	Camera        *viz.Camera
}

func NewSVG(w io.Writer) *SVG {
	return &SVG{W: w, Width: 800, Height: 800}
}

func (s *SVG) Display(p *viz.Plot) error {
	_, err := io.WriteString(s.W, PlotToSVG(p, s.camera(p), s.Width, s.Height))
	return err
}

func (s *SVG) camera(p *viz.Plot) *viz.Camera {
	if s.Camera != nil {
		return s.Camera
	}
	cam := viz.NewCamera()
	cam.Fit(p)
	return cam
}

type svgDot struct {
	x, y, r float64
	depth   float64
	fill    string
}

// PlotToSVG renders p through cam onto a width x height SVG document.
func PlotToSVG(p *viz.Plot, cam *viz.Camera, width, height int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<title>%s</title>
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height, escape(p.Name)))

	if p.GridVisible {
		sb.WriteString(`<g stroke="#444466" stroke-width="1" fill="none">` + "\n")
		shader := p.Shader()
		for _, e := range viz.BoxWireframe(p.Grid).Edges {
			x1, y1, _, _ := cam.ProjectFor(shader, e.Start, width, height)
			x2, y2, _, _ := cam.ProjectFor(shader, e.End, width, height)
			sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d"/>`+"\n", x1, y1, x2, y2))
		}
		sb.WriteString("</g>\n")
	}

	dots := make([]svgDot, 0, p.Count())
	for _, l := range p.Layers {
		for _, pos := range l.Positions {
			x, y, d, ok := cam.ProjectFor(l.Shader, viz.FromMgl(pos), width, height)
			if !ok {
				continue
			}
			fill := viz.HexColor(viz.Shade(l.Color, viz.DepthShade(l.Shader, d)))
			dots = append(dots, svgDot{float64(x), float64(y), l.Size, d, fill})
		}
	}
	sort.Slice(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

	sb.WriteString("<g>\n")
	for _, d := range dots {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", d.x, d.y, d.r, d.fill))
	}
	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
