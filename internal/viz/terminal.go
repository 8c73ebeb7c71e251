package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal prints a single static frame of a plot as Braille text.
type Terminal struct {
	W             io.Writer
	Width, Height int
	Camera        *Camera
}

func NewTerminal(w io.Writer, width, height int) *Terminal {
	return &Terminal{W: w, Width: width, Height: height}
}

// Frame renders p to a string of Width x Height cells.
func (t *Terminal) Frame(p *Plot) string {
	cam := t.Camera
	if cam == nil {
		cam = NewCamera()
		cam.Fit(p)
	}
	c := NewCanvas(t.Width, t.Height)
	RenderPlot(c, p, cam)

	color := CurrentTheme.Text
	if len(p.Layers) > 0 {
		color = lipgloss.Color(HexColor(p.Layers[0].Color))
	}
	body := lipgloss.NewStyle().Foreground(color).Render(strings.TrimRight(c.String(), "\n"))
	return HeaderStyle.Render(p.Name) + "\n" + body + "\n" + Subtle.Render(fmt.Sprintf("%d points", p.Count())) + "\n"
}

func (t *Terminal) Display(p *Plot) error {
	_, err := io.WriteString(t.W, t.Frame(p))
	return err
}
