// Package tui is the interactive terminal viewer for simulation frames.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/render"
	"github.com/san-kum/nbodyvis/internal/stats"
	"github.com/san-kum/nbodyvis/internal/viz"
)

type TickMsg time.Time

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// Model steps through the frames of a tensor with a slider, and lets the
// user orbit and zoom the camera.
type Model struct {
	tensor        *frames.Tensor
	opts          render.Options
	series        []stats.Summary
	radii         []float64
	frame         int
	playing       bool
	fps           int
	width, height int
	camera        *viz.Camera
	canvas        *viz.Canvas
	showHelp      bool
}

func NewModel(t *frames.Tensor, o render.Options, width, height, fps int) Model {
	if fps <= 0 {
		fps = 10
	}
	cam := viz.NewCamera()
	cam.Fit(viz.NewPlot(o.Name, o.Grid, o.GridVisible))
	series := stats.Series(t)
	return Model{
		tensor: t,
		opts:   o,
		series: series,
		radii:  stats.RMSRadii(series),
		fps:    fps,
		width:  width,
		height: height,
		camera: cam,
		canvas: viz.NewCanvas(width, height),
	}
}

func (m Model) Frame() int              { return m.frame }
func (m Model) Playing() bool           { return m.playing }
func (m Model) Options() render.Options { return m.opts }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "space":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}
		case "right", "]", "l":
			m.seek(1)
		case "left", "[", "h":
			m.seek(-1)
		case "pgdown":
			m.seek(10)
		case "pgup":
			m.seek(-10)
		case "home":
			m.frame = 0
		case "end":
			m.frame = m.tensor.Steps - 1
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "f":
			m.opts.FlipAxes = !m.opts.FlipAxes
		case "s":
			m.opts.Shader = nextShader(m.opts.Shader)
		case "g":
			m.opts.GridVisible = !m.opts.GridVisible
		case "t":
			viz.NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.playing {
			return m, nil
		}
		m.frame = (m.frame + 1) % m.tensor.Steps
		return m, m.tick()
	}
	return m, nil
}

func nextShader(cur string) string {
	for i, sh := range viz.Shaders {
		if sh == cur {
			return viz.Shaders[(i+1)%len(viz.Shaders)]
		}
	}
	return viz.Shaders[0]
}

// seek moves the slider, clamped to the first and last frame.
func (m *Model) seek(d int) {
	m.frame += d
	if m.frame < 0 {
		m.frame = 0
	}
	if m.frame >= m.tensor.Steps {
		m.frame = m.tensor.Steps - 1
	}
}

func (m Model) View() string {
	if m.showHelp {
		return helpText
	}
	plot, err := render.Build(m.tensor.Frame(m.frame), m.opts)
	if err != nil {
		return fmt.Sprintf("error: %v\n", err)
	}
	m.canvas.Clear()
	viz.RenderPlot(m.canvas, plot, m.camera)
	canvasView := canvasStyle.Foreground(lipgloss.Color(viz.HexColor(m.opts.Color))).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(strings.ToUpper(m.opts.Name)) + "\n")
	if m.playing {
		s.WriteString(viz.StatusRunning.Render("PLAYING") + "\n\n")
	} else {
		s.WriteString(viz.StatusPaused.Render("PAUSED") + "\n\n")
	}
	s.WriteString(viz.MetricLabel.Render("Frame") + viz.MetricValue.Render(fmt.Sprintf("%d / %d", m.frame, m.tensor.Steps-1)) + "\n")
	s.WriteString(viz.Slider(m.frame, m.tensor.Steps, 30) + "\n")
	s.WriteString(viz.Separator(30) + "\n")

	sum := m.series[m.frame]
	s.WriteString(viz.MetricLabel.Render("Bodies") + viz.MetricValue.Render(fmt.Sprintf("%d", sum.Count)) + "\n")
	c := sum.Centroid
	s.WriteString(viz.MetricLabel.Render("Centroid") + viz.MetricValue.Render(fmt.Sprintf("(%.3f, %.3f, %.3f)", c.X, c.Y, c.Z)) + "\n")
	s.WriteString(viz.MetricLabel.Render("RMS r") + viz.MetricValue.Render(fmt.Sprintf("%.4f", sum.RMSRadius)) + "\n")
	s.WriteString(viz.MetricLabel.Render("Flip") + viz.MetricValue.Render(fmt.Sprintf("%v", m.opts.FlipAxes)) + "\n")
	s.WriteString(viz.MetricLabel.Render("Shader") + viz.MetricValue.Render(m.opts.Shader) + "\n")
	s.WriteString(viz.MetricLabel.Render("Zoom") + viz.MetricValue.Render(fmt.Sprintf("%.2fx", m.camera.Zoom)) + "\n")

	if len(m.radii) > 1 {
		chart := asciigraph.Plot(m.radii, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("RMS radius"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(viz.KeyHint.Render("←/→:Frame SP:Play X/Y/Z:Rotate\n+/-:Zoom F:Flip G:Grid S:Shader\nT:Theme ?:Help Q:Quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, viz.Panel.Width(36).Render(s.String()))
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  ← → [ ]  - Previous / next frame    ║
║  PgUp/Dn  - Jump 10 frames           ║
║  Home/End - First / last frame       ║
║  Space    - Play / pause             ║
║  x y z    - Rotate (shift reverses)  ║
║  + -      - Zoom                     ║
║  F        - Toggle axis flip         ║
║  G        - Toggle grid box          ║
║  S        - Cycle shaders            ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run opens the viewer full screen and blocks until the user quits.
func Run(t *frames.Tensor, o render.Options, width, height, fps int) error {
	if t.Steps == 0 {
		return frames.ErrEmpty
	}
	_, err := tea.NewProgram(NewModel(t, o, width, height, fps), tea.WithAltScreen()).Run()
	return err
}
