package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/viz"
)

type LayerData struct {
	Size      float64      `json:"point_size"`
	Color     string       `json:"color"`
	Shader    string       `json:"shader"`
	Positions [][3]float32 `json:"positions"`
}

type PlotData struct {
	Name        string      `json:"name"`
	Grid        [6]float64  `json:"grid"`
	GridVisible bool        `json:"grid_visible"`
	Layers      []LayerData `json:"layers"`
}

// JSON writes the plot as data, for hosting in another viewer.
type JSON struct {
	W io.Writer
}

func NewJSON(w io.Writer) *JSON {
	return &JSON{W: w}
}

func (j *JSON) Display(p *viz.Plot) error {
	data := PlotData{Name: p.Name, Grid: p.Grid, GridVisible: p.GridVisible, Layers: make([]LayerData, len(p.Layers))}
	for i, l := range p.Layers {
		pos := make([][3]float32, len(l.Positions))
		for k, v := range l.Positions {
			pos[k] = [3]float32(v)
		}
		data.Layers[i] = LayerData{Size: l.Size, Color: viz.HexColor(l.Color), Shader: l.Shader, Positions: pos}
	}
	encoder := json.NewEncoder(j.W)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

type TensorData struct {
	Steps  int            `json:"steps"`
	Bodies int            `json:"bodies"`
	Frames [][][3]float64 `json:"frames"`
}

// ExportTensor writes every frame of t as nested [step][body][axis] arrays.
func ExportTensor(w io.Writer, t *frames.Tensor) error {
	data := TensorData{Steps: t.Steps, Bodies: t.Bodies, Frames: make([][][3]float64, t.Steps)}
	for step := range data.Frames {
		data.Frames[step] = t.Frame(step).Rows()
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
