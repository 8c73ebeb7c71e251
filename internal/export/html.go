package export

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/san-kum/nbodyvis/internal/viz"
)

// htmlPointPixels is the echarts symbol size of a point of size 1.
const htmlPointPixels = 4

// HTML writes a self-contained page with an interactive 3D scatter; the
// browser supplies rotate and zoom. AssetsHost, if set, replaces the CDN the
// page loads echarts from.
type HTML struct {
	W          io.Writer
	AssetsHost string
}

func NewHTML(w io.Writer) *HTML {
	return &HTML{W: w}
}

func (h *HTML) Display(p *viz.Plot) error {
	return h.chart(p).Render(h.W)
}

func (h *HTML) chart(p *viz.Plot) *charts.Scatter3D {
	g := p.Grid
	initOpts := opts.Initialization{PageTitle: p.Name, Theme: "dark", Width: "900px", Height: "900px"}
	if h.AssetsHost != "" {
		initOpts.AssetsHost = h.AssetsHost
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(initOpts),
		charts.WithTitleOpts(opts.Title{Title: p.Name}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "X", Show: opts.Bool(p.GridVisible), Min: g[0], Max: g[3]}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "Y", Show: opts.Bool(p.GridVisible), Min: g[1], Max: g[4]}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "Z", Show: opts.Bool(p.GridVisible), Min: g[2], Max: g[5]}),
		charts.WithGrid3DOpts(opts.Grid3D{Show: opts.Bool(p.GridVisible)}),
	)

	for i, l := range p.Layers {
		data := make([]opts.Chart3DData, 0, len(l.Positions))
		for _, pos := range l.Positions {
			data = append(data, opts.Chart3DData{Value: []interface{}{pos[0], pos[1], pos[2]}})
		}
		name := p.Name
		if i > 0 {
			name = p.Name + " " + string(rune('A'+i))
		}
		scatter.AddSeries(name, data,
			charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: l.Size * htmlPointPixels}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: viz.HexColor(l.Color)}),
		)
	}
	return scatter
}
