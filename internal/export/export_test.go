package export_test

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodyvis/internal/export"
	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/viz"
)

func samplePlot(gridVisible bool, shader string) *viz.Plot {
	p := viz.NewPlot("Universe", [6]float64{-0.55, -0.55, -0.55, 0.55, 0.55, 0.55}, gridVisible)
	p.Add(&viz.PointLayer{
		Positions: []mgl32.Vec3{{0, 0, 0}, {0.1, 0.2, 0.3}, {-0.4, 0.1, -0.2}},
		Size:      1,
		Color:     0xd0d0d0,
		Shader:    shader,
	})
	return p
}

var _ = Describe("SVG", func() {
	render := func(p *viz.Plot) string {
		var buf bytes.Buffer
		Expect(export.NewSVG(&buf).Display(p)).To(Succeed())
		return buf.String()
	}

	It("draws one circle per point and no grid by default", func() {
		out := render(samplePlot(false, viz.ShaderPerspective))
		Expect(out).To(HavePrefix("<?xml"))
		Expect(strings.Count(out, "<circle")).To(Equal(3))
		Expect(out).To(ContainSubstring("<title>Universe</title>"))
		Expect(out).NotTo(ContainSubstring("<line"))
	})

	It("draws the twelve grid edges when visible", func() {
		Expect(strings.Count(render(samplePlot(true, viz.ShaderPerspective)), "<line")).To(Equal(12))
	})

	It("dims points by depth under the 3d shader", func() {
		out := render(samplePlot(false, viz.ShaderPerspective))
		Expect(out).NotTo(ContainSubstring(`fill="#d0d0d0"`))
	})

	It("fills every point evenly under the flat shader", func() {
		out := render(samplePlot(false, viz.ShaderFlat))
		Expect(strings.Count(out, `fill="#d0d0d0"`)).To(Equal(3))
	})

	It("escapes the plot name", func() {
		p := samplePlot(false, viz.ShaderPerspective)
		p.Name = "a<b&c"
		Expect(export.PlotToSVG(p, viz.NewCamera(), 100, 100)).To(ContainSubstring("<title>a&lt;b&amp;c</title>"))
	})
})

var _ = Describe("HTML", func() {
	It("renders a page with the plot name and colour", func() {
		var buf bytes.Buffer
		Expect(export.NewHTML(&buf).Display(samplePlot(false, viz.ShaderPerspective))).To(Succeed())

		out := buf.String()
		Expect(out).To(ContainSubstring("<html"))
		Expect(out).To(ContainSubstring("Universe"))
		Expect(out).To(ContainSubstring("#d0d0d0"))
	})

	It("scales the point size to a symbol size", func() {
		p := samplePlot(false, viz.ShaderPerspective)
		p.Layers[0].Size = 2

		var buf bytes.Buffer
		Expect(export.NewHTML(&buf).Display(p)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring(`"symbolSize":8`))
	})

	It("loads scripts from the assets host when set", func() {
		var buf bytes.Buffer
		h := &export.HTML{W: &buf, AssetsHost: "http://localhost:8080/assets/"}
		Expect(h.Display(samplePlot(false, viz.ShaderPerspective))).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("http://localhost:8080/assets/"))
	})
})

var _ = Describe("PNG", func() {
	for _, shader := range viz.Shaders {
		It("writes a PNG under the "+shader+" shader", func() {
			var buf bytes.Buffer
			Expect(export.NewPNG(&buf).Display(samplePlot(true, shader))).To(Succeed())
			Expect(buf.Bytes()).To(HavePrefix("\x89PNG"))
		})
	}

	It("writes an empty plot", func() {
		var buf bytes.Buffer
		p := viz.NewPlot("empty", [6]float64{-1, -1, -1, 1, 1, 1}, false)
		p.Add(&viz.PointLayer{Size: 1, Color: 0xd0d0d0})
		Expect(export.NewPNG(&buf).Display(p)).To(Succeed())
		Expect(buf.Len()).NotTo(BeZero())
	})

	It("splits a colour into channels", func() {
		c := export.RGBA(0x102030)
		Expect([]uint8{c.R, c.G, c.B, c.A}).To(Equal([]uint8{0x10, 0x20, 0x30, 0xff}))
	})
})

var _ = Describe("JSON", func() {
	It("writes the plot as data", func() {
		var buf bytes.Buffer
		Expect(export.NewJSON(&buf).Display(samplePlot(false, viz.ShaderPerspective))).To(Succeed())

		var got export.PlotData
		Expect(json.Unmarshal(buf.Bytes(), &got)).To(Succeed())
		Expect(got.Name).To(Equal("Universe"))
		Expect(got.Layers).To(HaveLen(1))
		Expect(got.Layers[0].Color).To(Equal("#d0d0d0"))
		Expect(got.Layers[0].Shader).To(Equal("3d"))
		Expect(got.Layers[0].Positions).To(HaveLen(3))
		Expect(got.Layers[0].Positions[1][2]).To(BeNumerically("~", 0.3, 1e-6))
	})

	It("writes every frame of a tensor", func() {
		tensor := &frames.Tensor{Steps: 2, Bodies: 1, Data: []float64{1, 2, 3, 4, 5, 6}}
		var buf bytes.Buffer
		Expect(export.ExportTensor(&buf, tensor)).To(Succeed())

		var got export.TensorData
		Expect(json.Unmarshal(buf.Bytes(), &got)).To(Succeed())
		Expect(got.Steps).To(Equal(2))
		Expect(got.Bodies).To(Equal(1))
		Expect(got.Frames[1][0]).To(Equal([3]float64{4, 5, 6}))
	})
})

var _ = Describe("ForFormat", func() {
	DescribeTable("picks the display for a format",
		func(format string, want interface{}) {
			d, err := export.ForFormat(format, &bytes.Buffer{}, 40, 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(BeAssignableToTypeOf(want))
		},
		Entry("term", "term", &viz.Terminal{}),
		Entry("default", "", &viz.Terminal{}),
		Entry("html, any case", "HTML", &export.HTML{}),
		Entry("svg", "svg", &export.SVG{}),
		Entry("png", "png", &export.PNG{}),
		Entry("json", "json", &export.JSON{}),
	)

	It("rejects an unknown format", func() {
		_, err := export.ForFormat("gif", &bytes.Buffer{}, 40, 20)
		Expect(err).To(HaveOccurred())
	})

	DescribeTable("guesses a format from the file extension",
		func(path, want string) {
			Expect(export.FormatFromPath(path, "term")).To(Equal(want))
		},
		Entry("html", "out/frame.HTML", "html"),
		Entry("svg", "frame.svg", "svg"),
		Entry("png", "frame.png", "png"),
		Entry("json", "frame.json", "json"),
		Entry("fallback", "frame.txt", "term"),
	)
})
