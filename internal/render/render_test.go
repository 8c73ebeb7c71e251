package render_test

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodyvis/internal/pcd"
	"github.com/san-kum/nbodyvis/internal/render"
	"github.com/san-kum/nbodyvis/internal/viz"
)

const threeSteps = `step,time,body,m,x,y,z
0,0.00,0,1.0,0.1,0.2,0.3
0,0.00,1,1.0,0.4,0.5,0.6
1,0.01,0,1.0,-0.1,-0.2,-0.3
1,0.01,1,1.0,-0.4,-0.5,-0.6
2,0.02,0,1.0,0.01,0.02,0.03
2,0.02,1,1.0,0.04,0.05,0.06
`

func writeCSV(body string) string {
	path := filepath.Join(GinkgoT().TempDir(), "sim.csv")
	Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
	return path
}

// recorder returns a display that keeps every plot it is shown.
func recorder(shown *[]*viz.Plot, err error) viz.Display {
	return viz.DisplayFunc(func(p *viz.Plot) error {
		*shown = append(*shown, p)
		return err
	})
}

func positions(p *viz.Plot) []mgl32.Vec3 {
	return p.Layers[0].Positions
}

var _ = Describe("Points", func() {
	var shown []*viz.Plot

	BeforeEach(func() {
		shown = nil
	})

	It("applies the default options", func() {
		pts := pcd.FromRows([][3]float64{{0.1, 0.2, 0.3}})

		plot, err := render.Points(recorder(&shown, nil), pts, render.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(shown).To(HaveLen(1))
		Expect(shown[0]).To(BeIdenticalTo(plot))

		Expect(plot.Name).To(Equal("Universe"))
		Expect(plot.Grid).To(Equal([6]float64{-0.55, -0.55, -0.55, 0.55, 0.55, 0.55}))
		Expect(plot.GridVisible).To(BeFalse())
		Expect(plot.Layers).To(HaveLen(1))

		l := plot.Layers[0]
		Expect(l.Color).To(Equal(uint32(0xd0d0d0)))
		Expect(l.Shader).To(Equal("3d"))
		Expect(l.Size).To(Equal(1.0))
		Expect(l.Positions).To(Equal([]mgl32.Vec3{{0.1, 0.2, 0.3}}))
	})

	It("flips a copy and leaves the caller's array alone", func() {
		pts := pcd.FromRows([][3]float64{{1, 2, 3}})
		o := render.DefaultOptions()
		o.FlipAxes = true

		plot, err := render.Points(recorder(&shown, nil), pts, o)
		Expect(err).NotTo(HaveOccurred())
		Expect(positions(plot)).To(Equal([]mgl32.Vec3{{1, -3, 2}}))
		Expect(pts.At(0)).To(Equal([3]float64{1, 2, 3}))
	})

	It("carries the flat shader through", func() {
		o := render.DefaultOptions()
		o.Shader = viz.ShaderFlat
		plot, err := render.Points(recorder(&shown, nil), pcd.New(1), o)
		Expect(err).NotTo(HaveOccurred())
		Expect(plot.Shader()).To(Equal(viz.ShaderFlat))
	})

	It("rejects a non-positive point size", func() {
		o := render.DefaultOptions()
		o.PointSize = 0
		_, err := render.Points(recorder(&shown, nil), pcd.New(1), o)
		Expect(err).To(MatchError(render.ErrPointSize))
		Expect(shown).To(BeEmpty())
	})

	It("rejects an unknown shader", func() {
		o := render.DefaultOptions()
		o.Shader = "toon"
		_, err := render.Points(recorder(&shown, nil), pcd.New(1), o)
		Expect(err).To(MatchError(render.ErrShader))
	})

	It("rejects a ragged buffer", func() {
		_, err := render.Points(recorder(&shown, nil), pcd.Points{Data: []float64{1, 2}}, render.DefaultOptions())
		Expect(err).To(MatchError(pcd.ErrShape))
	})

	It("returns the display's error", func() {
		boom := errors.New("boom")
		_, err := render.Points(recorder(&shown, boom), pcd.New(1), render.DefaultOptions())
		Expect(err).To(MatchError(boom))
	})
})

var _ = Describe("Frame", func() {
	var shown []*viz.Plot

	BeforeEach(func() {
		shown = nil
	})

	It("selects the rows of one step", func() {
		plot, err := render.Frame(recorder(&shown, nil), writeCSV(threeSteps), 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(positions(plot)).To(Equal([]mgl32.Vec3{{-0.1, -0.2, -0.3}, {-0.4, -0.5, -0.6}}))
	})

	It("renders an unknown step as an empty cloud", func() {
		plot, err := render.Frame(recorder(&shown, nil), writeCSV(threeSteps), 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(shown).To(HaveLen(1))
		Expect(positions(plot)).To(BeEmpty())
	})

	It("keeps single-frame values at float32 precision", func() {
		csv := "step,body,x,y,z\n0,0,0.125,-0.5,0.25\n0,1,0.3,0.1,-0.7\n0,2,1.5,2.5,-3.5\n"
		plot, err := render.Frame(recorder(&shown, nil), writeCSV(csv), 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(positions(plot)).To(Equal([]mgl32.Vec3{
			{float32(0.125), float32(-0.5), float32(0.25)},
			{float32(0.3), float32(0.1), float32(-0.7)},
			{float32(1.5), float32(2.5), float32(-3.5)},
		}))
	})

	It("surfaces a missing file", func() {
		_, err := render.Frame(recorder(&shown, nil), filepath.Join(GinkgoT().TempDir(), "none.csv"), 0)
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})

var _ = Describe("Cloud", func() {
	It("plots every position of every step", func() {
		var shown []*viz.Plot
		plot, err := render.Cloud(recorder(&shown, nil), writeCSV(threeSteps), render.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(positions(plot)).To(HaveLen(6))
	})
})
