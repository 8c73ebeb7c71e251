package frames_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nbodyvis/internal/frames"
)

const simCSV = `step,time,body,m,x,y,z,vx,vy,vz
0,0.0000,0,1.00,0.1000,0.2000,0.3000,0,0,0
0,0.0000,1,1.00,-0.1000,-0.2000,-0.3000,0,0,0
1,0.0100,0,1.00,0.1100,0.2100,0.3100,0,0,0
1,0.0100,1,1.00,-0.1100,-0.2100,-0.3100,0,0,0
2,0.0200,0,1.00,0.1200,0.2200,0.3200,0,0,0
2,0.0200,1,1.00,-0.1200,-0.2200,-0.3200,0,0,0
`

func writeCSV(dir, body string) string {
	path := filepath.Join(dir, "sim.csv")
	Expect(os.WriteFile(path, []byte(body), 0644)).To(Succeed())
	return path
}

var _ = Describe("ReadTable", func() {
	It("reads required and optional columns", func() {
		tbl, err := frames.ReadTable(strings.NewReader(simCSV))
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Records).To(HaveLen(6))
		Expect(tbl.HasTime).To(BeTrue())
		Expect(tbl.HasMass).To(BeTrue())
		Expect(tbl.Records[3]).To(Equal(frames.Record{Step: 1, Body: 1, Time: 0.01, Mass: 1, X: -0.11, Y: -0.21, Z: -0.31, Line: 5}))
	})

	It("accepts columns in any order", func() {
		tbl, err := frames.ReadTable(strings.NewReader("x,z,body,y,step\n1,3,0,2,0\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.HasTime).To(BeFalse())
		Expect(tbl.Records).To(ConsistOf(frames.Record{Step: 0, Body: 0, X: 1, Y: 2, Z: 3, Line: 2}))
	})

	It("reports missing columns", func() {
		_, err := frames.ReadTable(strings.NewReader("step,body,x,y\n0,0,1,2\n"))
		Expect(err).To(MatchError(frames.ErrMissingColumn))
		Expect(err.Error()).To(ContainSubstring("z"))
	})

	It("reports the line of a malformed number", func() {
		_, err := frames.ReadTable(strings.NewReader("step,body,x,y,z\n0,0,1,2,3\n0,1,a,2,3\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 3"))
	})

	It("counts blank lines when reporting a bad value", func() {
		_, err := frames.ReadTable(strings.NewReader("step,body,x,y,z\n0,0,1,2,3\n\n\n0,1,a,2,3\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("line 5"))
	})

	It("keeps the source line of every record", func() {
		tbl, err := frames.ReadTable(strings.NewReader("step,body,x,y,z\n\n0,0,1,2,3\n\n0,1,4,5,6\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Records).To(HaveLen(2))
		Expect(tbl.Records[0].Line).To(Equal(3))
		Expect(tbl.Records[1].Line).To(Equal(5))
	})

	It("ignores a byte order mark before the header", func() {
		tbl, err := frames.ReadTable(strings.NewReader("\ufeffstep,body,x,y,z\n0,0,1,2,3\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(tbl.Records).To(HaveLen(1))
		Expect(tbl.Records[0].Step).To(Equal(0))
	})

	It("rejects negative indices", func() {
		_, err := frames.ReadTable(strings.NewReader("step,body,x,y,z\n-1,0,1,2,3\n"))
		Expect(err).To(MatchError(frames.ErrNegativeIndex))
	})

	It("fails on an empty stream", func() {
		_, err := frames.ReadTable(strings.NewReader(""))
		Expect(err).To(MatchError(frames.ErrEmpty))
	})
})

var _ = Describe("Load", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("reshapes a complete grid to (steps, bodies, 3)", func() {
		t, err := frames.Load(writeCSV(dir, simCSV))
		Expect(err).NotTo(HaveOccurred())

		steps, bodies, axes := t.Shape()
		Expect([]int{steps, bodies, axes}).To(Equal([]int{3, 2, 3}))
		Expect(t.At(0, 0)).To(Equal([3]float64{0.1, 0.2, 0.3}))
		Expect(t.At(2, 1)).To(Equal([3]float64{-0.12, -0.22, -0.32}))
		Expect(t.Frame(1).Rows()).To(Equal([][3]float64{{0.11, 0.21, 0.31}, {-0.11, -0.21, -0.31}}))
		Expect(t.Cloud().Len()).To(Equal(6))
	})

	It("fails with a shape error when a row is missing", func() {
		lines := strings.Split(strings.TrimSpace(simCSV), "\n")
		short := strings.Join(lines[:len(lines)-1], "\n") + "\n"

		_, err := frames.Load(writeCSV(dir, short))
		Expect(err).To(MatchError(frames.ErrShapeMismatch))

		var shapeErr *frames.ShapeError
		Expect(errors.As(err, &shapeErr)).To(BeTrue())
		Expect(shapeErr.Rows).To(Equal(5))
		Expect(shapeErr.Steps).To(Equal(3))
		Expect(shapeErr.Bodies).To(Equal(2))
	})

	It("fails fast on rows out of order", func() {
		unordered := "step,body,x,y,z\n0,1,1,1,1\n0,0,0,0,0\n"
		_, err := frames.Load(writeCSV(dir, unordered))
		Expect(err).To(MatchError(frames.ErrUnordered))
		Expect(err.Error()).To(ContainSubstring("line 2"))
	})

	It("catches a duplicate row that keeps the count right", func() {
		dup := "step,body,x,y,z\n0,0,0,0,0\n0,0,1,1,1\n1,0,2,2,2\n1,1,3,3,3\n"
		_, err := frames.Load(writeCSV(dir, dup))
		Expect(err).To(MatchError(frames.ErrUnordered))
	})

	It("points an order error at the file line, past blank lines", func() {
		unordered := "step,body,x,y,z\n0,0,0,0,0\n\n\n1,0,1,1,1\n0,1,2,2,2\n1,1,3,3,3\n"
		_, err := frames.Load(writeCSV(dir, unordered))

		var orderErr *frames.OrderError
		Expect(errors.As(err, &orderErr)).To(BeTrue())
		Expect(orderErr.Row).To(Equal(1))
		Expect(orderErr.Line).To(Equal(5))
		Expect(err.Error()).To(ContainSubstring("line 5"))
	})

	It("reports the original line of a duplicate after sorting", func() {
		dup := "step,body,x,y,z\n1,1,3,3,3\n0,0,0,0,0\n1,0,2,2,2\n0,0,9,9,9\n"
		_, err := frames.LoadSorted(writeCSV(dir, dup))

		var orderErr *frames.OrderError
		Expect(errors.As(err, &orderErr)).To(BeTrue())
		Expect(orderErr.Row).To(Equal(1))
		Expect(orderErr.Line).To(Equal(5))
	})

	It("names the row index when the table has no source lines", func() {
		tbl := &frames.Table{Records: []frames.Record{{Step: 0, Body: 1}, {Step: 0, Body: 0}}}
		_, err := frames.FromTable(tbl)
		Expect(err).To(MatchError(frames.ErrUnordered))
		Expect(err.Error()).To(ContainSubstring("row 0"))
	})

	It("sorts before reshaping when asked", func() {
		unordered := "step,body,x,y,z\n1,0,2,2,2\n0,1,1,1,1\n0,0,0,0,0\n1,1,3,3,3\n"
		t, err := frames.LoadSorted(writeCSV(dir, unordered))
		Expect(err).NotTo(HaveOccurred())
		Expect(t.At(0, 1)).To(Equal([3]float64{1, 1, 1}))
		Expect(t.At(1, 0)).To(Equal([3]float64{2, 2, 2}))
	})

	It("rejects a header-only file", func() {
		_, err := frames.Load(writeCSV(dir, "step,body,x,y,z\n"))
		Expect(err).To(MatchError(frames.ErrEmpty))
	})

	It("surfaces a missing file", func() {
		_, err := frames.Load(filepath.Join(dir, "nope.csv"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})
})

var _ = Describe("Select", func() {
	var tbl *frames.Table

	BeforeEach(func() {
		var err error
		tbl, err = frames.ReadTable(strings.NewReader(simCSV))
		Expect(err).NotTo(HaveOccurred())
	})

	It("keeps exactly the rows of the requested step", func() {
		p := frames.Select(tbl, 1)
		Expect(p.Rows()).To(Equal([][3]float64{{0.11, 0.21, 0.31}, {-0.11, -0.21, -0.31}}))
	})

	It("returns an empty array for an unknown step", func() {
		p := frames.Select(tbl, 42)
		Expect(p.Len()).To(BeZero())
		Expect(p.Validate()).To(Succeed())
	})
})

var _ = Describe("WriteTable", func() {
	It("round-trips through ReadTable", func() {
		tbl, err := frames.ReadTable(strings.NewReader(simCSV))
		Expect(err).NotTo(HaveOccurred())

		var buf bytes.Buffer
		Expect(frames.WriteTable(&buf, tbl)).To(Succeed())
		Expect(strings.SplitN(buf.String(), "\n", 2)[0]).To(Equal("step,time,body,m,x,y,z"))

		back, err := frames.ReadTable(&buf)
		Expect(err).NotTo(HaveOccurred())
		Expect(back).To(Equal(tbl))
	})

	It("omits optional columns the table lacks", func() {
		tbl := &frames.Table{Records: []frames.Record{{Step: 0, Body: 0, X: 1, Y: 2, Z: 3}}}
		var buf bytes.Buffer
		Expect(frames.WriteTable(&buf, tbl)).To(Succeed())
		Expect(buf.String()).To(Equal("step,body,x,y,z\n0,0,1,2,3\n"))
	})
})
