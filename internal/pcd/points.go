// Package pcd holds point arrays: N rows of 3D positions packed into one
// owned buffer.
package pcd

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrShape indicates a buffer that is not a whole number of (x, y, z) rows.
var ErrShape = errors.New("pcd: point array is not shape (N, 3)")

// Points is an (N, 3) array stored row-major in Data.
type Points struct {
	Data []float64
}

// New returns a zeroed array of n points.
func New(n int) Points {
	return Points{Data: make([]float64, n*3)}
}

// FromRows copies rows into a fresh array.
func FromRows(rows [][3]float64) Points {
	p := New(len(rows))
	for i, r := range rows {
		copy(p.Data[i*3:i*3+3], r[:])
	}
	return p
}

func (p Points) Len() int { return len(p.Data) / 3 }

func (p Points) At(i int) [3]float64 {
	return [3]float64{p.Data[i*3], p.Data[i*3+1], p.Data[i*3+2]}
}

func (p *Points) Append(x, y, z float64) {
	p.Data = append(p.Data, x, y, z)
}

// Rows returns a copy of the array as a slice of rows.
func (p Points) Rows() [][3]float64 {
	out := make([][3]float64, p.Len())
	for i := range out {
		out[i] = p.At(i)
	}
	return out
}

func (p Points) Validate() error {
	if len(p.Data)%3 != 0 {
		return fmt.Errorf("%w: %d values", ErrShape, len(p.Data))
	}
	return nil
}

// Clone returns a copy that shares no memory with p.
func (p Points) Clone() Points {
	c := Points{Data: make([]float64, len(p.Data))}
	copy(c.Data, p.Data)
	return c
}

// FlipAxes converts between z-up and y-up frames: z is negated and then the
// y and z columns are swapped, so (x, y, z) becomes (x, -z, y). The result is
// a new array; p is left untouched.
func (p Points) FlipAxes() Points {
	out := New(p.Len())
	for i := 0; i < p.Len(); i++ {
		x, y, z := p.Data[i*3], p.Data[i*3+1], -p.Data[i*3+2]
		out.Data[i*3], out.Data[i*3+1], out.Data[i*3+2] = x, z, y
	}
	return out
}

// Float32 is the single-precision copy handed to renderers.
func (p Points) Float32() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, p.Len())
	for i := range out {
		out[i] = mgl32.Vec3{float32(p.Data[i*3]), float32(p.Data[i*3+1]), float32(p.Data[i*3+2])}
	}
	return out
}

func (p Points) Vec(i int) r3.Vec {
	return r3.Vec{X: p.Data[i*3], Y: p.Data[i*3+1], Z: p.Data[i*3+2]}
}

// Bounds returns the axis-aligned box around all points. An empty array
// yields the zero box.
func (p Points) Bounds() r3.Box {
	if p.Len() == 0 {
		return r3.Box{}
	}
	lo := r3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)}
	hi := r3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)}
	for i := 0; i < p.Len(); i++ {
		v := p.Vec(i)
		lo = r3.Vec{X: math.Min(lo.X, v.X), Y: math.Min(lo.Y, v.Y), Z: math.Min(lo.Z, v.Z)}
		hi = r3.Vec{X: math.Max(hi.X, v.X), Y: math.Max(hi.Y, v.Y), Z: math.Max(hi.Z, v.Z)}
	}
	return r3.Box{Min: lo, Max: hi}
}

func (p Points) Centroid() r3.Vec {
	n := p.Len()
	if n == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for i := 0; i < n; i++ {
		sum = r3.Add(sum, p.Vec(i))
	}
	return r3.Scale(1/float64(n), sum)
}
