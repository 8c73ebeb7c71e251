// Package stats summarises the spread of bodies frame by frame.
package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/nbodyvis/internal/frames"
	"github.com/san-kum/nbodyvis/internal/pcd"
)

type Summary struct {
	Count     int
	Centroid  r3.Vec
	RMSRadius float64
	MaxRadius float64
	Bounds    r3.Box
}

// Frame summarises one point array. Radii are measured from the centroid.
func Frame(p pcd.Points) Summary {
	n := p.Len()
	s := Summary{Count: n, Bounds: p.Bounds()}
	if n == 0 {
		return s
	}
	xs, ys, zs := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		xs[i], ys[i], zs[i] = p.Data[i*3], p.Data[i*3+1], p.Data[i*3+2]
	}
	s.Centroid = r3.Vec{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil), Z: stat.Mean(zs, nil)}

	sq := make([]float64, n)
	for i := 0; i < n; i++ {
		d := r3.Sub(p.Vec(i), s.Centroid)
		sq[i] = r3.Dot(d, d)
	}
	s.RMSRadius = math.Sqrt(stat.Mean(sq, nil))
	s.MaxRadius = math.Sqrt(floats.Max(sq))
	return s
}

// Series summarises every step of t in order.
func Series(t *frames.Tensor) []Summary {
	out := make([]Summary, t.Steps)
	for step := range out {
		out[step] = Frame(t.Frame(step))
	}
	return out
}

func RMSRadii(series []Summary) []float64 {
	out := make([]float64, len(series))
	for i, s := range series {
		out[i] = s.RMSRadius
	}
	return out
}

// Drift is the distance between the first and last centroid.
func Drift(series []Summary) float64 {
	if len(series) < 2 {
		return 0
	}
	return r3.Norm(r3.Sub(series[len(series)-1].Centroid, series[0].Centroid))
}
