// Package frames loads N-body simulation tables from CSV.
//
// A table has one row per body per step. The header must name the columns
// step, body, x, y and z; time and m are read when present, matching the
// layout the simulator writes:
//
//	step,time,body,m,x,y,z,vx,vy,vz
//
// [Load] reshapes a table into a [Tensor] indexed by (step, body, axis).
// Rows must be in step-major, body-minor order and cover every (step, body)
// pair exactly once; anything else fails with a [ShapeError] or an
// [OrderError] rather than producing a misaligned tensor. [LoadSorted] sorts
// the rows first.
//
// # Example
//
//	t, err := frames.Load("./results/barnes-hut.csv")
//	if err != nil {
//		return err
//	}
//	first := t.Frame(0)
package frames
