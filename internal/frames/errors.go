package frames

import (
	"errors"
	"fmt"
)

// Domain errors for loading simulation tables.
var (
	// ErrMissingColumn indicates the header lacks one of step, body, x, y, z.
	ErrMissingColumn = errors.New("frames: required column missing from header")

	// ErrEmpty indicates a table with a header but no rows.
	ErrEmpty = errors.New("frames: table has no rows")

	// ErrShapeMismatch indicates the row count does not fill the step x body grid.
	ErrShapeMismatch = errors.New("frames: row count does not match step x body grid")

	// ErrUnordered indicates rows that are not in step-major, body-minor order.
	ErrUnordered = errors.New("frames: rows not in step-major, body-minor order")

	// ErrNegativeIndex indicates a negative step or body value.
	ErrNegativeIndex = errors.New("frames: negative step or body index")
)

// ShapeError reports a table whose rows cannot be reshaped into a dense tensor.
type ShapeError struct {
	Rows   int
	Steps  int
	Bodies int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: %d rows, want %d steps x %d bodies = %d",
		ErrShapeMismatch, e.Rows, e.Steps, e.Bodies, e.Steps*e.Bodies)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}

// OrderError reports the first row found out of place. Row is its index in
// the table; Line is its line in the source file, zero if unknown.
type OrderError struct {
	Row                int
	Line               int
	Step, Body         int
	WantStep, WantBody int
}

func (e *OrderError) Error() string {
	where := fmt.Sprintf("row %d", e.Row)
	if e.Line > 0 {
		where = fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("%v: %s has step=%d body=%d, want step=%d body=%d",
		ErrUnordered, where, e.Step, e.Body, e.WantStep, e.WantBody)
}

func (e *OrderError) Unwrap() error {
	return ErrUnordered
}
