package frames

import (
	"github.com/san-kum/nbodyvis/internal/pcd"
)

// Tensor is a dense (steps, bodies, 3) array of positions.
type Tensor struct {
	Steps  int
	Bodies int
	Data   []float64
}

func (t *Tensor) Shape() (int, int, int) { return t.Steps, t.Bodies, 3 }

func (t *Tensor) offset(step, body int) int { return (step*t.Bodies + body) * 3 }

func (t *Tensor) At(step, body int) [3]float64 {
	o := t.offset(step, body)
	return [3]float64{t.Data[o], t.Data[o+1], t.Data[o+2]}
}

// Frame copies out the positions of every body at step.
func (t *Tensor) Frame(step int) pcd.Points {
	p := pcd.New(t.Bodies)
	o := t.offset(step, 0)
	copy(p.Data, t.Data[o:o+t.Bodies*3])
	return p
}

// Cloud copies out every position of every frame.
func (t *Tensor) Cloud() pcd.Points {
	return pcd.Points{Data: t.Data}.Clone()
}

// FromTable reshapes tbl into a tensor of shape
// (max(step)+1, max(body)+1, 3). Rows must already be in step-major,
// body-minor order and fill the grid exactly.
func FromTable(tbl *Table) (*Tensor, error) {
	if len(tbl.Records) == 0 {
		return nil, ErrEmpty
	}
	steps, bodies := tbl.MaxStep()+1, tbl.MaxBody()+1
	if len(tbl.Records) != steps*bodies {
		return nil, &ShapeError{Rows: len(tbl.Records), Steps: steps, Bodies: bodies}
	}

	t := &Tensor{Steps: steps, Bodies: bodies, Data: make([]float64, steps*bodies*3)}
	for i, r := range tbl.Records {
		wantStep, wantBody := i/bodies, i%bodies
		if r.Step != wantStep || r.Body != wantBody {
			return nil, &OrderError{Row: i, Line: r.Line, Step: r.Step, Body: r.Body, WantStep: wantStep, WantBody: wantBody}
		}
		t.Data[i*3], t.Data[i*3+1], t.Data[i*3+2] = r.X, r.Y, r.Z
	}
	return t, nil
}

// Load reads a CSV file and reshapes it into a tensor.
func Load(path string) (*Tensor, error) {
	tbl, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromTable(tbl)
}

// LoadSorted is Load with the rows sorted step-major, body-minor first.
func LoadSorted(path string) (*Tensor, error) {
	tbl, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromTable(Sorted(tbl))
}
