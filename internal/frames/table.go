package frames

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/nbodyvis/internal/pcd"
)

// Record is one body at one step. Line is the row's line in the source
// file, or zero for records built in memory.
type Record struct {
	Step    int
	Body    int
	Time    float64
	Mass    float64
	X, Y, Z float64
	Line    int
}

// Table holds records in file order.
type Table struct {
	Records []Record
	HasTime bool
	HasMass bool
}

type columns struct {
	step, body, time, mass, x, y, z int
}

func locateColumns(header []string) (columns, error) {
	cols := columns{-1, -1, -1, -1, -1, -1, -1}
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "step":
			cols.step = i
		case "body":
			cols.body = i
		case "time":
			cols.time = i
		case "m", "mass":
			cols.mass = i
		case "x":
			cols.x = i
		case "y":
			cols.y = i
		case "z":
			cols.z = i
		}
	}
	required := map[string]int{"step": cols.step, "body": cols.body, "x": cols.x, "y": cols.y, "z": cols.z}
	var missing []string
	for _, name := range []string{"step", "body", "x", "y", "z"} {
		if required[name] < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

// ReadTable parses a CSV stream whose header names at least step, body, x,
// y and z. Columns may appear in any order; unknown columns are ignored.
func ReadTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("frames: missing header: %w", ErrEmpty)
		}
		return nil, fmt.Errorf("frames: read header: %w", err)
	}
	cols, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	t := &Table{HasTime: cols.time >= 0, HasMass: cols.mass >= 0}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// csv.ParseError already names the line.
			return nil, fmt.Errorf("frames: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		rec, err := parseRecord(row, cols)
		if err != nil {
			return nil, fmt.Errorf("frames: line %d: %w", line, err)
		}
		rec.Line = line
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func parseRecord(row []string, cols columns) (Record, error) {
	var rec Record
	field := func(i int) (string, error) {
		if i >= len(row) {
			return "", fmt.Errorf("row has %d fields, need column %d", len(row), i+1)
		}
		return strings.TrimSpace(row[i]), nil
	}
	intAt := func(i int, dst *int) error {
		s, err := field(i)
		if err != nil {
			return err
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("%w: %d", ErrNegativeIndex, v)
		}
		*dst = v
		return nil
	}
	floatAt := func(i int, dst *float64) error {
		if i < 0 {
			return nil
		}
		s, err := field(i)
		if err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = v
		return nil
	}

	if err := intAt(cols.step, &rec.Step); err != nil {
		return rec, err
	}
	if err := intAt(cols.body, &rec.Body); err != nil {
		return rec, err
	}
	for _, f := range []struct {
		col int
		dst *float64
	}{
		{cols.time, &rec.Time}, {cols.mass, &rec.Mass},
		{cols.x, &rec.X}, {cols.y, &rec.Y}, {cols.z, &rec.Z},
	} {
		if err := floatAt(f.col, f.dst); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadTable(f)
}

// MaxStep returns the largest step index, or -1 for an empty table.
func (t *Table) MaxStep() int {
	m := -1
	for _, r := range t.Records {
		if r.Step > m {
			m = r.Step
		}
	}
	return m
}

// MaxBody returns the largest body index, or -1 for an empty table.
func (t *Table) MaxBody() int {
	m := -1
	for _, r := range t.Records {
		if r.Body > m {
			m = r.Body
		}
	}
	return m
}

// Sorted returns a copy of t ordered step-major, body-minor.
func Sorted(t *Table) *Table {
	out := &Table{Records: make([]Record, len(t.Records)), HasTime: t.HasTime, HasMass: t.HasMass}
	copy(out.Records, t.Records)
	sort.SliceStable(out.Records, func(i, j int) bool {
		a, b := out.Records[i], out.Records[j]
		if a.Step != b.Step {
			return a.Step < b.Step
		}
		return a.Body < b.Body
	})
	return out
}

// Select returns the positions of every row whose step equals step, in file
// order. A step with no rows gives an empty array.
func Select(t *Table, step int) pcd.Points {
	var p pcd.Points
	for _, r := range t.Records {
		if r.Step == step {
			p.Append(r.X, r.Y, r.Z)
		}
	}
	if p.Data == nil {
		p = pcd.New(0)
	}
	return p
}

// WriteTable writes t in the simulator's column layout. Time and mass are
// written only if the table carried them.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := []string{"step"}
	if t.HasTime {
		header = append(header, "time")
	}
	header = append(header, "body")
	if t.HasMass {
		header = append(header, "m")
	}
	header = append(header, "x", "y", "z")
	if err := cw.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, r := range t.Records {
		row := []string{strconv.Itoa(r.Step)}
		if t.HasTime {
			row = append(row, ff(r.Time))
		}
		row = append(row, strconv.Itoa(r.Body))
		if t.HasMass {
			row = append(row, ff(r.Mass))
		}
		row = append(row, ff(r.X), ff(r.Y), ff(r.Z))
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteTable(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
