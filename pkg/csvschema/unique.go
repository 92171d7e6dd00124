package csvschema

import "github.com/dmitrymomot/csvschema/pkg/csvrow"

// accumulator buffers the values of unique columns until the stream ends.
// It belongs to a single run.
type accumulator struct {
	columns []int
	values  [][]csvrow.Field
}

func newAccumulator(columns []int) *accumulator {
	return &accumulator{
		columns: columns,
		values:  make([][]csvrow.Field, len(columns)),
	}
}

func (a *accumulator) add(row csvrow.Row) {
	for i, col := range a.columns {
		a.values[i] = append(a.values[i], row.At(col))
	}
}

// firstDuplicate scans columns in configuration order and reports the first
// one holding repeated values.
func (a *accumulator) firstDuplicate() (int, []csvrow.Field) {
	for i, col := range a.columns {
		if dups := duplicates(a.values[i]); len(dups) > 0 {
			return col, dups
		}
	}
	return 0, nil
}
