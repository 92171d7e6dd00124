package csvrow

import "io"

// Field is a single CSV cell. Null marks a cell that was left empty without
// quotes; it is distinct from a quoted empty string.
type Field struct {
	Value string
	Null  bool
}

// Nil is the null field.
var Nil = Field{Null: true}

// Value returns a non-null field holding s.
func Value(s string) Field {
	return Field{Value: s}
}

// IsBlank reports whether the field is null or the empty string.
func (f Field) IsBlank() bool {
	return f.Null || f.Value == ""
}

// Row is an ordered sequence of fields.
type Row []Field

// Strings builds a row of non-null fields.
func Strings(values ...string) Row {
	row := make(Row, len(values))
	for i, v := range values {
		row[i] = Value(v)
	}
	return row
}

// At returns the field at column i, or Nil when the row is shorter than that.
func (r Row) At(i int) Field {
	if i < 0 || i >= len(r) {
		return Nil
	}
	return r[i]
}

// IsBlank reports whether every field is blank. A row without fields is blank.
func (r Row) IsBlank() bool {
	for _, f := range r {
		if !f.IsBlank() {
			return false
		}
	}
	return true
}

// SliceReader serves rows from memory. It is single pass like Reader.
type SliceReader struct {
	rows []Row
	pos  int
}

// NewSliceReader returns a reader over rows.
func NewSliceReader(rows ...Row) *SliceReader {
	return &SliceReader{rows: rows}
}

// Read returns the next row or io.EOF once all rows were served.
func (s *SliceReader) Read() (Row, error) {
	if s.pos >= len(s.rows) {
		return nil, io.EOF
	}
	row := s.rows[s.pos]
	s.pos++
	return row, nil
}
