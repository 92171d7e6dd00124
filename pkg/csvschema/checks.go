package csvschema

import (
	"slices"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
)

// run holds the state of one pass over a row stream.
type run struct {
	cfg    Config
	file   string
	schema *Schema
	row    int
	width  int
	uniq   *accumulator
}

func newRun(cfg Config, file string) *run {
	return &run{cfg: cfg, file: file, row: 1, width: -1}
}

// step applies every enabled check to the current row and advances the
// row counter.
func (r *run) step(row csvrow.Row) error {
	if r.row == 1 {
		if err := r.header(row); err != nil {
			return err
		}
	} else if err := r.data(row); err != nil {
		return err
	}

	if !r.cfg.AllowDifferentFieldCounts {
		if err := r.checkFieldCount(row); err != nil {
			return err
		}
	}

	r.row++
	return nil
}

func (r *run) header(row csvrow.Row) error {
	r.schema = Compile(r.cfg, row)
	r.uniq = newAccumulator(r.schema.unique)

	if !r.cfg.AllowDuplicateHeaders {
		if err := r.checkDuplicateHeaders(row); err != nil {
			return err
		}
	}
	if !r.cfg.AllowBlankHeaders {
		if err := r.checkBlankHeaders(row); err != nil {
			return err
		}
	}
	if r.cfg.RequiredHeaders != nil {
		if err := r.checkRequiredHeaders(row); err != nil {
			return err
		}
	}
	if len(r.schema.unknown) > 0 {
		return &ValidationError{Kind: ErrMissingHeader, File: r.file, Row: r.row, Missing: r.schema.Unknown()}
	}
	return nil
}

func (r *run) data(row csvrow.Row) error {
	if !r.cfg.AllowBlankRows {
		if err := r.checkBlankRow(row); err != nil {
			return err
		}
	}
	if len(r.schema.restrict) > 0 {
		if err := r.checkRestrictedValues(row); err != nil {
			return err
		}
	}
	if len(r.schema.cantBeNil) > 0 {
		if err := r.checkCantBeNil(row); err != nil {
			return err
		}
	}
	if len(r.schema.unique) > 0 {
		r.uniq.add(row)
	}
	return nil
}

func (r *run) checkDuplicateHeaders(row csvrow.Row) error {
	headers := row
	if t := r.cfg.HeadersTransform; t != nil {
		headers = make(csvrow.Row, len(row))
		for i, h := range row {
			if h.Null {
				headers[i] = h
				continue
			}
			headers[i] = csvrow.Value(t(h.Value))
		}
	}

	if dups := duplicates(headers); len(dups) > 0 {
		return &ValidationError{Kind: ErrDuplicateHeader, File: r.file, Row: r.row, Values: dups}
	}
	return nil
}

func (r *run) checkBlankHeaders(row csvrow.Row) error {
	if slices.ContainsFunc(row, csvrow.Field.IsBlank) {
		return &ValidationError{Kind: ErrBlankHeader, File: r.file, Row: r.row}
	}
	return nil
}

func (r *run) checkRequiredHeaders(row csvrow.Row) error {
	present := make(map[string]bool, len(row))
	for _, h := range row {
		if !h.Null {
			present[h.Value] = true
		}
	}

	var missing []string
	for _, h := range r.cfg.RequiredHeaders {
		if !present[h] && !slices.Contains(missing, h) {
			missing = append(missing, h)
		}
	}

	if len(missing) > 0 {
		return &ValidationError{Kind: ErrMissingHeader, File: r.file, Row: r.row, Missing: missing}
	}
	return nil
}

func (r *run) checkBlankRow(row csvrow.Row) error {
	if row.IsBlank() {
		return &ValidationError{Kind: ErrBlankRow, File: r.file, Row: r.row}
	}
	return nil
}

func (r *run) checkRestrictedValues(row csvrow.Row) error {
	for _, rs := range r.schema.restrict {
		v := row.At(rs.column)
		if _, ok := rs.allowed[v.Value]; ok && !v.Null {
			continue
		}
		return &ValidationError{
			Kind:   ErrIllegalValue,
			File:   r.file,
			Row:    r.row,
			Header: r.schema.Header(rs.column),
			Value:  v,
		}
	}
	return nil
}

func (r *run) checkCantBeNil(row csvrow.Row) error {
	for _, col := range r.schema.cantBeNil {
		if row.At(col).Null {
			return &ValidationError{Kind: ErrNullField, File: r.file, Row: r.row, Header: r.schema.Header(col)}
		}
	}
	return nil
}

// checkFieldCount compares against the width of the first row seen.
func (r *run) checkFieldCount(row csvrow.Row) error {
	if r.width < 0 {
		r.width = len(row)
	}
	if len(row) != r.width {
		return &ValidationError{Kind: ErrFieldCountMismatch, File: r.file, Row: r.row}
	}
	return nil
}

// finish runs the checks that need the whole stream.
func (r *run) finish() error {
	if r.schema == nil {
		return nil
	}
	col, dups := r.uniq.firstDuplicate()
	if len(dups) > 0 {
		return &ValidationError{Kind: ErrDuplicateValue, File: r.file, Header: r.schema.Header(col), Values: dups}
	}
	return nil
}

// duplicates returns values occurring more than once, in order of first
// occurrence.
func duplicates(values []csvrow.Field) []csvrow.Field {
	counts := make(map[csvrow.Field]int, len(values))
	var order []csvrow.Field
	for _, v := range values {
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}

	var dups []csvrow.Field
	for _, v := range order {
		if counts[v] > 1 {
			dups = append(dups, v)
		}
	}
	return dups
}
