package csvschema

import "github.com/dmitrymomot/csvschema/pkg/csvrow"

// Schema is a Config bound to a concrete header row. Requirements are keyed
// by column position instead of header name. A Schema is immutable once
// compiled.
type Schema struct {
	headers   csvrow.Row
	columns   map[string]int
	cantBeNil []int
	restrict  []restriction
	unique    []int
	// unknown lists requirement headers absent from the header row.
	unknown []string
}

type restriction struct {
	column  int
	allowed map[string]struct{}
}

// Compile binds cfg to headers. When a header name repeats, requirements
// attach to its last occurrence.
func Compile(cfg Config, headers csvrow.Row) *Schema {
	s := &Schema{
		headers: headers,
		columns: make(map[string]int, len(headers)),
	}

	for col, h := range headers {
		if h.Null {
			continue
		}
		s.columns[h.Value] = col
	}

	seen := make(map[string]bool)
	for _, fr := range cfg.FieldRequirements {
		col, ok := s.columns[fr.Header]
		if !ok {
			if !seen[fr.Header] {
				s.unknown = append(s.unknown, fr.Header)
				seen[fr.Header] = true
			}
			continue
		}

		if fr.CantBeNil {
			s.cantBeNil = append(s.cantBeNil, col)
		}
		if fr.RestrictValues != nil {
			allowed := make(map[string]struct{}, len(fr.RestrictValues))
			for _, v := range fr.RestrictValues {
				allowed[v] = struct{}{}
			}
			s.restrict = append(s.restrict, restriction{column: col, allowed: allowed})
		}
		if fr.Unique {
			s.unique = append(s.unique, col)
		}
	}

	return s
}

// Header returns the header name of column col, or "" if there is none.
func (s *Schema) Header(col int) string {
	return s.headers.At(col).Value
}

// Column returns the position of header.
func (s *Schema) Column(header string) (int, bool) {
	col, ok := s.columns[header]
	return col, ok
}

// Width is the number of fields in the header row.
func (s *Schema) Width() int {
	return len(s.headers)
}

// UniqueColumns returns the columns that must hold distinct values.
func (s *Schema) UniqueColumns() []int {
	return append([]int(nil), s.unique...)
}

// Unknown returns requirement headers that are missing from the header row.
func (s *Schema) Unknown() []string {
	return append([]string(nil), s.unknown...)
}
