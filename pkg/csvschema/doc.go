// Package csvschema checks that a CSV file matches a declared structural
// schema before it is handed to downstream ingestion.
//
// A schema is a Config: whether duplicate or blank headers, blank rows and
// uneven field counts are tolerated, which headers must be present, and
// per-column requirements (unique values, no nulls, a closed set of allowed
// values). Validation is a single pass over the rows and stops at the first
// violation.
//
// # Architecture
//
// Configuration is expressed in header names, but rows only carry positions.
// Validation therefore happens in two phases:
//
//   - When row 1 arrives it is compiled together with the Config into an
//     immutable Schema that maps every requirement to a column position.
//   - Data rows are then checked against the Schema. Values of unique
//     columns are buffered and compared once the stream is exhausted.
//
// Within a data row the order is fixed: blank row, restricted values (in
// configuration order), non-null, then uniqueness buffering. The field count
// of every row, header included, is compared with the header's. Rows are
// numbered from 1 and the header row is row 1.
//
// The file itself is reached through a source.Opener and parsed with
// csvrow.Reader. ValidateRows skips both and accepts any RowReader, which is
// how the HTTP gate validates request bodies and how tests feed rows from
// memory.
//
// # Usage
//
//	v, err := csvschema.New("customers.csv", csvschema.Config{
//		HeadersTransform: csvschema.SymbolTransform,
//		RequiredHeaders:  []string{"id", "email"},
//		FieldRequirements: []csvschema.FieldRequirement{
//			{Header: "id", Unique: true, CantBeNil: true},
//			{Header: "status", RestrictValues: []string{"active", "closed"}},
//		},
//	})
//	if err != nil {
//		return err
//	}
//	if err := v.Validate(ctx); err != nil {
//		if errors.Is(err, csvschema.ErrNullField) {
//			// ...
//		}
//		return err
//	}
//
// # Error Handling
//
// Every failure is a *ValidationError whose Unwrap yields one of the package
// sentinels (ErrDuplicateHeader, ErrBlankRow, ...) and, for I/O failures, the
// underlying cause. Row, Header and Values locate the offending cell; Error
// renders a message such as
//
//	The 'status' column contains an illegal value: 'pending' in row 7
package csvschema
