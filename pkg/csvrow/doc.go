// Package csvrow turns CSV text into a lazy sequence of rows whose cells are
// nullable strings.
//
// The reader follows RFC 4180 quoting and keeps the distinction that plain
// encoding/csv drops: an unquoted empty cell is null, while a quoted empty
// cell ("") is the empty string. An empty line yields a row with no fields.
//
// # Usage
//
//	r := csvrow.NewReader(f, csvrow.WithComma(';'))
//	for {
//		row, err := r.Read()
//		if errors.Is(err, io.EOF) {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		if row.At(0).Null {
//			// first cell was left empty
//		}
//	}
//
// SliceReader serves rows that are already in memory, which is handy in
// tests and for callers that produce rows themselves.
package csvrow
