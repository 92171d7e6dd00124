package csvrow

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

const bom = '\uFEFF'

// Option configures a Reader.
type Option func(*Reader)

// WithComma sets the field delimiter. Quote and line-break runes are ignored.
func WithComma(r rune) Option {
	return func(rd *Reader) {
		if r != 0 && r != '"' && r != '\n' && r != '\r' && r != bom {
			rd.comma = r
		}
	}
}

// Reader reads rows from CSV text one record at a time.
// It is not safe for concurrent use.
type Reader struct {
	br      *bufio.Reader
	comma   rune
	line    int
	started bool
}

// NewReader returns a Reader consuming r. The delimiter defaults to a comma.
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{
		br:    bufio.NewReader(r),
		comma: ',',
	}
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Line returns the physical line the reader has consumed up to.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next record. It returns io.EOF once the input is exhausted.
// Malformed input is reported as a *ParseError.
func (r *Reader) Read() (Row, error) {
	var (
		row      Row
		buf      strings.Builder
		quoted   bool // current field opened with a quote
		inQuotes bool // currently between the quotes
		touched  bool // current field consumed at least one rune
		consumed bool // record consumed at least one rune
	)
	start := r.line + 1

	flush := func() {
		switch {
		case quoted:
			row = append(row, Value(buf.String()))
		case buf.Len() == 0:
			row = append(row, Nil)
		default:
			row = append(row, Value(buf.String()))
		}
		buf.Reset()
		quoted, touched = false, false
	}
	finish := func() Row {
		r.line++
		if len(row) == 0 && !touched {
			return Row{}
		}
		flush()
		return row
	}

	for {
		c, _, err := r.br.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if inQuotes {
				r.line++
				return nil, &ParseError{Line: start, Err: ErrUnterminatedQuote}
			}
			if !consumed {
				return nil, io.EOF
			}
			return finish(), nil
		}

		if !r.started {
			r.started = true
			if c == bom {
				continue
			}
		}
		consumed = true

		if inQuotes {
			if c == '"' {
				next, _, perr := r.br.ReadRune()
				if perr == nil && next == '"' {
					buf.WriteRune('"')
					continue
				}
				if perr == nil {
					_ = r.br.UnreadRune()
				}
				inQuotes = false
				continue
			}
			if c == '\n' {
				r.line++
			}
			buf.WriteRune(c)
			continue
		}

		switch c {
		case r.comma:
			flush()
		case '\n':
			return finish(), nil
		case '\r':
			if next, _, perr := r.br.ReadRune(); perr == nil && next != '\n' {
				_ = r.br.UnreadRune()
			}
			return finish(), nil
		case '"':
			if touched {
				r.skipLine()
				return nil, &ParseError{Line: start, Err: ErrBareQuote}
			}
			quoted, inQuotes, touched = true, true, true
		default:
			if quoted {
				r.skipLine()
				return nil, &ParseError{Line: start, Err: ErrBareQuote}
			}
			touched = true
			buf.WriteRune(c)
		}
	}
}

// skipLine discards the rest of the current physical line so a caller that
// keeps reading after a parse error resumes on the next record.
func (r *Reader) skipLine() {
	r.line++
	for {
		c, _, err := r.br.ReadRune()
		if err != nil || c == '\n' {
			return
		}
	}
}
