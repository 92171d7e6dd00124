package csvschema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
)

// Rule violations and setup failures. Every error returned by Validate and
// ValidateRows matches exactly one of these with errors.Is.
var (
	// ErrConfiguration is returned by New when the file reference is missing.
	ErrConfiguration = errors.New("invalid validator configuration")

	// ErrFileNotFound is returned when the file reference cannot be opened.
	ErrFileNotFound = errors.New("file not found")

	ErrDuplicateHeader    = errors.New("duplicate header")
	ErrBlankHeader        = errors.New("blank header")
	ErrMissingHeader      = errors.New("missing header")
	ErrBlankRow           = errors.New("blank row")
	ErrFieldCountMismatch = errors.New("field count mismatch")
	ErrIllegalValue       = errors.New("illegal value")
	ErrNullField          = errors.New("null field")
	ErrDuplicateValue     = errors.New("duplicate value")

	// ErrRead is returned when the row source fails mid-stream, for example
	// on malformed quoting.
	ErrRead = errors.New("failed to read row")
)

var codes = map[error]string{
	ErrConfiguration:      "configuration",
	ErrFileNotFound:       "file_not_found",
	ErrDuplicateHeader:    "duplicate_header",
	ErrBlankHeader:        "blank_header",
	ErrMissingHeader:      "missing_header",
	ErrBlankRow:           "blank_row",
	ErrFieldCountMismatch: "field_count_mismatch",
	ErrIllegalValue:       "illegal_value",
	ErrNullField:          "null_field",
	ErrDuplicateValue:     "duplicate_value",
	ErrRead:               "read_error",
}

// ValidationError carries the location of a violation. Only the fields that
// make sense for Kind are set: Row is 1-based and counts the header row.
type ValidationError struct {
	Kind    error
	File    string
	Row     int
	Header  string
	Value   csvrow.Field
	Values  []csvrow.Field
	Missing []string
	Err     error
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ErrConfiguration:
		return "a file reference is required"
	case ErrFileNotFound:
		return fmt.Sprintf("%s cannot be found", e.File)
	case ErrDuplicateHeader:
		return fmt.Sprintf("Duplicate headers exist: %s", inspect(e.Values))
	case ErrBlankHeader:
		return "There are illegal blank headers. If this is allowed, set AllowBlankHeaders"
	case ErrMissingHeader:
		return fmt.Sprintf("%s is missing headers: %s", e.File, inspectStrings(e.Missing))
	case ErrBlankRow:
		return fmt.Sprintf("Row %d in %s is blank", e.Row, e.File)
	case ErrFieldCountMismatch:
		return fmt.Sprintf("Row %d has a different number of fields than all the rows preceding it", e.Row)
	case ErrIllegalValue:
		return fmt.Sprintf("The '%s' column contains an illegal value: '%s' in row %d", e.Header, e.Value.Value, e.Row)
	case ErrNullField:
		return fmt.Sprintf("The '%s' column contains an illegal nil value in row %d", e.Header, e.Row)
	case ErrDuplicateValue:
		return fmt.Sprintf("The '%s' column contains illegal duplicate values: %s", e.Header, inspect(e.Values))
	case ErrRead:
		return fmt.Sprintf("Row %d in %s could not be read: %v", e.Row, e.File, e.Err)
	default:
		return fmt.Sprintf("%v", e.Kind)
	}
}

// Unwrap exposes both the rule sentinel and the underlying cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Code returns a stable snake_case identifier of the violated rule.
func (e *ValidationError) Code() string {
	if code, ok := codes[e.Kind]; ok {
		return code
	}
	return "unknown"
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// inspect renders fields as a bracketed list, nulls as nil: ["a", nil].
func inspect(fields []csvrow.Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		if f.Null {
			parts[i] = "nil"
			continue
		}
		parts[i] = strconv.Quote(f.Value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func inspectStrings(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Quote(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
