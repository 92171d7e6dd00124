package gate

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/dmitrymomot/csvschema/pkg/csvschema"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Code    string     `json:"code"`
	Message string     `json:"message"`
	Error   *Violation `json:"error,omitempty"`
}

// Violation locates a schema violation. Values holds offending values with
// nulls as JSON null, or the missing headers for missing_header.
type Violation struct {
	Kind   string    `json:"kind"`
	File   string    `json:"file,omitempty"`
	Row    int       `json:"row,omitempty"`
	Header string    `json:"header,omitempty"`
	Values []*string `json:"values,omitempty"`
}

// SchemaInfo describes a registered schema.
type SchemaInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListResponse is the body of GET /schemas.
type ListResponse struct {
	Data []SchemaInfo `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) error {
	return writeJSON(w, status, ErrorResponse{Code: code, Message: err.Error()})
}

func violationOf(verr *csvschema.ValidationError) *Violation {
	v := &Violation{
		Kind:   verr.Code(),
		File:   verr.File,
		Row:    verr.Row,
		Header: verr.Header,
	}
	switch {
	case len(verr.Missing) > 0:
		for _, h := range verr.Missing {
			v.Values = append(v.Values, &h)
		}
	case len(verr.Values) > 0:
		for _, f := range verr.Values {
			v.Values = append(v.Values, fieldPtr(f.Null, f.Value))
		}
	case verr.Kind == csvschema.ErrIllegalValue:
		v.Values = []*string{fieldPtr(verr.Value.Null, verr.Value.Value)}
	}
	return v
}

func fieldPtr(null bool, s string) *string {
	if null {
		return nil
	}
	return &s
}
