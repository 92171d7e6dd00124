package csvschema

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownTransform is returned by TransformByName for unregistered names.
var ErrUnknownTransform = errors.New("unknown headers transform")

// Transform normalizes a header before duplicate detection.
type Transform func(string) string

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordRun    = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
)

// LowerTransform lower-cases a header using Unicode case mapping.
func LowerTransform(h string) string {
	return cases.Lower(language.Und).String(h)
}

// TrimTransform strips surrounding whitespace.
func TrimTransform(h string) string {
	return strings.TrimSpace(h)
}

// SymbolTransform turns a header into an identifier: lower-cased, whitespace
// runs become underscores and other punctuation is dropped.
//
//	SymbolTransform("Header 1")   // "header_1"
//	SymbolTransform("E-mail (2)") // "email_2"
func SymbolTransform(h string) string {
	h = LowerTransform(h)
	h = whitespaceRun.ReplaceAllString(h, "_")
	return nonWordRun.ReplaceAllString(h, "")
}

// Chain applies transforms left to right. Nil entries are skipped.
func Chain(transforms ...Transform) Transform {
	return func(h string) string {
		for _, t := range transforms {
			if t != nil {
				h = t(h)
			}
		}
		return h
	}
}

var transforms = map[string]Transform{
	"lower":  LowerTransform,
	"trim":   TrimTransform,
	"symbol": SymbolTransform,
}

// TransformByName resolves "lower", "trim" or "symbol". "" and "none"
// resolve to a nil Transform.
func TransformByName(name string) (Transform, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "none" {
		return nil, nil
	}
	if t, ok := transforms[name]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
}
