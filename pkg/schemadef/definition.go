package schemadef

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/csvschema/pkg/csvrow"
	"github.com/dmitrymomot/csvschema/pkg/csvschema"
)

// Definition is a named schema loaded from YAML.
type Definition struct {
	Name        string
	Description string
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune
	Config    csvschema.Config
}

// document mirrors the YAML layout. Fields whose order or shape matters are
// kept as nodes and decoded by hand.
type document struct {
	Name                      string    `yaml:"name"`
	Description               string    `yaml:"description"`
	Delimiter                 string    `yaml:"delimiter"`
	AllowDuplicateHeaders     bool      `yaml:"allow_duplicate_headers"`
	HeadersTransform          yaml.Node `yaml:"headers_transform"`
	AllowBlankHeaders         bool      `yaml:"allow_blank_headers"`
	RequiredHeaders           []string  `yaml:"required_headers"`
	AllowBlankRows            bool      `yaml:"allow_blank_rows"`
	AllowDifferentFieldCounts bool      `yaml:"allow_different_field_counts"`
	FieldRequirements         yaml.Node `yaml:"field_requirements"`
}

type requirement struct {
	Unique         bool      `yaml:"unique"`
	CantBeNil      bool      `yaml:"cant_be_nil"`
	RestrictValues *[]string `yaml:"restrict_values"`
}

// Parse decodes a single YAML schema definition. Unknown keys are rejected.
func Parse(data []byte) (*Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDefinition)
		}
		return nil, errors.Join(ErrInvalidDefinition, err)
	}

	def := &Definition{
		Name:        strings.TrimSpace(doc.Name),
		Description: doc.Description,
		Config: csvschema.Config{
			AllowDuplicateHeaders:     doc.AllowDuplicateHeaders,
			AllowBlankHeaders:         doc.AllowBlankHeaders,
			RequiredHeaders:           doc.RequiredHeaders,
			AllowBlankRows:            doc.AllowBlankRows,
			AllowDifferentFieldCounts: doc.AllowDifferentFieldCounts,
		},
	}

	var err error
	if def.Delimiter, err = parseDelimiter(doc.Delimiter); err != nil {
		return nil, err
	}
	if def.Config.HeadersTransform, err = parseTransform(&doc.HeadersTransform); err != nil {
		return nil, err
	}
	if def.Config.FieldRequirements, err = parseRequirements(&doc.FieldRequirements); err != nil {
		return nil, err
	}

	return def, nil
}

// LoadFile reads a definition from path. When the document has no name the
// file name without extension is used.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema %s: %w", path, err)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// ReaderOptions returns the csvrow options implied by the definition.
func (d *Definition) ReaderOptions() []csvrow.Option {
	if d.Delimiter == 0 {
		return nil
	}
	return []csvrow.Option{csvrow.WithComma(d.Delimiter)}
}

// Validator builds a validator for the file at path using this definition.
func (d *Definition) Validator(path string, opts ...csvschema.Option) (*csvschema.Validator, error) {
	opts = append([]csvschema.Option{csvschema.WithReaderOptions(d.ReaderOptions()...)}, opts...)
	return csvschema.New(path, d.Config, opts...)
}

func parseDelimiter(s string) (rune, error) {
	switch {
	case s == "":
		return 0, nil
	case s == `\t`:
		return '\t', nil
	case utf8.RuneCountInString(s) != 1:
		return 0, fmt.Errorf("%w: delimiter must be a single character, got %q", ErrInvalidDefinition, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == '"' || r == '\r' || r == '\n' {
		return 0, fmt.Errorf("%w: delimiter %q is not allowed", ErrInvalidDefinition, s)
	}
	return r, nil
}

// parseTransform accepts a single name or a list of names applied in order.
func parseTransform(n *yaml.Node) (csvschema.Transform, error) {
	switch n.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return csvschema.TransformByName(n.Value)
	case yaml.SequenceNode:
		chain := make([]csvschema.Transform, 0, len(n.Content))
		for _, item := range n.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: headers_transform at line %d must list names", ErrInvalidDefinition, item.Line)
			}
			t, err := csvschema.TransformByName(item.Value)
			if err != nil {
				return nil, err
			}
			chain = append(chain, t)
		}
		return csvschema.Chain(chain...), nil
	default:
		return nil, fmt.Errorf("%w: headers_transform at line %d must be a name or a list", ErrInvalidDefinition, n.Line)
	}
}

// parseRequirements walks the mapping by hand so the configured order
// survives and repeated headers are reported with their position.
func parseRequirements(n *yaml.Node) ([]csvschema.FieldRequirement, error) {
	switch {
	case n.Kind == 0:
		return nil, nil
	case n.Kind == yaml.ScalarNode && n.Tag == "!!null":
		return nil, nil
	case n.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: field_requirements at line %d must be a mapping", ErrInvalidDefinition, n.Line)
	}

	out := make([]csvschema.FieldRequirement, 0, len(n.Content)/2)
	firstLine := make(map[string]int, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		header := k.Value
		if header == "" {
			return nil, fmt.Errorf("%w: blank header in field_requirements at line %d", ErrInvalidDefinition, k.Line)
		}
		if line, ok := firstLine[header]; ok {
			return nil, fmt.Errorf("%w: field_requirements repeats %q at line %d (first at line %d)",
				ErrInvalidDefinition, header, k.Line, line)
		}
		firstLine[header] = k.Line

		var req requirement
		if v.Kind == yaml.MappingNode {
			if err := decodeStrict(v, &req); err != nil {
				return nil, fmt.Errorf("%w: field_requirements.%s: %v", ErrInvalidDefinition, header, err)
			}
		} else if !(v.Kind == yaml.ScalarNode && v.Tag == "!!null") {
			return nil, fmt.Errorf("%w: field_requirements.%s at line %d must be a mapping", ErrInvalidDefinition, header, v.Line)
		}

		fr := csvschema.FieldRequirement{Header: header, Unique: req.Unique, CantBeNil: req.CantBeNil}
		if req.RestrictValues != nil {
			fr.RestrictValues = append([]string{}, (*req.RestrictValues)...)
		}
		out = append(out, fr)
	}
	return out, nil
}

var knownRequirementKeys = map[string]bool{
	"unique":          true,
	"cant_be_nil":     true,
	"restrict_values": true,
}

// decodeStrict decodes a mapping node, rejecting keys requirement does not
// know. yaml.Node.Decode has no KnownFields switch.
func decodeStrict(n *yaml.Node, req *requirement) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; !knownRequirementKeys[k.Value] {
			return fmt.Errorf("unknown key %q at line %d", k.Value, k.Line)
		}
	}
	return n.Decode(req)
}
