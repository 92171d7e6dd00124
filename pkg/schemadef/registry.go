package schemadef

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Registry is an immutable set of definitions keyed by name. It is safe for
// concurrent use.
type Registry struct {
	defs map[string]*Definition
}

// NewRegistry indexes defs by name. Names must be unique and non-empty.
func NewRegistry(defs ...*Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]*Definition, len(defs))}
	for _, d := range defs {
		if d == nil || d.Name == "" {
			return nil, fmt.Errorf("%w: schema without a name", ErrInvalidDefinition)
		}
		if _, ok := r.defs[d.Name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSchema, d.Name)
		}
		r.defs[d.Name] = d
	}
	return r, nil
}

// LoadDir loads every *.yaml and *.yml file directly inside dir.
func LoadDir(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory %s: %w", dir, err)
	}

	var defs []*Definition
	for _, e := range entries {
		if e.IsDir() || !isYAML(e.Name()) {
			continue
		}
		d, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return NewRegistry(defs...)
}

// Get returns the definition registered under name.
func (r *Registry) Get(name string) (*Definition, error) {
	d, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return d, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

func isYAML(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return strings.EqualFold(ext, "yaml") || strings.EqualFold(ext, "yml")
}
