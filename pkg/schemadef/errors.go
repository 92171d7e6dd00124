package schemadef

import (
	"errors"

	"github.com/dmitrymomot/csvschema/pkg/csvschema"
)

var (
	// ErrInvalidDefinition is returned for malformed YAML, unknown keys or
	// inconsistent values.
	ErrInvalidDefinition = errors.New("invalid schema definition")

	// ErrUnknownTransform is returned when headers_transform names a transform
	// that does not exist.
	ErrUnknownTransform = csvschema.ErrUnknownTransform

	// ErrSchemaNotFound is returned by Registry.Get for unknown names.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrDuplicateSchema is returned when two definitions share a name.
	ErrDuplicateSchema = errors.New("duplicate schema name")
)
