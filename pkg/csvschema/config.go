package csvschema

// Config declares the shape a CSV file must have. The zero value is the
// strictest schema: duplicate and blank headers, blank rows and uneven field
// counts are all rejected.
type Config struct {
	AllowDuplicateHeaders bool
	// HeadersTransform is applied to every header before duplicates are
	// looked for, so "Email" and "email " can be made to collide.
	HeadersTransform          Transform
	AllowBlankHeaders         bool
	RequiredHeaders           []string
	AllowBlankRows            bool
	AllowDifferentFieldCounts bool
	// FieldRequirements are keyed by header name. Their order is the order
	// restricted-value checks run in.
	FieldRequirements []FieldRequirement
}

// FieldRequirement constrains the values of one column.
type FieldRequirement struct {
	Header    string
	Unique    bool
	CantBeNil bool
	// RestrictValues lists the allowed values. Nil means unrestricted, an
	// empty non-nil slice allows nothing.
	RestrictValues []string
}

// Requirement returns the requirement configured for header.
func (c Config) Requirement(header string) (FieldRequirement, bool) {
	for _, fr := range c.FieldRequirements {
		if fr.Header == header {
			return fr, true
		}
	}
	return FieldRequirement{}, false
}

// Lenient returns a copy of c with every structural check disabled. Field
// requirements and required headers are kept.
func (c Config) Lenient() Config {
	c.AllowDuplicateHeaders = true
	c.AllowBlankHeaders = true
	c.AllowBlankRows = true
	c.AllowDifferentFieldCounts = true
	return c
}
