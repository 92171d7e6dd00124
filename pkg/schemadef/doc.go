// Package schemadef loads csvschema configurations from YAML files so schemas
// can live next to the data they describe instead of in code.
//
// A definition looks like this:
//
//	name: customers
//	description: CRM export
//	delimiter: ";"
//	headers_transform: symbol        # or a list: [trim, lower]
//	required_headers: [id, email]
//	allow_blank_rows: true
//	field_requirements:
//	  id:
//	    unique: true
//	    cant_be_nil: true
//	  status:
//	    restrict_values: [active, closed]
//
// Omitted allow_* flags are false, which is the strict setting.
// field_requirements keeps its key order: restricted values are checked in
// the order they are written. A restrict_values key with an empty list allows
// nothing, while leaving the key out leaves the column unrestricted.
//
// LoadDir builds a Registry from every *.yaml and *.yml file in a directory.
// Definitions without a name are named after their file.
package schemadef
