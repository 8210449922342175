package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for catalogdocs.yml from the
// Config struct. Unknown top-level keys are allowed for extensions.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// Nested sections are closed; extensions live at the top level only.
		AllowAdditionalProperties:  false,
		ExpandedStruct:             true,
		FieldNameTag:               "yaml",
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "catalogdocs configuration"
	schema.Description = "Schema for catalogdocs.yml."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
