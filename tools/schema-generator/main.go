package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/grovetools/catalogdocs/config"
	"github.com/grovetools/catalogdocs/logging"
	"github.com/invopop/jsonschema"
)

// Writes schema/catalogdocs.schema.json: the Config schema with the logging
// extension schema added as the "logging" property.
func main() {
	baseBytes, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("Error generating schema: %v", err)
	}

	var base map[string]interface{}
	if err := json.Unmarshal(baseBytes, &base); err != nil {
		log.Fatalf("Error parsing generated schema: %v", err)
	}

	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}
	loggingSchema := r.Reflect(&logging.Config{})
	// No logging field is required.
	loggingSchema.Required = nil
	loggingSchema.Version = ""

	loggingBytes, err := json.Marshal(loggingSchema)
	if err != nil {
		log.Fatalf("Error marshaling logging schema: %v", err)
	}
	var loggingDef map[string]interface{}
	if err := json.Unmarshal(loggingBytes, &loggingDef); err != nil {
		log.Fatalf("Error parsing logging schema: %v", err)
	}

	defs, _ := base["$defs"].(map[string]interface{})
	if defs == nil {
		defs = make(map[string]interface{})
		base["$defs"] = defs
	}
	defs["LoggingConfig"] = loggingDef

	properties, _ := base["properties"].(map[string]interface{})
	if properties == nil {
		properties = make(map[string]interface{})
		base["properties"] = properties
	}
	properties["logging"] = map[string]interface{}{
		"$ref":        "#/$defs/LoggingConfig",
		"description": "Logging settings",
	}

	data, err := json.MarshalIndent(base, "", "  ")
	if err != nil {
		log.Fatalf("Error marshaling schema: %v", err)
	}

	outputPath := filepath.Join("schema", "catalogdocs.schema.json")
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		log.Fatalf("Error writing schema file: %v", err)
	}

	log.Printf("Successfully generated schema at %s", outputPath)
}
