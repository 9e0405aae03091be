package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "json",
	}
	s := r.Reflect(&Config{})
	s.Title = "ollamakit configuration"
	s.Description = "Config file for the ollamakit CLI and dashboard (YAML, TOML or JSON)"
	return json.MarshalIndent(s, "", "  ")
}
