package schema

import (
	sc "smart_climate"
	"smart_climate/internal/models"

	"github.com/invopop/jsonschema"
)

const schemaID = "https://smart-climate.local/config.schema.json"

// JSONSchema describes the configuration record as a JSON Schema document.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
	}
	s := r.Reflect(&models.SmartClimateConfig{})
	s.ID = schemaID
	s.Title = sc.Title + " configuration"
	s.Description = "Primary and optional secondary climate devices driven by room and outdoor sensor thresholds"
	return s
}
