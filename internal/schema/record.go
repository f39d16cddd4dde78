package schema

import (
	"fmt"

	"smart_climate/internal/models"

	"github.com/go-viper/mapstructure/v2"
)

// Record is a validated configuration record.
type Record map[string]any

// Clone returns a shallow copy; values are scalars so this is a full copy.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Decode converts the record into its typed form.
func (r Record) Decode() (models.SmartClimateConfig, error) {
	var cfg models.SmartClimateConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &cfg,
	})
	if err != nil {
		return models.SmartClimateConfig{}, fmt.Errorf("build record decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(r)); err != nil {
		return models.SmartClimateConfig{}, fmt.Errorf("decode record: %w", err)
	}
	return cfg, nil
}
