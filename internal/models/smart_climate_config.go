package models

// SmartClimateConfig is the typed view of a validated configuration record.
type SmartClimateConfig struct {
	MainClimate            string  `json:"main_climate" mapstructure:"main_climate" jsonschema:"required,pattern=^climate\\.[a-z0-9_]+$"`
	SecondaryClimate       string  `json:"secondary_climate,omitempty" mapstructure:"secondary_climate" jsonschema:"pattern=^climate\\.[a-z0-9_]+$"`
	Sensor                 string  `json:"sensor" mapstructure:"sensor" jsonschema:"required,pattern=^sensor\\.[a-z0-9_]+$"`
	OutdoorSensor          string  `json:"outdoor_sensor,omitempty" mapstructure:"outdoor_sensor" jsonschema:"pattern=^sensor\\.[a-z0-9_]+$"`
	TempThresholdPrimary   float64 `json:"temp_threshold_primary" mapstructure:"temp_threshold_primary" jsonschema:"default=1"`
	TempThresholdSecondary float64 `json:"temp_threshold_secondary" mapstructure:"temp_threshold_secondary" jsonschema:"default=3"`
	OutdoorHotThreshold    float64 `json:"outdoor_hot_threshold" mapstructure:"outdoor_hot_threshold" jsonschema:"default=25"`
	OutdoorColdThreshold   float64 `json:"outdoor_cold_threshold" mapstructure:"outdoor_cold_threshold" jsonschema:"default=10"`
	ModeSyncTemplate       string  `json:"mode_sync_template" mapstructure:"mode_sync_template"`
	MinRuntimeSeconds      int     `json:"min_runtime_seconds" mapstructure:"min_runtime_seconds" jsonschema:"default=300"`
}
