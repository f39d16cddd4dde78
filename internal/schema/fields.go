// Package schema declares the Smart Climate configuration fields and turns
// raw form input into validated records.
package schema

import "fmt"

// Configuration keys.
const (
	KeyMainClimate            = "main_climate"
	KeySecondaryClimate       = "secondary_climate"
	KeySensor                 = "sensor"
	KeyOutdoorSensor          = "outdoor_sensor"
	KeyTempThresholdPrimary   = "temp_threshold_primary"
	KeyTempThresholdSecondary = "temp_threshold_secondary"
	KeyOutdoorHotThreshold    = "outdoor_hot_threshold"
	KeyOutdoorColdThreshold   = "outdoor_cold_threshold"
	KeyModeSyncTemplate       = "mode_sync_template"
	KeyMinRuntime             = "min_runtime_seconds"
)

// Entity domains accepted by the entity selectors.
const (
	DomainClimate = "climate"
	DomainSensor  = "sensor"
)

// Defaults applied when an optional field is omitted.
const (
	DefaultTempThresholdPrimary   = 1.0
	DefaultTempThresholdSecondary = 3.0
	DefaultOutdoorHotThreshold    = 25.0
	DefaultOutdoorColdThreshold   = 10.0
	DefaultModeSyncTemplate       = ""
	DefaultMinRuntimeSeconds      = 300
)

// Kind is the value type of a field.
type Kind string

const (
	KindEntity Kind = "entity"
	KindFloat  Kind = "float"
	KindInt    Kind = "int"
	KindString Kind = "string"
)

// Field describes one configuration key.
type Field struct {
	Key      string
	Kind     Kind
	Required bool
	Default  any      // nil means no default
	Domains  []string // entity fields only
}

// HasDefault reports whether omitting the field yields a value.
func (f Field) HasDefault() bool { return f.Default != nil }

// Schema is an ordered set of uniquely named fields.
type Schema struct {
	fields []Field
}

// New builds a schema, rejecting duplicate keys.
func New(fields ...Field) (Schema, error) {
	seen := make(map[string]struct{}, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Key == "" {
			return Schema{}, fmt.Errorf("field with empty key")
		}
		if _, dup := seen[f.Key]; dup {
			return Schema{}, fmt.Errorf("duplicate field %q", f.Key)
		}
		if f.Kind == KindEntity && len(f.Domains) == 0 {
			return Schema{}, fmt.Errorf("entity field %q has no domain", f.Key)
		}
		seen[f.Key] = struct{}{}
		out = append(out, f)
	}
	return Schema{fields: out}, nil
}

func mustNew(fields ...Field) Schema {
	s, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// DataSchema returns the schema used by the setup flow.
func DataSchema() Schema {
	return mustNew(
		Field{Key: KeyMainClimate, Kind: KindEntity, Required: true, Domains: []string{DomainClimate}},
		Field{Key: KeySecondaryClimate, Kind: KindEntity, Domains: []string{DomainClimate}},
		Field{Key: KeySensor, Kind: KindEntity, Required: true, Domains: []string{DomainSensor}},
		Field{Key: KeyOutdoorSensor, Kind: KindEntity, Domains: []string{DomainSensor}},
		Field{Key: KeyTempThresholdPrimary, Kind: KindFloat, Default: DefaultTempThresholdPrimary},
		Field{Key: KeyTempThresholdSecondary, Kind: KindFloat, Default: DefaultTempThresholdSecondary},
		Field{Key: KeyOutdoorHotThreshold, Kind: KindFloat, Default: DefaultOutdoorHotThreshold},
		Field{Key: KeyOutdoorColdThreshold, Kind: KindFloat, Default: DefaultOutdoorColdThreshold},
		Field{Key: KeyModeSyncTemplate, Kind: KindString, Default: DefaultModeSyncTemplate},
		Field{Key: KeyMinRuntime, Kind: KindInt, Default: DefaultMinRuntimeSeconds},
	)
}

// Fields returns a copy of the schema's fields in declaration order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field looks a field up by key.
func (s Schema) Field(key string) (Field, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// WithDefaults derives a schema whose defaults are the given current values.
// Fields absent from current keep their original default. Blank entity
// references are not used as defaults.
func (s Schema) WithDefaults(current map[string]any) Schema {
	out := make([]Field, len(s.fields))
	for i, f := range s.fields {
		if v, ok := current[f.Key]; ok && !isBlank(f, v) {
			f.Default = v
		}
		out[i] = f
	}
	return Schema{fields: out}
}

func isBlank(f Field, v any) bool {
	if v == nil {
		return true
	}
	if f.Kind != KindEntity {
		return false
	}
	s, ok := v.(string)
	return ok && s == ""
}
