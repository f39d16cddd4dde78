package flow

import (
	"testing"

	sc "smart_climate"
	"smart_climate/internal/models"
	"smart_climate/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smartClimate(t *testing.T) Handler {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, RegisterSmartClimate(reg))
	h, err := reg.Get(sc.Domain)
	require.NoError(t, err)
	return h
}

func TestSetupFlow_StartShowsForm(t *testing.T) {
	f := smartClimate(t).NewSetupFlow(schema.Catalog{schema.DomainClimate: {"climate.hvac"}})

	res, err := f.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, ResultForm, res.Type)
	assert.Equal(t, StepUser, res.StepID)
	assert.Empty(t, res.Errors)
	require.Len(t, res.DataSchema, 10)
	assert.Equal(t, []string{"climate.hvac"}, res.DataSchema[0].Selector.Options)

	// showing the form twice is harmless
	_, err = f.Start()
	require.NoError(t, err)
}

func TestSetupFlow_SubmitCreatesEntry(t *testing.T) {
	f := smartClimate(t).NewSetupFlow(nil)

	res, err := f.Submit(map[string]any{"main_climate": "climate.hvac", "sensor": "sensor.room_temp"})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, res.Type)
	assert.Equal(t, sc.Title, res.Title)
	assert.Equal(t, models.SourceUser, res.Source)
	assert.Equal(t, schema.Record{
		"main_climate":             "climate.hvac",
		"sensor":                   "sensor.room_temp",
		"temp_threshold_primary":   1.0,
		"temp_threshold_secondary": 3.0,
		"outdoor_hot_threshold":    25.0,
		"outdoor_cold_threshold":   10.0,
		"mode_sync_template":       "",
		"min_runtime_seconds":      300,
	}, res.Data)

	_, err = f.Step(nil)
	assert.ErrorIs(t, err, ErrFlowFinished)
	_, err = f.Submit(map[string]any{})
	assert.ErrorIs(t, err, ErrFlowFinished)
}

func TestSetupFlow_SubmitMissingRequiredReshowsForm(t *testing.T) {
	f := smartClimate(t).NewSetupFlow(nil)

	res, err := f.Submit(map[string]any{"sensor": "sensor.room_temp"})
	require.NoError(t, err)
	assert.Equal(t, ResultForm, res.Type)
	assert.Nil(t, res.Data)
	assert.Equal(t, schema.FieldErrors{"main_climate": schema.CodeRequired}, res.Errors)

	// the flow is still usable
	res, err = f.Submit(map[string]any{"main_climate": "climate.hvac", "sensor": "sensor.room_temp"})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, res.Type)
}

func TestSetupFlow_ImportBehavesLikeSubmit(t *testing.T) {
	h := smartClimate(t)

	res, err := h.NewImportFlow().Import(map[string]any{"main_climate": "climate.hvac", "sensor": "sensor.t"})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, res.Type)
	assert.Equal(t, models.SourceImport, res.Source)

	res, err = h.NewImportFlow().Import(map[string]any{"main_climate": "light.kitchen", "sensor": "sensor.t"})
	require.NoError(t, err)
	assert.Equal(t, ResultForm, res.Type)
	assert.Equal(t, schema.CodeWrongDomain, res.Errors["main_climate"])

	res, err = h.NewImportFlow().Import(nil)
	require.NoError(t, err)
	assert.Equal(t, ResultForm, res.Type)
}

func prior() map[string]any {
	return map[string]any{
		"main_climate":             "climate.hvac",
		"secondary_climate":        "climate.boiler",
		"sensor":                   "sensor.room_temp",
		"temp_threshold_primary":   1.0,
		"temp_threshold_secondary": 3.0,
		"outdoor_hot_threshold":    25.0,
		"outdoor_cold_threshold":   10.0,
		"mode_sync_template":       "",
		"min_runtime_seconds":      float64(300), // as decoded from storage
	}
}

func TestOptionsFlow_StartPrefillsCurrentValues(t *testing.T) {
	f := smartClimate(t).NewOptionsFlow(prior(), nil)

	res, err := f.Step(nil)
	require.NoError(t, err)
	assert.Equal(t, StepInit, res.StepID)

	defaults := map[string]any{}
	for _, ff := range res.DataSchema {
		defaults[ff.Name] = ff.Default
	}
	assert.Equal(t, "climate.hvac", defaults["main_climate"])
	assert.Equal(t, "climate.boiler", defaults["secondary_climate"])
	assert.Nil(t, defaults["outdoor_sensor"])
	assert.Equal(t, float64(300), defaults["min_runtime_seconds"])
}

func TestOptionsFlow_StartFallsBackToSetupDefaults(t *testing.T) {
	f := smartClimate(t).NewOptionsFlow(map[string]any{
		"main_climate": "climate.hvac",
		"sensor":       "sensor.room_temp",
	}, nil)

	res, err := f.Start()
	require.NoError(t, err)
	for _, ff := range res.DataSchema {
		switch ff.Name {
		case "outdoor_hot_threshold":
			assert.Equal(t, 25.0, ff.Default)
		case "min_runtime_seconds":
			assert.Equal(t, 300, ff.Default)
		case "mode_sync_template":
			assert.Equal(t, "", ff.Default)
		}
	}
}

func TestOptionsFlow_SubmitChangesOnlyEditedField(t *testing.T) {
	h := smartClimate(t)
	before, errs := h.Schema.Validate(prior())
	require.Empty(t, errs)

	in := prior()
	in["min_runtime_seconds"] = 600
	res, err := h.NewOptionsFlow(prior(), nil).Submit(in)
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, res.Type)
	assert.Empty(t, res.Title)

	want := before.Clone()
	want["min_runtime_seconds"] = 600
	assert.Equal(t, want, res.Data)
}

func TestOptionsFlow_OmittedFieldsKeepCurrentValues(t *testing.T) {
	res, err := smartClimate(t).NewOptionsFlow(prior(), nil).Submit(map[string]any{"min_runtime_seconds": 600})
	require.NoError(t, err)
	assert.Equal(t, ResultCreateEntry, res.Type)
	assert.Equal(t, "climate.boiler", res.Data["secondary_climate"])
	assert.Equal(t, 600, res.Data["min_runtime_seconds"])
}

func TestOptionsFlow_SubmitInvalidReshowsForm(t *testing.T) {
	f := smartClimate(t).NewOptionsFlow(prior(), nil)

	res, err := f.Submit(map[string]any{"main_climate": "", "temp_threshold_primary": "x"})
	require.NoError(t, err)
	assert.Equal(t, ResultForm, res.Type)
	assert.Equal(t, schema.FieldErrors{
		"main_climate":           schema.CodeRequired,
		"temp_threshold_primary": schema.CodeInvalidFloat,
	}, res.Errors)
}

func TestOptionsFlow_DoesNotAliasCurrent(t *testing.T) {
	cur := prior()
	f := smartClimate(t).NewOptionsFlow(cur, nil)
	cur["main_climate"] = "climate.other"

	res, err := f.Submit(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "climate.hvac", res.Data["main_climate"])
}
