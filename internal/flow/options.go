package flow

import "smart_climate/internal/schema"

// OptionsFlow edits the record of an existing entry.
type OptionsFlow struct {
	handler Handler
	schema  schema.Schema
	catalog schema.Catalog
	done    bool
}

var _ Flow = (*OptionsFlow)(nil)

// NewOptionsFlow builds an options flow whose defaults are the entry's
// current record.
func (h Handler) NewOptionsFlow(current map[string]any, catalog schema.Catalog) *OptionsFlow {
	return &OptionsFlow{
		handler: h,
		schema:  h.Schema.WithDefaults(current),
		catalog: catalog,
	}
}

// Step shows the form for a nil input and submits otherwise.
func (f *OptionsFlow) Step(input map[string]any) (Result, error) {
	if input == nil {
		return f.Start()
	}
	return f.Submit(input)
}

// Start describes the form pre-filled with the entry's current values.
func (f *OptionsFlow) Start() (Result, error) {
	if f.done {
		return Result{}, ErrFlowFinished
	}
	return f.form(nil), nil
}

// Submit validates input and finishes with a replacement record.
func (f *OptionsFlow) Submit(input map[string]any) (Result, error) {
	if f.done {
		return Result{}, ErrFlowFinished
	}
	rec, errs := f.schema.Validate(input)
	if len(errs) > 0 {
		return f.form(errs), nil
	}
	f.done = true
	return Result{
		Handler: f.handler.Domain,
		Type:    ResultCreateEntry,
		Data:    rec,
	}, nil
}

func (f *OptionsFlow) form(errs schema.FieldErrors) Result {
	return Result{
		Handler:    f.handler.Domain,
		Type:       ResultForm,
		StepID:     StepInit,
		DataSchema: f.schema.Form(f.catalog),
		Errors:     errs,
	}
}
