package flow

import (
	"smart_climate/internal/models"
	"smart_climate/internal/schema"
)

// SetupFlow collects the initial configuration record.
type SetupFlow struct {
	handler Handler
	catalog schema.Catalog
	source  string
	done    bool
}

var _ Flow = (*SetupFlow)(nil)

// NewSetupFlow returns a user-initiated setup flow for h.
func (h Handler) NewSetupFlow(catalog schema.Catalog) *SetupFlow {
	return &SetupFlow{handler: h, catalog: catalog, source: models.SourceUser}
}

// NewImportFlow returns a setup flow whose entries are marked as imported.
func (h Handler) NewImportFlow() *SetupFlow {
	return &SetupFlow{handler: h, source: models.SourceImport}
}

// Step shows the form for a nil input and submits otherwise.
func (f *SetupFlow) Step(input map[string]any) (Result, error) {
	if input == nil {
		return f.Start()
	}
	return f.Submit(input)
}

// Start describes the form. It has no side effects.
func (f *SetupFlow) Start() (Result, error) {
	if f.done {
		return Result{}, ErrFlowFinished
	}
	return f.form(nil), nil
}

// Submit validates input and, on success, finishes the flow with a record
// titled after the handler. Validation problems come back as a form result.
func (f *SetupFlow) Submit(input map[string]any) (Result, error) {
	if f.done {
		return Result{}, ErrFlowFinished
	}
	rec, errs := f.handler.Schema.Validate(input)
	if len(errs) > 0 {
		return f.form(errs), nil
	}
	f.done = true
	return Result{
		Handler: f.handler.Domain,
		Type:    ResultCreateEntry,
		Title:   f.handler.Title,
		Data:    rec,
		Source:  f.source,
	}, nil
}

// Import submits an externally supplied record as if a user had entered it.
func (f *SetupFlow) Import(input map[string]any) (Result, error) {
	f.source = models.SourceImport
	if input == nil {
		input = map[string]any{}
	}
	return f.Submit(input)
}

func (f *SetupFlow) form(errs schema.FieldErrors) Result {
	return Result{
		Handler:    f.handler.Domain,
		Type:       ResultForm,
		StepID:     StepUser,
		DataSchema: f.handler.Schema.Form(f.catalog),
		Errors:     errs,
	}
}
