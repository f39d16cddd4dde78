package service

import (
	"context"
	"fmt"

	"smart_climate/internal/flow"
	"smart_climate/internal/models"
	"smart_climate/internal/repository"
	"smart_climate/internal/schema"
)

// catalogSource supplies selector options for rendered forms.
type catalogSource interface {
	Catalog(ctx context.Context) (schema.Catalog, error)
}

// FlowService runs setup and options flows on behalf of the host and stores
// the records they produce.
type FlowService struct {
	registry  *flow.Registry
	setup     *flow.Manager
	options   *flow.Manager
	entryRepo repository.EntryRepo
	catalog   catalogSource
	audit     *auditor
}

// NewFlowService builds the service; opts apply to both flow managers.
func NewFlowService(reg *flow.Registry, entryRepo repository.EntryRepo, catalog catalogSource, audit *auditor, opts ...flow.ManagerOption) *FlowService {
	return &FlowService{
		registry:  reg,
		setup:     flow.NewManager(opts...),
		options:   flow.NewManager(opts...),
		entryRepo: entryRepo,
		catalog:   catalog,
		audit:     audit,
	}
}

// StartSetup opens a setup flow for handler and returns its form.
func (s *FlowService) StartSetup(ctx context.Context, handler string) (flow.Result, error) {
	h, err := s.registry.Get(handler)
	if err != nil {
		return flow.Result{}, err
	}
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return flow.Result{}, err
	}
	res, err := s.setup.Start(h.Domain, "", h.NewSetupFlow(cat), nil)
	if err != nil {
		return flow.Result{}, err
	}
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventFlowStarted,
		FlowID:      res.FlowID,
		Description: "Setup flow started",
		Metadata:    map[string]any{"handler": h.Domain, "step_id": res.StepID},
	})
	return res, nil
}

func (s *FlowService) ProgressSetup(_ context.Context, flowID string) (flow.Result, error) {
	return s.setup.Progress(flowID)
}

// SubmitSetup submits input to a setup flow. A successful submission stores
// a new entry and reports its id in the result.
func (s *FlowService) SubmitSetup(ctx context.Context, flowID string, input map[string]any) (flow.Result, error) {
	res, err := s.setup.Configure(flowID, submission(input))
	if err != nil {
		return flow.Result{}, err
	}
	return s.finishSetup(ctx, res)
}

func (s *FlowService) AbortSetup(ctx context.Context, flowID string) error {
	if err := s.setup.Abort(flowID); err != nil {
		return err
	}
	s.audit.record(ctx, models.FlowEvent{Type: models.EventFlowAborted, FlowID: flowID, Description: "Setup flow aborted"})
	return nil
}

// Import runs record through the setup submit step as if a user had typed it.
// An invalid record returns the form with its errors, but the flow is
// aborted: nobody resubmits an imported record.
func (s *FlowService) Import(ctx context.Context, handler string, record map[string]any) (flow.Result, error) {
	h, err := s.registry.Get(handler)
	if err != nil {
		return flow.Result{}, err
	}
	res, err := s.setup.Start(h.Domain, "", h.NewImportFlow(), submission(record))
	if err != nil {
		return flow.Result{}, err
	}
	res, err = s.finishSetup(ctx, res)
	if err != nil || res.Terminal() {
		return res, err
	}
	if err := s.AbortSetup(ctx, res.FlowID); err != nil {
		return flow.Result{}, fmt.Errorf("abort import flow %s: %w", res.FlowID, err)
	}
	return res, nil
}

func (s *FlowService) finishSetup(ctx context.Context, res flow.Result) (flow.Result, error) {
	switch res.Type {
	case flow.ResultForm:
		s.recordValidation(ctx, res)
		return res, nil
	case flow.ResultCreateEntry:
	default:
		return res, nil
	}

	h, err := s.registry.Get(res.Handler)
	if err != nil {
		return flow.Result{}, err
	}
	if err := h.CheckRecord(res.Data); err != nil {
		return flow.Result{}, fmt.Errorf("flow %s: %w", res.FlowID, err)
	}
	created, err := s.entryRepo.Create(ctx, models.ConfigEntry{
		Domain:  h.Domain,
		Title:   res.Title,
		Version: h.Version,
		Data:    res.Data,
		Source:  res.Source,
	})
	if err != nil {
		return flow.Result{}, fmt.Errorf("store entry from flow %s: %w", res.FlowID, err)
	}
	res.EntryID = created.EntryID
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventEntryCreated,
		FlowID:      res.FlowID,
		EntryID:     created.EntryID,
		Description: "Entry created: " + res.Title,
		Metadata:    map[string]any{"source": res.Source},
	})
	return res, nil
}

// StartOptions opens an options flow bound to the entry's current record.
func (s *FlowService) StartOptions(ctx context.Context, entryID string) (flow.Result, error) {
	e, err := s.entryRepo.Get(ctx, entryID)
	if err != nil {
		return flow.Result{}, err
	}
	if e == nil {
		return flow.Result{}, fmt.Errorf("%w: %s", ErrEntryNotFound, entryID)
	}
	h, err := s.registry.Get(e.Domain)
	if err != nil {
		return flow.Result{}, err
	}
	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return flow.Result{}, err
	}
	res, err := s.options.Start(h.Domain, e.EntryID, h.NewOptionsFlow(e.Current(), cat), nil)
	if err != nil {
		return flow.Result{}, err
	}
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventFlowStarted,
		FlowID:      res.FlowID,
		EntryID:     e.EntryID,
		Description: "Options flow started",
		Metadata:    map[string]any{"handler": h.Domain, "step_id": res.StepID},
	})
	return res, nil
}

func (s *FlowService) ProgressOptions(_ context.Context, flowID string) (flow.Result, error) {
	return s.options.Progress(flowID)
}

// SubmitOptions submits input to an options flow. A successful submission
// replaces the entry's options.
func (s *FlowService) SubmitOptions(ctx context.Context, flowID string, input map[string]any) (flow.Result, error) {
	res, err := s.options.Configure(flowID, submission(input))
	if err != nil {
		return flow.Result{}, err
	}
	if res.Type != flow.ResultCreateEntry {
		s.recordValidation(ctx, res)
		return res, nil
	}
	h, err := s.registry.Get(res.Handler)
	if err != nil {
		return flow.Result{}, err
	}
	if err := h.CheckRecord(res.Data); err != nil {
		return flow.Result{}, fmt.Errorf("flow %s: %w", flowID, err)
	}

	updated, err := s.entryRepo.UpdateOptions(ctx, res.EntryID, res.Data)
	if err != nil {
		return flow.Result{}, fmt.Errorf("store options from flow %s: %w", flowID, err)
	}
	if updated == nil {
		return flow.Result{}, fmt.Errorf("%w: %s", ErrEntryNotFound, res.EntryID)
	}
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventOptionsUpdated,
		FlowID:      flowID,
		EntryID:     res.EntryID,
		Description: "Options updated",
	})
	return res, nil
}

func (s *FlowService) AbortOptions(ctx context.Context, flowID string) error {
	if err := s.options.Abort(flowID); err != nil {
		return err
	}
	s.audit.record(ctx, models.FlowEvent{Type: models.EventFlowAborted, FlowID: flowID, Description: "Options flow aborted"})
	return nil
}

func (s *FlowService) recordValidation(ctx context.Context, res flow.Result) {
	if len(res.Errors) == 0 {
		return
	}
	s.audit.record(ctx, models.FlowEvent{
		Type:        models.EventValidationFailed,
		FlowID:      res.FlowID,
		EntryID:     res.EntryID,
		Description: "Submitted input rejected",
		Metadata:    map[string]any{"errors": map[string]string(res.Errors)},
	})
}

func (s *FlowService) loadCatalog(ctx context.Context) (schema.Catalog, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.Catalog(ctx)
}

// submission turns a missing body into an empty submission so that it is
// validated rather than mistaken for a form request.
func submission(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}
	return input
}
