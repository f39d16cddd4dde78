package service

import (
	"context"
	"errors"
	"time"

	"smart_climate/internal/flow"
	"smart_climate/internal/logger"
	"smart_climate/internal/models"
	"smart_climate/internal/repository"
	"smart_climate/internal/schema"
)

// ErrEntryNotFound is returned for operations on an unknown entry id.
var ErrEntryNotFound = errors.New("config entry not found")

type Authorization interface {
	SignUp(ctx context.Context, cred models.Credentials) (int, error)
	GenerateToken(ctx context.Context, cred models.Credentials) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Entries exposes the persisted configuration entries.
type Entries interface {
	ListEntries(ctx context.Context) ([]models.ConfigEntry, error)
	GetEntry(ctx context.Context, entryID string) (models.ConfigEntry, error)
	RemoveEntry(ctx context.Context, entryID string) error
}

// Flows drives setup and options flows and persists their outcome.
type Flows interface {
	StartSetup(ctx context.Context, handler string) (flow.Result, error)
	ProgressSetup(ctx context.Context, flowID string) (flow.Result, error)
	SubmitSetup(ctx context.Context, flowID string, input map[string]any) (flow.Result, error)
	AbortSetup(ctx context.Context, flowID string) error
	Import(ctx context.Context, handler string, record map[string]any) (flow.Result, error)

	StartOptions(ctx context.Context, entryID string) (flow.Result, error)
	ProgressOptions(ctx context.Context, flowID string) (flow.Result, error)
	SubmitOptions(ctx context.Context, flowID string, input map[string]any) (flow.Result, error)
	AbortOptions(ctx context.Context, flowID string) error
}

// EventLog exposes the append-only flow audit log.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.FlowEvent, error)
}

// Entities manages the entity catalog offered by selectors.
type Entities interface {
	UpsertEntities(ctx context.Context, entities []models.Entity) error
	ListEntities(ctx context.Context, domain string) ([]models.Entity, error)
	Catalog(ctx context.Context) (schema.Catalog, error)
}

// Importer loads records from a static file through the import step.
type Importer interface {
	ImportFile(ctx context.Context, path string) (ImportReport, error)
}

// Config carries service settings resolved by the caller.
type Config struct {
	SigningKey  string
	TokenTTL    time.Duration
	FlowIdleTTL time.Duration
}

// Service aggregates all sub-services.
type Service struct {
	Entries
	Flows
	EventLog
	Entities
	Importer
	Authorization
}

// NewService wires the repository layer into concrete services. Flow handlers
// must already be registered in reg.
func NewService(repos *repository.Repository, reg *flow.Registry, cfg Config, log *logger.Logger) *Service {
	audit := newAuditor(repos.EventRepo, log)
	entities := NewEntityCatalogService(repos.EntityRepo)
	flows := NewFlowService(reg, repos.EntryRepo, entities, audit, flow.WithIdleTTL(cfg.FlowIdleTTL))
	return &Service{
		Entries:       NewEntryService(repos.EntryRepo, audit),
		Flows:         flows,
		EventLog:      NewEventLogService(repos.EventRepo),
		Entities:      entities,
		Importer:      NewImportService(repos.EntryRepo, flows, audit, log),
		Authorization: NewAuthService(repos.Auth, cfg),
	}
}
