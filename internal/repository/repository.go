package repository

import (
	"context"
	"database/sql"
	"time"

	"smart_climate/internal/models"
)

type Authorization interface {
	Create(ctx context.Context, username, hash string) (int, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// EntryRepo persists configuration entries.
type EntryRepo interface {
	Create(ctx context.Context, e models.ConfigEntry) (models.ConfigEntry, error)
	Get(ctx context.Context, entryID string) (*models.ConfigEntry, error)
	List(ctx context.Context, domain string) ([]models.ConfigEntry, error)
	UpdateOptions(ctx context.Context, entryID string, options map[string]any) (*models.ConfigEntry, error)
	Delete(ctx context.Context, entryID string) (bool, error)
}

type EventRepo interface {
	Append(ctx context.Context, e models.FlowEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]models.FlowEvent, error)
}

// EntityRepo stores the entities offered by selectors.
type EntityRepo interface {
	Upsert(ctx context.Context, e models.Entity) error
	List(ctx context.Context, domain string) ([]models.Entity, error)
}

type Repository struct {
	EntryRepo  EntryRepo
	EventRepo  EventRepo
	EntityRepo EntityRepo
	Auth       Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		EntryRepo:  NewEntrySQLite(db),
		EventRepo:  NewEventSQLite(db),
		EntityRepo: NewEntitySQLite(db),
		Auth:       NewUserSQLite(db),
	}
}
