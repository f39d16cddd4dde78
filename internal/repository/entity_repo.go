package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"smart_climate/internal/models"
)

type EntitySQLite struct {
	db *sql.DB
}

func NewEntitySQLite(db *sql.DB) *EntitySQLite {
	return &EntitySQLite{db: db}
}

const (
	upsertEntitySQL = `
		INSERT INTO entities (entity_id, domain, name, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			domain=excluded.domain,
			name=excluded.name,
			updated_at=excluded.updated_at
	`

	selectEntitiesSQL = `SELECT entity_id, domain, name, updated_at FROM entities`
)

// Upsert inserts or refreshes an entity. The domain is derived from the
// entity id when not set.
func (r *EntitySQLite) Upsert(ctx context.Context, e models.Entity) error {
	id := strings.ToLower(strings.TrimSpace(e.EntityID))
	dot := strings.IndexByte(id, '.')
	if dot <= 0 || dot == len(id)-1 {
		return fmt.Errorf("upsert entity: malformed entity id %q", e.EntityID)
	}
	domain := e.Domain
	if domain == "" {
		domain = id[:dot]
	}

	ts := e.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	if _, err := r.db.ExecContext(ctx, upsertEntitySQL, id, domain, e.Name, ts); err != nil {
		return fmt.Errorf("upsert entity %q: %w", id, err)
	}
	return nil
}

// List returns entities ordered by id, optionally restricted to a domain.
func (r *EntitySQLite) List(ctx context.Context, domain string) ([]models.Entity, error) {
	q := selectEntitiesSQL
	var args []any
	if domain = strings.TrimSpace(domain); domain != "" {
		q += " WHERE domain = ?"
		args = append(args, domain)
	}
	q += " ORDER BY entity_id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query entities: %w", err)
	}
	defer rows.Close()

	var out []models.Entity
	for rows.Next() {
		var (
			e    models.Entity
			name sql.NullString
		)
		if err := rows.Scan(&e.EntityID, &e.Domain, &name, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		e.Name = name.String
		e.UpdatedAt = e.UpdatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
