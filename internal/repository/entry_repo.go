package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smart_climate/internal/models"

	"github.com/google/uuid"
)

type EntrySQLite struct {
	db *sql.DB
}

func NewEntrySQLite(db *sql.DB) *EntrySQLite {
	return &EntrySQLite{db: db}
}

var _ EntryRepo = (*EntrySQLite)(nil)

const (
	insertEntrySQL = `
		INSERT INTO config_entries (id, domain, title, version, data, options, source, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	selectEntryColumns = `SELECT id, domain, title, version, data, options, source, created_at, updated_at FROM config_entries`
	selectEntrySQL     = selectEntryColumns + ` WHERE id = ?`
	updateOptionsSQL   = `UPDATE config_entries SET options = ?, updated_at = ? WHERE id = ?`
	deleteEntrySQL     = `DELETE FROM config_entries WHERE id = ?`
)

// marshalRecord converts a record to a JSON object string; nil becomes "{}".
func marshalRecord(rec map[string]any) (string, error) {
	if rec == nil {
		return "{}", nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// unmarshalRecord parses a JSON object string; empty input yields nil.
func unmarshalRecord(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(s), &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Create stores a new entry, assigning its id and timestamps when unset.
func (r *EntrySQLite) Create(ctx context.Context, e models.ConfigEntry) (models.ConfigEntry, error) {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	now := time.Now().UTC()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = now
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.CreatedAt

	data, err := marshalRecord(e.Data)
	if err != nil {
		return models.ConfigEntry{}, fmt.Errorf("marshal entry data: %w", err)
	}
	opts, err := marshalRecord(e.Options)
	if err != nil {
		return models.ConfigEntry{}, fmt.Errorf("marshal entry options: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertEntrySQL,
		e.EntryID, e.Domain, e.Title, e.Version, data, opts, e.Source, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return models.ConfigEntry{}, fmt.Errorf("insert entry %s: %w", e.EntryID, err)
	}
	return e, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.ConfigEntry, error) {
	var (
		e          models.ConfigEntry
		data, opts string
	)
	if err := row.Scan(&e.EntryID, &e.Domain, &e.Title, &e.Version, &data, &opts, &e.Source, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.ConfigEntry{}, err
	}
	var err error
	if e.Data, err = unmarshalRecord(data); err != nil {
		return models.ConfigEntry{}, fmt.Errorf("entry %s data: %w", e.EntryID, err)
	}
	if e.Options, err = unmarshalRecord(opts); err != nil {
		return models.ConfigEntry{}, fmt.Errorf("entry %s options: %w", e.EntryID, err)
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()
	return e, nil
}

// Get fetches an entry by id. Returns (nil, nil) if not found.
func (r *EntrySQLite) Get(ctx context.Context, entryID string) (*models.ConfigEntry, error) {
	e, err := scanEntry(r.db.QueryRowContext(ctx, selectEntrySQL, entryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select entry %s: %w", entryID, err)
	}
	return &e, nil
}

// List returns entries in creation order, optionally for one domain.
func (r *EntrySQLite) List(ctx context.Context, domain string) ([]models.ConfigEntry, error) {
	q := selectEntryColumns
	var args []any
	if domain != "" {
		q += " WHERE domain = ?"
		args = append(args, domain)
	}
	q += " ORDER BY created_at ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.ConfigEntry, 0, 8)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateOptions replaces the entry's options wholesale and returns the
// updated entry, or (nil, nil) if the entry does not exist.
func (r *EntrySQLite) UpdateOptions(ctx context.Context, entryID string, options map[string]any) (*models.ConfigEntry, error) {
	opts, err := marshalRecord(options)
	if err != nil {
		return nil, fmt.Errorf("marshal entry options: %w", err)
	}
	res, err := r.db.ExecContext(ctx, updateOptionsSQL, opts, time.Now().UTC(), entryID)
	if err != nil {
		return nil, fmt.Errorf("update entry %s options: %w", entryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update entry %s options: %w", entryID, err)
	}
	if n == 0 {
		return nil, nil
	}
	return r.Get(ctx, entryID)
}

// Delete removes an entry and reports whether it existed.
func (r *EntrySQLite) Delete(ctx context.Context, entryID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteEntrySQL, entryID)
	if err != nil {
		return false, fmt.Errorf("delete entry %s: %w", entryID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete entry %s: %w", entryID, err)
	}
	return n > 0, nil
}
