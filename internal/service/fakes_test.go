package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"smart_climate/internal/models"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotCtx  context.Context
	gotFrom time.Time
	gotTo   time.Time
	gotType string

	// configured outputs
	events    []models.FlowEvent
	err       error
	appendErr error

	appended []models.FlowEvent
	calls    int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.FlowEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.FlowEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return f.appendErr
}

func (f *fakeEventRepo) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.appended))
	for _, e := range f.appended {
		out = append(out, e.Type)
	}
	return out
}

// fakeEntryRepo keeps entries in memory.
type fakeEntryRepo struct {
	mu      sync.Mutex
	entries map[string]models.ConfigEntry
	seq     int

	createErr error
	updateErr error
	listErr   error
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]models.ConfigEntry)}
}

func (f *fakeEntryRepo) Create(_ context.Context, e models.ConfigEntry) (models.ConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return models.ConfigEntry{}, f.createErr
	}
	f.seq++
	if e.EntryID == "" {
		e.EntryID = fmt.Sprintf("entry-%d", f.seq)
	}
	e.CreatedAt = time.Date(2025, 1, 1, 0, 0, f.seq, 0, time.UTC)
	e.UpdatedAt = e.CreatedAt
	f.entries[e.EntryID] = e
	return e, nil
}

func (f *fakeEntryRepo) Get(_ context.Context, entryID string) (*models.ConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[entryID]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (f *fakeEntryRepo) List(_ context.Context, domain string) ([]models.ConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.ConfigEntry, 0, len(f.entries))
	for _, e := range f.entries {
		if domain == "" || e.Domain == domain {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeEntryRepo) UpdateOptions(_ context.Context, entryID string, options map[string]any) (*models.ConfigEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	e, ok := f.entries[entryID]
	if !ok {
		return nil, nil
	}
	e.Options = options
	f.entries[entryID] = e
	return &e, nil
}

func (f *fakeEntryRepo) Delete(_ context.Context, entryID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.entries[entryID]; !ok {
		return false, nil
	}
	delete(f.entries, entryID)
	return true, nil
}

// fakeEntityRepo returns a fixed entity list.
type fakeEntityRepo struct {
	entities []models.Entity
	upserted []models.Entity
	err      error
}

func (f *fakeEntityRepo) Upsert(_ context.Context, e models.Entity) error {
	if f.err != nil {
		return f.err
	}
	f.upserted = append(f.upserted, e)
	return nil
}

func (f *fakeEntityRepo) List(_ context.Context, domain string) ([]models.Entity, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Entity
	for _, e := range f.entities {
		if domain == "" || e.Domain == domain {
			out = append(out, e)
		}
	}
	return out, nil
}
