package flow

import (
	"fmt"
	"sort"
	"sync"

	sc "smart_climate"
	"smart_climate/internal/schema"
)

// Handler describes an integration whose entries are configured by flows.
type Handler struct {
	Domain  string
	Title   string
	Version int
	Schema  schema.Schema
	// Check runs on every finished record before it is stored. Optional.
	Check func(schema.Record) error
}

// CheckRecord applies h.Check, if any.
func (h Handler) CheckRecord(rec schema.Record) error {
	if h.Check == nil {
		return nil
	}
	if err := h.Check(rec); err != nil {
		return fmt.Errorf("%s record: %w", h.Domain, err)
	}
	return nil
}

// Registry maps integration domains to their handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds h. A domain can only be registered once.
func (r *Registry) Register(h Handler) error {
	if h.Domain == "" {
		return fmt.Errorf("register handler: empty domain")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.handlers[h.Domain]; ok {
		return fmt.Errorf("register handler %q: already registered", h.Domain)
	}
	r.handlers[h.Domain] = h
	return nil
}

// Get returns the handler for domain or ErrUnknownHandler.
func (r *Registry) Get(domain string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[domain]
	if !ok {
		return Handler{}, fmt.Errorf("%w: %q", ErrUnknownHandler, domain)
	}
	return h, nil
}

// Domains lists registered domains in sorted order.
func (r *Registry) Domains() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for d := range r.handlers {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// RegisterSmartClimate registers the smart_climate handler.
func RegisterSmartClimate(r *Registry) error {
	return r.Register(Handler{
		Domain:  sc.Domain,
		Title:   sc.Title,
		Version: sc.EntryVersion,
		Schema:  schema.DataSchema(),
		Check: func(rec schema.Record) error {
			_, err := rec.Decode()
			return err
		},
	})
}
