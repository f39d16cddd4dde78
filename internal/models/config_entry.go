package models

import "time"

// Entry sources.
const (
	SourceUser   = "user"
	SourceImport = "import"
)

// ConfigEntry is a persisted configuration record owned by the host store.
type ConfigEntry struct {
	EntryID   string         `json:"entry_id"`
	Domain    string         `json:"domain"`
	Title     string         `json:"title"`
	Version   int            `json:"version"`
	Data      map[string]any `json:"data"`              // record produced by the setup flow
	Options   map[string]any `json:"options,omitempty"` // record produced by the last options flow
	Source    string         `json:"source"`            // user | import
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Current returns the effective record: options replace data once an options
// flow has completed. The returned map is a copy.
func (e ConfigEntry) Current() map[string]any {
	src := e.Data
	if len(e.Options) > 0 {
		src = e.Options
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
