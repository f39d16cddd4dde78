// Package smart_climate holds the identifiers shared by every layer of the
// Smart Climate configuration service.
package smart_climate

//go:generate swag init -g cmd/main.go -o docs

const (
	// Domain is the integration identifier flows are registered under.
	Domain = "smart_climate"
	// Title is the display title given to entries created by the setup flow.
	Title = "Smart Climate"
	// EntryVersion is the schema version stamped on created entries.
	EntryVersion = 1
)
