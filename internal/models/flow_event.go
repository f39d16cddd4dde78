package models

import "time"

// Flow event types.
const (
	EventFlowStarted      = "FLOW_STARTED"
	EventFlowAborted      = "FLOW_ABORTED"
	EventValidationFailed = "VALIDATION_FAILED"
	EventEntryCreated     = "ENTRY_CREATED"
	EventOptionsUpdated   = "OPTIONS_UPDATED"
	EventEntryRemoved     = "ENTRY_REMOVED"
	EventImportSkipped    = "IMPORT_SKIPPED"
)

// FlowEvent is a single audit log entry.
type FlowEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	FlowID      string    `json:"flow_id,omitempty"`
	EntryID     string    `json:"entry_id,omitempty"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
