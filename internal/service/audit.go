package service

import (
	"context"

	"smart_climate/internal/logger"
	"smart_climate/internal/models"
	"smart_climate/internal/repository"
)

// auditor appends flow events. Failures are logged and never fail the
// operation being audited.
type auditor struct {
	events repository.EventRepo
	log    *logger.Logger
}

func newAuditor(events repository.EventRepo, log *logger.Logger) *auditor {
	return &auditor{events: events, log: log}
}

func (a *auditor) record(ctx context.Context, e models.FlowEvent) {
	if a == nil || a.events == nil {
		return
	}
	if err := a.events.Append(ctx, e); err != nil && a.log != nil {
		a.log.Warnw("flow_event_append_failed", "err", err, "type", e.Type, "flow_id", e.FlowID, "entry_id", e.EntryID)
	}
}
