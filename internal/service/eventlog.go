package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"smart_climate/internal/models"
	"smart_climate/internal/repository"
)

// EventLogService answers audit log queries.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: from must not be after to")
	errUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = []string{
	models.EventFlowStarted,
	models.EventFlowAborted,
	models.EventValidationFailed,
	models.EventEntryCreated,
	models.EventOptionsUpdated,
	models.EventEntryRemoved,
	models.EventImportSkipped,
}

// normalizeFilter moves both bounds to UTC, canonicalizes the event type and
// rejects reversed ranges or unknown types.
func normalizeFilter(f LogFilter) (LogFilter, error) {
	if !f.From.IsZero() {
		f.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		f.To = f.To.UTC()
	}
	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	f.FlowID = strings.TrimSpace(f.FlowID)
	f.EntryID = strings.TrimSpace(f.EntryID)

	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return LogFilter{}, errInvalidTimeRange
	}
	if f.Type != "" && !slices.Contains(knownEventTypes, f.Type) {
		return LogFilter{}, fmt.Errorf("%w: %q", errUnknownEventType, f.Type)
	}
	return f, nil
}

// IsInvalidFilter reports whether err comes from a rejected LogFilter.
func IsInvalidFilter(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, errUnknownEventType)
}

// List returns matching events oldest first. Time and type are pushed down to
// the repository; flow and entry ids are matched here.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.FlowEvent, error) {
	nf, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, nf.From, nf.To, nf.Type)
	if err != nil {
		return nil, fmt.Errorf("list flow events: %w", err)
	}
	if nf.FlowID == "" && nf.EntryID == "" {
		return events, nil
	}
	out := events[:0:0]
	for _, e := range events {
		if nf.FlowID != "" && e.FlowID != nf.FlowID {
			continue
		}
		if nf.EntryID != "" && e.EntryID != nf.EntryID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
