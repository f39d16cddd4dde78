package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"smart_climate/internal/service"

	"github.com/gin-gonic/gin"
)

// logsQuery is the query string of GET /api/v1/logs.
type logsQuery struct {
	From    string `form:"from"`
	To      string `form:"to"`
	Type    string `form:"type"`
	FlowID  string `form:"flow_id"`
	EntryID string `form:"entry_id"`
}

var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly}

// parseQueryTime accepts RFC3339, "YYYY-MM-DD HH:MM:SS" and "YYYY-MM-DD",
// all read as UTC. A date-only upper bound covers the whole day.
func parseQueryTime(s string, upper bool) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if upper && layout == time.DateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q; use RFC3339, 'YYYY-MM-DD HH:MM:SS' or YYYY-MM-DD", s)
}

func (q logsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{
		Type:    strings.TrimSpace(q.Type),
		FlowID:  q.FlowID,
		EntryID: q.EntryID,
	}
	var err error
	if q.From != "" {
		if f.From, err = parseQueryTime(q.From, false); err != nil {
			return f, fmt.Errorf("from: %w", err)
		}
	}
	if q.To != "" {
		if f.To, err = parseQueryTime(q.To, true); err != nil {
			return f, fmt.Errorf("to: %w", err)
		}
	}
	return f, nil
}

// @Summary      List flow events
// @Description  Audit log of flow activity. A date-only 'to' is inclusive of that whole day.
// @Tags         logs
// @Produce      json
// @Param        from      query  string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to        query  string  false  "End of range, same layouts"  example(2025-08-31)
// @Param        type      query  string  false  "Event type"  Enums(FLOW_STARTED,FLOW_ABORTED,VALIDATION_FAILED,ENTRY_CREATED,OPTIONS_UPDATED,ENTRY_REMOVED,IMPORT_SKIPPED)
// @Param        flow_id   query  string  false  "Only events of this flow"
// @Param        entry_id  query  string  false  "Only events of this entry"
// @Success      200  {object}  map[string]interface{}  "count, events"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	var q logsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := q.filter()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.services.EventLog.List(c.Request.Context(), f)
	switch {
	case service.IsInvalidFilter(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load logs", "logs_list_failed", err,
			"from", f.From, "to", f.To, "type", f.Type)
	default:
		c.JSON(http.StatusOK, gin.H{"count": len(events), "events": events})
	}
}
