package handlers

import (
	"errors"
	"io"
	"net/http"

	"smart_climate/internal/flow"
	"smart_climate/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref = "invalid body: "
	errInternal        = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusFor maps service errors to HTTP status codes; 0 means unexpected.
func statusFor(err error) int {
	switch {
	case errors.Is(err, flow.ErrFlowNotFound), errors.Is(err, service.ErrEntryNotFound):
		return http.StatusNotFound
	case errors.Is(err, flow.ErrUnknownHandler), service.IsInvalidFilter(err):
		return http.StatusBadRequest
	case errors.Is(err, flow.ErrFlowFinished):
		return http.StatusConflict
	default:
		return 0
	}
}

// respondServiceError writes the mapped status for known errors and a logged
// 500 for everything else.
func (h *Handler) respondServiceError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if code := statusFor(err); code != 0 {
		c.JSON(code, gin.H{"error": err.Error()})
		return
	}
	h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
}

// bindInput decodes an optional JSON object body. An empty body yields nil.
func bindInput(c *gin.Context) (map[string]any, bool) {
	var input map[string]any
	if err := c.ShouldBindJSON(&input); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, true
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return nil, false
	}
	return input, true
}
