package handlers

import (
	"net/http"

	sc "smart_climate"

	"github.com/gin-gonic/gin"
)

const defaultHandler = sc.Domain

// StartFlowRequest selects the integration whose setup flow is opened.
type StartFlowRequest struct {
	Handler string `json:"handler" binding:"required" example:"smart_climate"`
}

// @Summary      Start setup flow
// @Description  Opens a setup flow and returns its form. Nothing is stored yet.
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        body  body      StartFlowRequest  true  "Handler"
// @Success      200   {object}  flow.Result
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/flows [post]
// @Security     BearerAuth
func (h *Handler) startFlow(c *gin.Context) {
	var req StartFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	res, err := h.services.StartSetup(c.Request.Context(), req.Handler)
	if err != nil {
		h.respondServiceError(c, "flow_start_failed", err, "handler", req.Handler)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Show setup form
// @Tags         flows
// @Produce      json
// @Param        flow_id  path      string  true  "Flow id"
// @Success      200      {object}  flow.Result
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/flows/{flow_id} [get]
// @Security     BearerAuth
func (h *Handler) progressFlow(c *gin.Context) {
	flowID := c.Param("flow_id")
	res, err := h.services.ProgressSetup(c.Request.Context(), flowID)
	if err != nil {
		h.respondServiceError(c, "flow_progress_failed", err, "flow_id", flowID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Submit setup form
// @Description  Returns the form again with per-field errors, or create_entry with the stored entry id.
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        flow_id  path      string                  true  "Flow id"
// @Param        body     body      map[string]interface{}  true  "Field values"
// @Success      200      {object}  flow.Result
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/flows/{flow_id} [post]
// @Security     BearerAuth
func (h *Handler) submitFlow(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}
	flowID := c.Param("flow_id")
	res, err := h.services.SubmitSetup(c.Request.Context(), flowID, input)
	if err != nil {
		h.respondServiceError(c, "flow_submit_failed", err, "flow_id", flowID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Abort setup flow
// @Tags         flows
// @Param        flow_id  path  string  true  "Flow id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/flows/{flow_id} [delete]
// @Security     BearerAuth
func (h *Handler) abortFlow(c *gin.Context) {
	flowID := c.Param("flow_id")
	if err := h.services.AbortSetup(c.Request.Context(), flowID); err != nil {
		h.respondServiceError(c, "flow_abort_failed", err, "flow_id", flowID)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Import record
// @Description  Runs a record through the setup submit step.
// @Tags         flows
// @Accept       json
// @Produce      json
// @Param        handler  query     string                  false  "Handler domain (default smart_climate)"
// @Param        body     body      map[string]interface{}  true   "Record"
// @Success      200   {object}  flow.Result
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/flows/import [post]
// @Security     BearerAuth
func (h *Handler) importRecord(c *gin.Context) {
	record, ok := bindInput(c)
	if !ok {
		return
	}
	handler := c.DefaultQuery("handler", defaultHandler)
	res, err := h.services.Import(c.Request.Context(), handler, record)
	if err != nil {
		h.respondServiceError(c, "flow_import_failed", err, "handler", handler)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Start options flow
// @Description  Opens an options flow pre-filled with the entry's current values.
// @Tags         options
// @Produce      json
// @Param        entry_id  path      string  true  "Entry id"
// @Success      200       {object}  flow.Result
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/entries/{entry_id}/options [post]
// @Security     BearerAuth
func (h *Handler) startOptions(c *gin.Context) {
	entryID := c.Param("entry_id")
	res, err := h.services.StartOptions(c.Request.Context(), entryID)
	if err != nil {
		h.respondServiceError(c, "options_start_failed", err, "entry_id", entryID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Show options form
// @Tags         options
// @Produce      json
// @Param        flow_id  path      string  true  "Flow id"
// @Success      200      {object}  flow.Result
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/options/{flow_id} [get]
// @Security     BearerAuth
func (h *Handler) progressOptions(c *gin.Context) {
	flowID := c.Param("flow_id")
	res, err := h.services.ProgressOptions(c.Request.Context(), flowID)
	if err != nil {
		h.respondServiceError(c, "options_progress_failed", err, "flow_id", flowID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Submit options form
// @Tags         options
// @Accept       json
// @Produce      json
// @Param        flow_id  path      string                  true  "Flow id"
// @Param        body     body      map[string]interface{}  true  "Field values"
// @Success      200      {object}  flow.Result
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/v1/options/{flow_id} [post]
// @Security     BearerAuth
func (h *Handler) submitOptions(c *gin.Context) {
	input, ok := bindInput(c)
	if !ok {
		return
	}
	flowID := c.Param("flow_id")
	res, err := h.services.SubmitOptions(c.Request.Context(), flowID, input)
	if err != nil {
		h.respondServiceError(c, "options_submit_failed", err, "flow_id", flowID)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary      Abort options flow
// @Tags         options
// @Param        flow_id  path  string  true  "Flow id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/options/{flow_id} [delete]
// @Security     BearerAuth
func (h *Handler) abortOptions(c *gin.Context) {
	flowID := c.Param("flow_id")
	if err := h.services.AbortOptions(c.Request.Context(), flowID); err != nil {
		h.respondServiceError(c, "options_abort_failed", err, "flow_id", flowID)
		return
	}
	c.Status(http.StatusNoContent)
}
