package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      List entries
// @Tags         entries
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, entries"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/entries [get]
// @Security     BearerAuth
func (h *Handler) listEntries(c *gin.Context) {
	entries, err := h.services.ListEntries(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load entries", "entries_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// @Summary      Get entry
// @Tags         entries
// @Produce      json
// @Param        entry_id  path      string  true  "Entry id"
// @Success      200       {object}  models.ConfigEntry
// @Failure      404       {object}  map[string]string
// @Router       /api/v1/entries/{entry_id} [get]
// @Security     BearerAuth
func (h *Handler) getEntry(c *gin.Context) {
	entryID := c.Param("entry_id")
	e, err := h.services.GetEntry(c.Request.Context(), entryID)
	if err != nil {
		h.respondServiceError(c, "entry_get_failed", err, "entry_id", entryID)
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary      Remove entry
// @Tags         entries
// @Param        entry_id  path  string  true  "Entry id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/entries/{entry_id} [delete]
// @Security     BearerAuth
func (h *Handler) removeEntry(c *gin.Context) {
	entryID := c.Param("entry_id")
	if err := h.services.RemoveEntry(c.Request.Context(), entryID); err != nil {
		h.respondServiceError(c, "entry_remove_failed", err, "entry_id", entryID)
		return
	}
	c.Status(http.StatusNoContent)
}
