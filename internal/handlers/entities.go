package handlers

import (
	"net/http"
	"strings"

	"smart_climate/internal/models"

	"github.com/gin-gonic/gin"
)

// EntityInput is one entity offered to the selectors.
type EntityInput struct {
	EntityID string `json:"entity_id" binding:"required" example:"climate.living_room"`
	Name     string `json:"name,omitempty" example:"Living room"`
}

// @Summary      List known entities
// @Tags         entities
// @Produce      json
// @Param        domain  query     string  false  "Entity domain"  example(climate)
// @Success      200     {object}  map[string]interface{}  "count, entities"
// @Failure      401     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/entities [get]
// @Security     BearerAuth
func (h *Handler) listEntities(c *gin.Context) {
	domain := strings.ToLower(strings.TrimSpace(c.Query("domain")))
	ents, err := h.services.ListEntities(c.Request.Context(), domain)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load entities", "entities_list_failed", err, "domain", domain)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(ents),
		"entities": ents,
	})
}

// @Summary      Upsert entities
// @Description  Adds or renames entities offered by the entity selectors. Unknown entities are still accepted by the flows.
// @Tags         entities
// @Accept       json
// @Produce      json
// @Param        body  body      []EntityInput  true  "Entities"
// @Success      200   {object}  map[string]int  "count"
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/entities [put]
// @Security     BearerAuth
func (h *Handler) upsertEntities(c *gin.Context) {
	var in []EntityInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	ents := make([]models.Entity, 0, len(in))
	for i, e := range in {
		id := strings.ToLower(strings.TrimSpace(e.EntityID))
		if !strings.Contains(id, ".") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "entity_id must look like <domain>.<object_id>", "index": i})
			return
		}
		ents = append(ents, models.Entity{EntityID: id, Name: e.Name})
	}
	if err := h.services.UpsertEntities(c.Request.Context(), ents); err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to store entities", "entities_upsert_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(ents)})
}
