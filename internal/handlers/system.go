package handlers

import (
	"net/http"

	"smart_climate/internal/schema"

	"github.com/gin-gonic/gin"
)

const statusOK = "ok"

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Configuration schema
// @Description  JSON Schema of the smart_climate configuration record
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/schema [get]
// @Security     BearerAuth
func (h *Handler) getSchema(c *gin.Context) {
	c.JSON(http.StatusOK, schema.JSONSchema())
}
