package handlers

import (
	"errors"
	"net/http"

	"smart_climate/internal/models"
	"smart_climate/internal/service"

	"github.com/gin-gonic/gin"
)

func bindCredentials(c *gin.Context) (models.Credentials, bool) {
	var cred models.Credentials
	if err := c.ShouldBindJSON(&cred); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return cred, false
	}
	return cred, true
}

// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.Credentials  true  "Credentials"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	cred, ok := bindCredentials(c)
	if !ok {
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), cred)
	switch {
	case errors.Is(err, service.ErrBlankCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": service.ErrUsernameTaken.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_up_failed", err, "username", cred.Username)
	default:
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      models.Credentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	cred, ok := bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), cred)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		if h.log != nil {
			h.log.Infow("auth_sign_in_rejected", "username", cred.Username)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case err != nil:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, "auth_sign_in_failed", err, "username", cred.Username)
	default:
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}
