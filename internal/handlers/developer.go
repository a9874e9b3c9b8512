package handlers

import (
	"errors"
	"net/http"

	"solar_dashboard/internal/models"
	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// DeveloperOverrideRequest replaces the session's override. Empty strings unset a field.
type DeveloperOverrideRequest struct {
	// Integer percentage; non-numeric values are ignored on the dashboard
	Efficiency string `json:"efficiency" example:"35"`
	// One of Good, Warning, Critical, N/A
	SystemHealth string `json:"system_health" example:"Critical"`
}

// @Summary      Developer page
// @Description  Account details and the override of the current session.
// @Tags         developer
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "name, email, override"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/developer [get]
// @Security     BearerAuth
func (h *Handler) getDeveloper(c *gin.Context) {
	ctx := c.Request.Context()
	sess := currentSession(c)

	name, email := "User", ""
	u, err := h.services.GetProfile(ctx, sess.UserID)
	switch {
	case err == nil:
		name, email = u.Name, u.Email
	case !errors.Is(err, service.ErrUserNotFound):
		h.logAndJSONError(c, http.StatusInternalServerError, errProfile, "developer_profile_failed", err, "user_id", sess.UserID)
		return
	}

	o, err := h.services.GetOverride(ctx, sess.SessionID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errOverride, "developer_override_failed", err, "user_id", sess.UserID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":     name,
		"email":    email,
		"override": o,
	})
}

// @Summary      Set developer override
// @Description  Replaces both override fields for the current session; both empty clears it.
// @Tags         developer
// @Accept       json
// @Produce      json
// @Param        body  body      DeveloperOverrideRequest  true  "Override"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/developer [post]
// @Security     BearerAuth
func (h *Handler) setDeveloper(c *gin.Context) {
	var req DeveloperOverrideRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	sess := currentSession(c)
	err := h.services.SetOverride(c.Request.Context(), sess, models.DeveloperOverride{
		Efficiency:   req.Efficiency,
		SystemHealth: req.SystemHealth,
	})
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"status": statusSaved})
	case errors.Is(err, service.ErrInvalidHealthLabel):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errOverrideSave, "developer_override_save_failed", err, "user_id", sess.UserID)
	}
}
