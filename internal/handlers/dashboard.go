package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/common/expfmt"
)

const (
	statusOK        = "ok"
	statusSaved     = "saved"
	statusSignedOut = "signed_out"

	errSignUp          = "failed to create account"
	errSignOut         = "failed to sign out"
	errDashboard       = "failed to load dashboard"
	errProfile         = "failed to load profile"
	errProfileUpdate   = "failed to update profile"
	errOverride        = "failed to load developer override"
	errOverrideSave    = "failed to save developer override"
	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": statusOK})
}

// @Summary      Dashboard
// @Description  Weather-driven estimate of the panel with the session's developer override applied.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	sess := currentSession(c)
	d, err := h.services.GetDashboard(c.Request.Context(), sess)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errDashboard, "dashboard_failed", err, "user_id", sess.UserID)
		return
	}
	c.JSON(http.StatusOK, d)
}

// @Summary      Prometheus metrics
// @Description  Current un-overridden estimate in the Prometheus text format.
// @Tags         system
// @Produce      plain
// @Success      200  {string}  string
// @Router       /metrics [get]
func (h *Handler) metrics(c *gin.Context) {
	format := expfmt.NewFormat(expfmt.TypeTextPlain)
	c.Header("Content-Type", string(format))
	c.Status(http.StatusOK)

	enc := expfmt.NewEncoder(c.Writer, format)
	for _, mf := range h.services.Gather() {
		if err := enc.Encode(mf); err != nil {
			h.log.Errorw("metrics_encode_failed", "err", err, "family", mf.GetName())
			return
		}
	}
}
