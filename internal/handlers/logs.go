package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const errLogs = "failed to load activity"

var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", time.DateOnly}

// @Summary      Account activity
// @Description  Newest first. Times are RFC3339, 'YYYY-MM-DD HH:MM:SS' or 'YYYY-MM-DD'; a date-only 'to' covers the whole day.
// @Tags         logs
// @Produce      json
// @Param        from   query     string  false  "Start of range"  example(2025-09-01)
// @Param        to     query     string  false  "End of range"    example(2025-09-30)
// @Param        type   query     string  false  "Event type"  Enums(SIGN_UP,SIGN_OUT,PROFILE_UPDATE,OVERRIDE_SET,OVERRIDE_CLEARED)
// @Param        limit  query     int     false  "Page size, at most 500"
// @Success      200    {object}  map[string]interface{}  "count, events"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/logs [get]
// @Security     BearerAuth
func (h *Handler) getLogs(c *gin.Context) {
	sess := currentSession(c)
	filter, err := logFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.UserID = sess.UserID

	events, err := h.services.EventLog.List(c.Request.Context(), filter)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidTimeRange),
		errors.Is(err, service.ErrUnknownEventType),
		errors.Is(err, service.ErrInvalidLimit):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errLogs, "logs_list_failed", err, "user_id", sess.UserID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(events),
		"events": events,
	})
}

func logFilterFromQuery(c *gin.Context) (service.LogFilter, error) {
	f := service.LogFilter{Type: c.Query("type")}

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, fmt.Errorf("invalid 'from': %w", err)
		}
		f.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryTime(qs)
		if err != nil {
			return f, fmt.Errorf("invalid 'to': %w", err)
		}
		if !strings.ContainsAny(qs, "T ") {
			t = t.Add(24*time.Hour - time.Second)
		}
		f.To = t
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil {
			return f, fmt.Errorf("invalid 'limit' %q", qs)
		}
		f.Limit = n
	}
	return f, nil
}

// parseQueryTime tries each accepted layout and returns the instant in UTC.
func parseQueryTime(s string) (time.Time, error) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q; use RFC3339 or YYYY-MM-DD", s)
}
