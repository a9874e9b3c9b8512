package handlers

import (
	"net/http"
	"strings"
	"time"

	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID    = "userId"
	ctxSessionID = "sessionId"
	ctxSession   = "session"

	errMissingAuth  = "missing Authorization header"
	errInvalidAuth  = "invalid Authorization header format"
	errInvalidToken = "invalid or expired token"
)

func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
		return
	}

	token, ok := bearerToken(header)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidAuth})
		return
	}

	sess, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return
	}

	c.Set(ctxUserID, sess.UserID)
	c.Set(ctxSessionID, sess.SessionID)
	c.Set(ctxSession, sess)
	c.Next()
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// currentSession returns the session stored by sessionMiddleware.
func currentSession(c *gin.Context) service.Session {
	v, _ := c.Get(ctxSession)
	sess, _ := v.(service.Session)
	return sess
}

// requestLogger emits one structured line per request.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()

	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"client_ip", c.ClientIP(),
	)
}
