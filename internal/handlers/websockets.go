package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"solar_dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12
	defaultInterval  = 5 * time.Second
	minInterval      = 50 * time.Millisecond
	maxInterval      = time.Minute
	maxIntervalMilli = 60_000

	wsTypeDashboard = "dashboard"
	wsTypeError     = "error"
)

type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	// the dashboard is served from other origins during development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Live dashboard
// @Description  WebSocket pushing {"type":"dashboard","data":Dashboard} every interval. Authenticate with ?token= or a bearer header.
// @Tags         dashboard
// @Param        token        query  string  false  "Session token"
// @Param        interval     query  string  false  "Push interval, e.g. 2s"
// @Param        interval_ms  query  int     false  "Push interval in milliseconds"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	sess, ok := h.wsSession(c)
	if !ok {
		return
	}
	interval := h.parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendDashboard(ctx, conn, sess); err != nil {
		h.log.Infow("ws_write_failed_initial", "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendDashboard(ctx, conn, sess); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// wsSession authenticates the upgrade request before any protocol switch.
func (h *Handler) wsSession(c *gin.Context) (service.Session, bool) {
	token := c.Query("token")
	if token == "" {
		var ok bool
		if token, ok = bearerToken(c.GetHeader("Authorization")); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errMissingAuth})
			return service.Session{}, false
		}
	}
	sess, err := h.services.ParseToken(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errInvalidToken})
		return service.Session{}, false
	}
	return sess, true
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 within bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v >= int(minInterval/time.Millisecond) && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultInterval
}

// startReader drains incoming frames so control messages are handled and closure detected.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendDashboard writes one dashboard frame. A service error is reported to the
// client as an error frame and ends the stream.
func (h *Handler) sendDashboard(ctx context.Context, conn *websocket.Conn, sess service.Session) error {
	d, err := h.services.GetDashboard(ctx, sess)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_dashboard_failed", "err", err, "user_id", sess.UserID)
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: errDashboard})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: wsTypeDashboard, Data: d})
}
