package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMsgSize     = 1 << 12 // 4 KB
	feedInterval     = 2 * time.Second
	feedMaxInterval  = 30 * time.Second
	feedMaxIntervalS = 30 // seconds, for ?interval_s
)

// wsEnvelope frames every message pushed down the feed.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsRecipeFeed upgrades the connection and periodically pushes the full
// recipe list. Requires the same session cookie as the REST endpoints.
func (h *Handler) wsRecipeFeed(c *gin.Context) {
	token, err := c.Cookie(h.cookie.Name)
	if err != nil || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}
	if _, err := h.services.CurrentUser(c.Request.Context(), token); err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errNotAuthorized})
		return
	}

	interval := h.parseFeedInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(wsMaxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	// Push the current list immediately.
	if err := h.sendRecipes(c.Request.Context(), conn); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case <-ticker.C:
			if err := h.sendRecipes(c.Request.Context(), conn); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// parseFeedInterval reads ?interval=5s or ?interval_s=5 with bounds.
func (h *Handler) parseFeedInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= feedMaxInterval {
			return d
		}
	}
	if s := c.Query("interval_s"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 && v <= feedMaxIntervalS {
			return time.Duration(v) * time.Second
		}
	}
	return feedInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendRecipes fetches and writes the recipe list with a write deadline.
func (h *Handler) sendRecipes(ctx context.Context, conn *websocket.Conn) error {
	recipes, err := h.services.Recipes.List(ctx)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_list_recipes_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteJSON(wsEnvelope{Type: "recipes", Data: recipes})
}
