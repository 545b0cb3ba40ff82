package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

func newUpgrader(allowed []string) *websocket.Upgrader {
	return &websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || allowAll(allowed) {
				return true
			}
			for _, candidate := range allowed {
				if strings.EqualFold(candidate, origin) {
					return true
				}
			}
			return false
		},
	}
}

// SessionEvents streams every session view over a websocket until the client leaves or
// the session closes.
func (h *Handler) SessionEvents(upgrader *websocket.Upgrader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		updates, unsubscribe, err := h.sessionSvc.Subscribe(c.Request.Context(), id)
		if err != nil {
			abortWithError(c, domainError(err))
			return
		}
		defer unsubscribe()

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.logger.Warn("websocket upgrade failed", "session_id", id, "error", err)
			return
		}
		defer conn.Close()
		h.logger.Info("event stream opened", "session_id", id)

		done := make(chan struct{})
		go h.readPump(conn, done)

		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case view, ok := <-updates:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if !ok {
					_ = conn.WriteMessage(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
					return
				}
				if err := conn.WriteJSON(view); err != nil {
					h.logger.Debug("event stream write failed", "session_id", id, "error", err)
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-done:
				h.logger.Info("event stream closed by client", "session_id", id)
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed.
func (h *Handler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("event stream read failed", "error", err)
			}
			return
		}
	}
}
