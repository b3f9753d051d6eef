package handlers

import (
	"net/http"

	"github.com/MRDEADPOOL12/To-do/internal/logger"
	"github.com/MRDEADPOOL12/To-do/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WS upgrades an authenticated connection to a live event stream. The
// token travels in the query string since browsers cannot set headers on
// WebSocket handshakes.
func (h *Handler) WS(hub *ws.Hub, allowedOrigin string) gin.HandlerFunc {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" {
				return true
			}
			return r.Header.Get("Origin") == allowedOrigin
		},
	}

	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userID, err := h.Tokens.Parse(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if _, err := h.Users.GetByID(c.Request.Context(), userID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "error", err)
			return
		}

		client := ws.NewClient(userID, conn, hub)
		go client.Run()
	}
}
