package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"duitku/internal/events"
	"duitku/internal/logger"
)

// WSHandler upgrades requests to websocket connections subscribed to the
// authenticated user's notification channel.
type WSHandler struct {
	hub      *events.Hub
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(hub *events.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Subscribe handles the websocket upgrade for notification delivery.
// @Summary     Subscribe to notifications
// @Description Upgrade to a websocket subscribed to the authenticated user's notification events
// @Tags        notifications
// @Security    BearerAuth
// @Success     101 "Switching protocols"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /ws [get]
func (h *WSHandler) Subscribe(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Get().Warnw("Websocket upgrade failed", "error", err, "user_id", userID)
		return
	}

	h.hub.Register(events.UserChannel(userID), ws)
}
