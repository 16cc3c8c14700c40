package live

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	gameModel "github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/notify"
)

// SnapshotSource provides the state sent to a viewer on connect.
type SnapshotSource interface {
	Snapshot() gameModel.Snapshot
}

// Handler upgrades viewers to websockets.
type Handler struct {
	hub      *Hub
	source   SnapshotSource
	upgrader websocket.Upgrader
}

// NewHandler creates a live handler. An empty origins list accepts any
// origin.
func NewHandler(hub *Hub, source SnapshotSource, origins []string) *Handler {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return &Handler{
		hub:    hub,
		source: source,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return len(allowed) == 0 || allowed[r.Header.Get("Origin")]
			},
		},
	}
}

// Serve handles GET /live. The optional game query parameter limits
// game events to one game.
// @Summary Stream tournament events
// @Tags Live
// @Param game query int false "Game ID"
// @Success 101
// @Router /live [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Serve(c *gin.Context) {
	var gameID int64
	if raw := c.Query("game"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "game must be a positive integer",
			}})
			return
		}
		gameID = id
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.logger.Debugw("websocket upgrade failed", "error", err)
		return
	}

	cl := &client{id: uuid.NewString(), gameID: gameID, conn: conn, send: make(chan []byte, sendBufferSize)}

	snap := h.source.Snapshot()
	first, err := json.Marshal(notify.NewEvent(notify.SnapshotSent, snap.Version, snap))
	if err != nil {
		_ = conn.Close()
		return
	}
	cl.send <- first

	if !h.hub.add(cl) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}

	go cl.writePump()
	cl.readPump(h.hub)
}
