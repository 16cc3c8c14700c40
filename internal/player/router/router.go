// Package router provides player module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/softball_scoreboard/internal/player/handler"
)

// RegisterRoutes registers player module routes behind the write middleware.
func RegisterRoutes(r gin.IRouter, h *handler.Handler, write ...gin.HandlerFunc) {
	w := r.Group("", write...)
	w.POST("/teams/:id/players/import", h.ImportRoster)
	w.PATCH("/players/:id", h.UpdatePlayer)
}
