// Package router provides award module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/softball_scoreboard/internal/award/handler"
)

// RegisterRoutes registers award module routes. write runs in front of
// every mutating route.
func RegisterRoutes(r gin.IRouter, h *handler.Handler, write ...gin.HandlerFunc) {
	r.GET("/awards", h.ListAwards)

	w := r.Group("", write...)
	w.POST("/awards", h.CreateAward)
	w.PUT("/awards/:id", h.UpdateAward)
	w.POST("/awards/import", h.ImportAwards)
	w.DELETE("/awards", h.ClearAwards)
}
