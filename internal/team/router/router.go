// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/softball_scoreboard/internal/team/handler"
)

// RegisterRoutes registers team module routes. write runs in front of
// every mutating route.
func RegisterRoutes(r gin.IRouter, h *handler.Handler, write ...gin.HandlerFunc) {
	r.GET("/teams", h.ListTeams)
	r.GET("/teams/:id", h.GetTeam)

	w := r.Group("", write...)
	w.POST("/teams", h.CreateTeam)
}
