// Package router provides statistics module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/softball_scoreboard/internal/statistics/handler"
)

// RegisterRoutes registers statistics module routes. All of them are public.
func RegisterRoutes(r gin.IRouter, h *handler.Handler) {
	r.GET("/statistics/standings", h.GetStandings)
	r.GET("/statistics/standings/chart.png", h.GetStandingsChart)
	r.GET("/statistics/leaders", h.GetLeaders)
	r.GET("/statistics/export.xlsx", h.ExportXLSX)
}
