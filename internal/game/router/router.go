// Package router provides game module routes registration.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/festy23/softball_scoreboard/internal/game/handler"
)

// RegisterRoutes registers game module routes. Reads are public; edits run
// behind the write middleware.
func RegisterRoutes(r gin.IRouter, h *handler.Handler, write ...gin.HandlerFunc) {
	r.GET("/games", h.ListGames)
	r.GET("/games/:id", h.GetGame)
	r.GET("/championship", h.GetChampionship)

	w := r.Group("", write...)
	w.POST("/games/flush", h.Flush)
	w.PATCH("/games/:id", h.UpdateGame)
	w.PUT("/games/:id/innings/:inning/:team", h.SetCell)
	w.POST("/games/:id/swap", h.SwapTeams)
	w.PUT("/games/:id/batting/:player", h.PutBatting)
	w.PUT("/games/:id/pitching/:player", h.PutPitching)
	w.POST("/games/:id/import", h.ImportBoxScore)
	w.POST("/tournament/reset", h.ResetTournament)
}
