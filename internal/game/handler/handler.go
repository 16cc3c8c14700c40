// Package handler provides HTTP handlers for game endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/game/service"
	"github.com/festy23/softball_scoreboard/internal/importer"
)

const maxBoxScoreBytes = 1 << 20

// Handler handles HTTP requests for game endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new game handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListGames handles GET /games request.
// @Summary List games
// @Tags Games
// @Produce json
// @Success 200 {object} model.GameListResponse
// @Router /games [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListGames(c *gin.Context) {
	c.JSON(http.StatusOK, model.GameListResponse{Games: h.service.Games()})
}

// GetGame handles GET /games/:id request.
// @Summary Get a game
// @Tags Games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /games/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	game, err := h.service.Game(id)
	if err != nil {
		h.fail(c, "error getting game", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// GetChampionship handles GET /championship request.
// @Summary Championship game and champion
// @Tags Games
// @Produce json
// @Success 200 {object} model.ChampionshipResponse
// @Router /championship [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetChampionship(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Championship())
}

// UpdateGame handles PATCH /games/:id request.
// @Summary Update game fields
// @Tags Games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param request body model.UpdateGameRequest true "Fields to change"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /games/{id} [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.service.UpdateGame(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, "error updating game", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// SetCell handles PUT /games/:id/innings/:inning/:team request.
//
// inning is the zero-based row; writing one past the last row adds an
// inning. team is 0 for the visitor and 1 for the home side.
// @Summary Set an inning cell
// @Tags Games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param inning path int true "Inning index"
// @Param team path int true "0 visitor, 1 home"
// @Param request body model.SetCellRequest true "Cell value"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /games/{id}/innings/{inning}/{team} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SetCell(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	inning, err := strconv.Atoi(c.Param("inning"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "inning must be an integer", http.StatusBadRequest)
		return
	}
	team, err := strconv.Atoi(c.Param("team"))
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", "team must be 0 or 1", http.StatusBadRequest)
		return
	}

	var req model.SetCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.service.SetCell(c.Request.Context(), id, inning, team, req.Value)
	if err != nil {
		h.fail(c, "error setting inning cell", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// SwapTeams handles POST /games/:id/swap request.
// @Summary Swap visitor and home
// @Tags Games
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Router /games/{id}/swap [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SwapTeams(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	game, err := h.service.Swap(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "error swapping teams", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// PutBatting handles PUT /games/:id/batting/:player request.
// @Summary Record a batting line
// @Tags Games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param player path int true "Player ID"
// @Param request body engine.BattingStat true "Batting line"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Game or player not found"
// @Router /games/{id}/batting/{player} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) PutBatting(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := idParam(c, "player")
	if !ok {
		return
	}

	var stat engine.BattingStat
	if err := c.ShouldBindJSON(&stat); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.service.UpsertBatting(c.Request.Context(), id, playerID, stat)
	if err != nil {
		h.fail(c, "error saving batting line", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// PutPitching handles PUT /games/:id/pitching/:player request.
// @Summary Record a pitching line
// @Tags Games
// @Accept json
// @Produce json
// @Param id path int true "Game ID"
// @Param player path int true "Player ID"
// @Param request body engine.PitchingStat true "Pitching line"
// @Success 200 {object} map[string]engine.Game "Response wrapped in game object"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Game or player not found"
// @Router /games/{id}/pitching/{player} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) PutPitching(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	playerID, ok := idParam(c, "player")
	if !ok {
		return
	}

	var stat engine.PitchingStat
	if err := c.ShouldBindJSON(&stat); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	game, err := h.service.UpsertPitching(c.Request.Context(), id, playerID, stat)
	if err != nil {
		h.fail(c, "error saving pitching line", id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"game": game})
}

// ImportBoxScore handles POST /games/:id/import request.
// @Summary Import a box score
// @Tags Games
// @Accept json,plain
// @Produce json
// @Param id path int true "Game ID"
// @Success 200 {object} model.ImportBoxScoreResponse
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST, MALFORMED_BOX_SCORE, GAME_MISMATCH)"
// @Failure 404 {object} ErrorResponse "Game not found"
// @Failure 409 {object} ErrorResponse "Teams not assigned"
// @Router /games/{id}/import [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ImportBoxScore(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBoxScoreBytes)

	var text string
	if c.ContentType() == "application/json" {
		var req model.ImportBoxScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, "INVALID_REQUEST", "text is required", http.StatusBadRequest)
			return
		}
		text = req.Text
	} else {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "cannot read request body", http.StatusBadRequest)
			return
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		errorResponse(c, "INVALID_REQUEST", "box score is empty", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ImportBoxScore(c.Request.Context(), id, text)
	if err != nil {
		h.fail(c, "error importing box score", id, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Flush handles POST /games/flush request.
// @Summary Save pending changes now
// @Tags Games
// @Produce json
// @Success 200 {object} model.FlushResponse
// @Failure 500 {object} model.FlushResponse "Some units could not be saved"
// @Router /games/flush [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) Flush(c *gin.Context) {
	saved, err := h.service.Flush(c.Request.Context())
	resp := model.FlushResponse{Saved: saved, Errors: []string{}}
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			resp.Errors = append(resp.Errors, e.Error())
		}
	} else {
		resp.Errors = append(resp.Errors, err.Error())
	}
	c.JSON(http.StatusInternalServerError, resp)
}

// ResetTournament handles POST /tournament/reset request.
// @Summary Clear every result
// @Tags Games
// @Success 204
// @Failure 503 {object} ErrorResponse "Shutting down"
// @Router /tournament/reset [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ResetTournament(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context()); err != nil {
		h.fail(c, "error resetting tournament", 0, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// fail maps service errors to responses.
func (h *Handler) fail(c *gin.Context, msg string, id int64, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		notFoundResponse(c, "game not found")
	case errors.Is(err, model.ErrPlayerNotFound):
		notFoundResponse(c, "player not found")
	case errors.Is(err, model.ErrInvalidField), errors.Is(err, engine.ErrInvalidCell):
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrPlayerNotInGame):
		errorResponse(c, "PLAYER_NOT_IN_GAME", err.Error(), http.StatusBadRequest)
	case errors.Is(err, importer.ErrMalformedBoxScore):
		errorResponse(c, "MALFORMED_BOX_SCORE", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrGameIDMismatch):
		errorResponse(c, "GAME_MISMATCH", err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrTeamsNotAssigned):
		errorResponse(c, "TEAMS_NOT_ASSIGNED", "assign both teams before importing", http.StatusConflict)
	case errors.Is(err, model.ErrResetInProgress):
		errorResponse(c, "RESET_IN_PROGRESS", "tournament reset in progress, retry shortly", http.StatusConflict)
	case errors.Is(err, model.ErrClosed):
		errorResponse(c, "UNAVAILABLE", "server is shutting down", http.StatusServiceUnavailable)
	default:
		h.logger.Errorw(msg, "game_id", id, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
