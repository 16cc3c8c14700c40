// Package handler provides HTTP handlers for player endpoints.
package handler

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/player/model"
	"github.com/festy23/softball_scoreboard/internal/player/service"
)

const maxImportBytes = 5 << 20

// xlsxMagic is the zip local file header every XLSX workbook starts with.
var xlsxMagic = []byte("PK\x03\x04")

// Handler handles HTTP requests for player endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new player handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ImportRoster handles POST /teams/:id/players/import request.
//
// The roster may be sent as a multipart "file" field (XLSX or text), as
// JSON {"text": "..."} or as a text/plain body.
// @Summary Import a team roster
// @Tags Players
// @Accept json,plain,mpfd
// @Produce json
// @Param id path int true "Team ID"
// @Success 200 {object} model.ImportResponse
// @Failure 400 {object} ErrorResponse "Bad request (INVALID_REQUEST, EMPTY_ROSTER)"
// @Failure 404 {object} ErrorResponse "Team not found"
// @Router /teams/{id}/players/import [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ImportRoster(c *gin.Context) {
	teamID, ok := idParam(c, "id")
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	body, err := readRoster(c)
	if err != nil {
		errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		return
	}

	var resp *model.ImportResponse
	if bytes.HasPrefix(body, xlsxMagic) {
		resp, err = h.service.ImportXLSX(c.Request.Context(), teamID, bytes.NewReader(body))
	} else {
		resp, err = h.service.ImportText(c.Request.Context(), teamID, string(body))
	}
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTeamNotFound):
			notFoundResponse(c, "team not found")
		case errors.Is(err, model.ErrEmptyRoster):
			errorResponse(c, "EMPTY_ROSTER", "no player lines found", http.StatusBadRequest)
		case errors.Is(err, model.ErrUnsupportedFormat):
			errorResponse(c, "INVALID_REQUEST", "file is not a readable roster", http.StatusBadRequest)
		default:
			h.logger.Errorw("error importing roster", "team_id", teamID, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func readRoster(c *gin.Context) ([]byte, error) {
	contentType := c.ContentType()
	switch {
	case strings.HasPrefix(contentType, "multipart/"):
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, errors.New("file field is required")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.New("cannot open uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, errors.New("cannot read uploaded file")
		}
		if strings.EqualFold(filepath.Ext(fh.Filename), ".xlsx") && !bytes.HasPrefix(data, xlsxMagic) {
			return nil, errors.New("file is not an XLSX workbook")
		}
		return data, nil
	case contentType == "application/json":
		var req model.ImportTextRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, errors.New("text is required")
		}
		return []byte(req.Text), nil
	default:
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, errors.New("cannot read request body")
		}
		return data, nil
	}
}

// UpdatePlayer handles PATCH /players/:id request.
// @Summary Update a player
// @Tags Players
// @Accept json
// @Produce json
// @Param id path int true "Player ID"
// @Param request body model.UpdatePlayerRequest true "Fields to change"
// @Success 200 {object} map[string]engine.Player "Response wrapped in player object"
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Player not found"
// @Failure 409 {object} ErrorResponse "Number already taken"
// @Router /players/{id} [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdatePlayer(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdatePlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	player, err := h.service.UpdatePlayer(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidPlayer):
			errorResponse(c, "INVALID_REQUEST", err.Error(), http.StatusBadRequest)
		case errors.Is(err, model.ErrPlayerNotFound):
			notFoundResponse(c, "player not found")
		case errors.Is(err, model.ErrDuplicateNumber):
			errorResponse(c, "NUMBER_TAKEN", "uniform number already used on this team", http.StatusConflict)
		default:
			h.logger.Errorw("error updating player", "player_id", id, "error", err)
			errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"player": player})
}
