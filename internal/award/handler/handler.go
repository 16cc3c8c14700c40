// Package handler provides HTTP handlers for award endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/award/model"
	"github.com/festy23/softball_scoreboard/internal/award/service"
)

const maxImportBytes = 1 << 20

// Handler handles HTTP requests for award endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new award handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// ListAwards handles GET /awards request.
// @Summary List awards
// @Tags Awards
// @Produce json
// @Success 200 {object} model.AwardListResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /awards [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListAwards(c *gin.Context) {
	awards, err := h.service.ListAwards(c.Request.Context())
	if err != nil {
		h.fail(c, err, "error listing awards")
		return
	}
	c.JSON(http.StatusOK, model.AwardListResponse{Awards: awards})
}

// CreateAward handles POST /awards request.
// @Summary Create an award
// @Tags Awards
// @Accept json
// @Produce json
// @Param request body model.SaveAwardRequest true "Request"
// @Success 201 {object} model.Award
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 409 {object} ErrorResponse "Award exists"
// @Router /awards [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateAward(c *gin.Context) {
	var req model.SaveAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	award, err := h.service.CreateAward(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, err, "error creating award")
		return
	}
	c.JSON(http.StatusCreated, award)
}

// UpdateAward handles PUT /awards/:id request.
// @Summary Replace an award
// @Tags Awards
// @Accept json
// @Produce json
// @Param id path int true "Award ID"
// @Param request body model.SaveAwardRequest true "Request"
// @Success 200 {object} model.Award
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 404 {object} ErrorResponse "Award not found"
// @Router /awards/{id} [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateAward(c *gin.Context) {
	id, ok := awardID(c)
	if !ok {
		return
	}

	var req model.SaveAwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	award, err := h.service.UpdateAward(c.Request.Context(), id, &req)
	if err != nil {
		h.fail(c, err, "error updating award")
		return
	}
	c.JSON(http.StatusOK, award)
}

// ImportAwards handles POST /awards/import request. The body is either
// JSON with a text field or the document itself.
// @Summary Import an awards document
// @Tags Awards
// @Accept json,plain
// @Produce json
// @Success 200 {object} model.ImportAwardsResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /awards/import [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ImportAwards(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)

	var text string
	if strings.HasPrefix(c.ContentType(), "application/json") {
		var req model.ImportAwardsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
			return
		}
		text = req.Text
	} else {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
			return
		}
		text = string(body)
	}
	if strings.TrimSpace(text) == "" {
		errorResponse(c, "INVALID_REQUEST", "text is required", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ImportAwards(c.Request.Context(), text)
	if err != nil {
		h.fail(c, err, "error importing awards")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearAwards handles DELETE /awards request.
// @Summary Delete every award
// @Tags Awards
// @Success 204
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /awards [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ClearAwards(c *gin.Context) {
	if _, err := h.service.ClearAwards(c.Request.Context()); err != nil {
		h.fail(c, err, "error clearing awards")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, model.ErrAwardNotFound):
		errorResponse(c, "NOT_FOUND", "award not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidAward):
		errorResponse(c, "INVALID_REQUEST", "title is required and category must be ronda_inicial or partido_final", http.StatusBadRequest)
	case errors.Is(err, model.ErrNoAwards):
		errorResponse(c, "INVALID_REQUEST", "no awards found in document", http.StatusBadRequest)
	case errors.Is(err, model.ErrAwardExists):
		errorResponse(c, "AWARD_EXISTS", "award with this category and title already exists", http.StatusConflict)
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
