// Package handler provides HTTP handlers for statistics endpoints.
package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/statistics/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler handles HTTP requests for statistics endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new statistics handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetStandings handles GET /statistics/standings request.
// @Summary Get the standings
// @Tags Statistics
// @Produce json
// @Success 200 {object} model.StandingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/standings [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStandings(c *gin.Context) {
	resp, err := h.service.Standings(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting standings", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetLeaders handles GET /statistics/leaders request.
// @Summary Get batting and pitching leaders
// @Tags Statistics
// @Produce json
// @Param limit query int false "Rows per leaderboard"
// @Success 200 {object} model.LeadersResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /statistics/leaders [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetLeaders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 100 {
			errorResponse(c, "INVALID_REQUEST", "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	resp, err := h.service.Leaders(c.Request.Context(), limit)
	if err != nil {
		h.logger.Errorw("error getting leaders", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ExportXLSX handles GET /statistics/export.xlsx request.
// @Summary Download standings and leaders as XLSX
// @Tags Statistics
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /statistics/export.xlsx [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ExportXLSX(c *gin.Context) {
	data, err := h.service.ExportXLSX(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error exporting statistics", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="statistics.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// GetStandingsChart handles GET /statistics/standings/chart.png request.
// @Summary Standings bar chart
// @Tags Statistics
// @Produce png
// @Success 200 {file} binary
// @Failure 500 {object} ErrorResponse
// @Router /statistics/standings/chart.png [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetStandingsChart(c *gin.Context) {
	data, err := h.service.StandingsChart(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error rendering standings chart", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
