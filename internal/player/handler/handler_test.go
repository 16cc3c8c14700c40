package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/player/model"
	"github.com/festy23/softball_scoreboard/internal/player/service"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ImportText(ctx context.Context, teamID int64, text string) (*model.ImportResponse, error) {
	args := m.Called(ctx, teamID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResponse), args.Error(1)
}

func (m *mockService) ImportXLSX(ctx context.Context, teamID int64, r io.Reader) (*model.ImportResponse, error) {
	args := m.Called(ctx, teamID, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImportResponse), args.Error(1)
}

func (m *mockService) UpdatePlayer(ctx context.Context, id int64, req *model.UpdatePlayerRequest) (*engine.Player, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*engine.Player), args.Error(1)
}

var _ service.Service = (*mockService)(nil)

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/teams/:id/players/import", h.ImportRoster)
	r.PATCH("/players/:id", h.UpdatePlayer)
	return r
}

func send(r *gin.Engine, method, path, contentType string, body io.Reader) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHandler_ImportRoster(t *testing.T) {
	imported := &model.ImportResponse{TeamID: 1, Imported: 1, Skipped: []string{}, Players: []engine.Player{{ID: 1, Number: 7, Name: "Ana Perez", TeamID: 1}}}

	t.Run("plain text", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
		mockSvc.On("ImportText", mock.Anything, int64(1), "7, Perez, Ana").Return(imported, nil)

		w := send(router, http.MethodPost, "/teams/1/players/import", "text/plain", bytes.NewBufferString("7, Perez, Ana"))

		assert.Equal(t, http.StatusOK, w.Code)
		var resp model.ImportResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Imported)
		mockSvc.AssertExpectations(t)
	})

	t.Run("json text", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
		mockSvc.On("ImportText", mock.Anything, int64(1), "7\tPerez\tAna").Return(imported, nil)

		w := send(router, http.MethodPost, "/teams/1/players/import", "application/json", bytes.NewBufferString(`{"text":"7\tPerez\tAna"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("multipart workbook", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
		mockSvc.On("ImportXLSX", mock.Anything, int64(2), mock.Anything).Return(imported, nil)

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "roster.xlsx")
		require.NoError(t, err)
		_, err = part.Write(append([]byte("PK\x03\x04"), make([]byte, 16)...))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := send(router, http.MethodPost, "/teams/2/players/import", mw.FormDataContentType(), &body)

		assert.Equal(t, http.StatusOK, w.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("multipart with xlsx name but text body", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		part, err := mw.CreateFormFile("file", "roster.xlsx")
		require.NoError(t, err)
		_, err = part.Write([]byte("7, Perez, Ana"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		w := send(router, http.MethodPost, "/teams/2/players/import", mw.FormDataContentType(), &body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "ImportXLSX")
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			code   string
		}{
			{model.ErrTeamNotFound, http.StatusNotFound, "NOT_FOUND"},
			{model.ErrEmptyRoster, http.StatusBadRequest, "EMPTY_ROSTER"},
			{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
		}
		for _, tt := range tests {
			mockSvc := new(mockService)
			router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
			mockSvc.On("ImportText", mock.Anything, int64(1), mock.Anything).Return(nil, tt.err)

			w := send(router, http.MethodPost, "/teams/1/players/import", "text/plain", bytes.NewBufferString("x"))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		}
	})

	t.Run("bad team id", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		w := send(router, http.MethodPost, "/teams/0/players/import", "text/plain", bytes.NewBufferString("x"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_UpdatePlayer(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
		role := "C"
		mockSvc.On("UpdatePlayer", mock.Anything, int64(5), &model.UpdatePlayerRequest{Role: &role}).
			Return(&engine.Player{ID: 5, Role: "C"}, nil)

		w := send(router, http.MethodPatch, "/players/5", "application/json", bytes.NewBufferString(`{"role":"C"}`))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"role":"C"`)
	})

	t.Run("error mapping", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			code   string
		}{
			{model.ErrInvalidPlayer, http.StatusBadRequest, "INVALID_REQUEST"},
			{model.ErrPlayerNotFound, http.StatusNotFound, "NOT_FOUND"},
			{model.ErrDuplicateNumber, http.StatusConflict, "NUMBER_TAKEN"},
		}
		for _, tt := range tests {
			mockSvc := new(mockService)
			router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))
			mockSvc.On("UpdatePlayer", mock.Anything, int64(5), mock.Anything).Return(nil, tt.err)

			w := send(router, http.MethodPatch, "/players/5", "application/json", bytes.NewBufferString(`{"number":3}`))

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, errorCode(t, w))
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		mockSvc := new(mockService)
		router := setupRouter(New(mockSvc, zap.NewNop().Sugar()))

		w := send(router, http.MethodPatch, "/players/5", "application/json", bytes.NewBufferString(`{"number":"x"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockSvc.AssertNotCalled(t, "UpdatePlayer")
	})
}
