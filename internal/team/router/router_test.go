package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/database/dbtest"
	"github.com/festy23/softball_scoreboard/internal/team/handler"
	"github.com/festy23/softball_scoreboard/internal/team/repository"
	"github.com/festy23/softball_scoreboard/internal/team/service"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()
	db := dbtest.Open(t)
	h := handler.New(service.New(repository.New(db, logger), nil, logger), logger)

	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	}
	r := gin.New()
	RegisterRoutes(r, h, deny)

	t.Run("reads are public", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/teams", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"teams":[]}`, w.Body.String())
	})

	t.Run("writes go through middleware", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/teams", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
