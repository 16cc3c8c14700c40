package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/award/handler"
	"github.com/festy23/softball_scoreboard/internal/award/repository"
	"github.com/festy23/softball_scoreboard/internal/award/service"
	"github.com/festy23/softball_scoreboard/internal/database/dbtest"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop().Sugar()
	h := handler.New(service.New(repository.New(dbtest.Open(t), logger), logger), logger)

	deny := func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	}
	r := gin.New()
	RegisterRoutes(r, h, deny)

	t.Run("list is public", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/awards", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"awards":[]}`, w.Body.String())
	})

	writes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/awards"},
		{http.MethodPut, "/awards/1"},
		{http.MethodPost, "/awards/import"},
		{http.MethodDelete, "/awards"},
	}
	for _, tt := range writes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}
