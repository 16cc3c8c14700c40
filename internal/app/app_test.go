package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/auth"
	"github.com/festy23/softball_scoreboard/internal/config"
	"github.com/festy23/softball_scoreboard/internal/database/dbtest"
	gameRepository "github.com/festy23/softball_scoreboard/internal/game/repository"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			Secret:   "a-very-long-test-secret",
			Issuer:   "softball-scoreboard",
			TokenTTL: time.Hour,
		},
		Tournament: config.TournamentConfig{
			ChampionshipGameID: 16,
			DefaultInnings:     7,
			LeaderboardLimit:   10,
			WriteRateLimit:     100,
			WriteRateBurst:     100,
			SeedFile:           "../seed/testdata/tournament.yaml",
		},
		GinMode: "test",
	}
}

func do(t *testing.T, a *App, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, req)
	return w
}

func TestApp_EndToEnd(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	db := dbtest.Open(t)
	cfg := testConfig()

	a, err := New(ctx, cfg, db, logger)
	require.NoError(t, err)

	token, err := auth.NewIssuer(cfg.Auth).Issue("scorer", auth.RoleAdmin, 0)
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		w := do(t, a, http.MethodGet, "/health", "", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("seeded roster", func(t *testing.T) {
		w := do(t, a, http.MethodGet, "/teams", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Teams []struct {
				Name string `json:"name"`
			} `json:"teams"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Teams, 3)
	})

	t.Run("writes need a token", func(t *testing.T) {
		w := do(t, a, http.MethodPut, "/games/1/innings/0/0", "", `{"value":"2"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("cell edit updates score and standings", func(t *testing.T) {
		w := do(t, a, http.MethodPut, "/games/1/innings/0/0", token, `{"value":"2"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		w = do(t, a, http.MethodPut, "/games/1/innings/0/1", token, `{"value":"1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Game struct {
				Score1 string `json:"score1"`
				Score2 string `json:"score2"`
			} `json:"game"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "2", resp.Game.Score1)
		assert.Equal(t, "1", resp.Game.Score2)

		w = do(t, a, http.MethodGet, "/statistics/standings", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		var standings struct {
			Rankable  bool `json:"rankable"`
			Standings []struct {
				TeamName string `json:"team_name"`
				W        int    `json:"w"`
			} `json:"standings"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &standings))
		assert.True(t, standings.Rankable)
		require.Len(t, standings.Standings, 3)
		assert.Equal(t, "Tigres", standings.Standings[0].TeamName)
		assert.Equal(t, 1, standings.Standings[0].W)
	})

	t.Run("metrics", func(t *testing.T) {
		w := do(t, a, http.MethodGet, "/metrics", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "scoreboard_http_requests_total")
		assert.Contains(t, w.Body.String(), "scoreboard_mutations_total")
	})

	t.Run("close flushes", func(t *testing.T) {
		require.NoError(t, a.Close(ctx))

		games, err := gameRepository.New(db, logger).List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "2", games[0].Score1)
		assert.Equal(t, "1", games[0].Score2)
	})
}

func TestApp_SeedRunsOnce(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop().Sugar()
	db := dbtest.Open(t)

	first, err := New(ctx, testConfig(), db, logger)
	require.NoError(t, err)
	require.NoError(t, first.Close(ctx))

	second, err := New(ctx, testConfig(), db, logger)
	require.NoError(t, err)
	assert.Len(t, second.Tournament.Games(), 4)
	require.NoError(t, second.Close(ctx))
}

func TestApp_BadRedisURL(t *testing.T) {
	cfg := testConfig()
	cfg.Tournament.SeedFile = ""
	cfg.Redis.URL = "not a url"

	_, err := New(context.Background(), cfg, dbtest.Open(t), zap.NewNop().Sugar())

	assert.ErrorContains(t, err, "REDIS_URL")
}
