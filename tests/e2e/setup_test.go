//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festy23/softball_scoreboard/internal/app"
	"github.com/festy23/softball_scoreboard/internal/auth"
	"github.com/festy23/softball_scoreboard/internal/config"
	"github.com/festy23/softball_scoreboard/internal/database/migrate"
	"github.com/festy23/softball_scoreboard/pkg/logger"
)

const (
	seedFile       = "../../internal/seed/testdata/tournament.yaml"
	migrationsPath = "../../migrations"
)

// E2ETestSuite runs the whole service in-process against a real PostgreSQL.
type E2ETestSuite struct {
	suite.Suite
	ctx         context.Context
	pgContainer *postgres.PostgresContainer
	db          *gorm.DB
	cfg         config.Config

	app    *app.App
	server *httptest.Server
	token  string
}

// SetupSuite starts PostgreSQL and applies the migrations once.
func (s *E2ETestSuite) SetupSuite() {
	s.ctx = context.Background()
	gin.SetMode(gin.TestMode)

	pgContainer, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("scoreboard"),
		postgres.WithUsername("scorer"),
		postgres.WithPassword("scorer"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err, "failed to start PostgreSQL container")
	s.pgContainer = pgContainer

	connStr, err := pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(postgresDriver.Open(connStr), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err, "failed to connect to database")
	s.db = db

	m, err := migrate.New(db, migrationsPath, logger.NewNop())
	s.Require().NoError(err)
	s.Require().NoError(m.Up())

	s.cfg = config.Config{
		Auth: config.AuthConfig{
			Secret:   "e2e-secret-e2e-secret",
			Issuer:   "softball-scoreboard",
			TokenTTL: time.Hour,
		},
		Tournament: config.TournamentConfig{
			ChampionshipGameID: 16,
			DefaultInnings:     7,
			LeaderboardLimit:   10,
			SaveDebounce:       50 * time.Millisecond,
			WriteRateLimit:     1000,
			WriteRateBurst:     1000,
			SeedFile:           seedFile,
		},
		GinMode: gin.TestMode,
	}

	s.token, err = auth.NewIssuer(s.cfg.Auth).Issue("e2e", auth.RoleAdmin, 0)
	s.Require().NoError(err)
}

// TearDownSuite stops the container.
func (s *E2ETestSuite) TearDownSuite() {
	if s.pgContainer != nil {
		_ = s.pgContainer.Terminate(s.ctx)
	}
}

// SetupTest empties the database and starts a freshly seeded service.
func (s *E2ETestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(`TRUNCATE teams, players, games, batting_stats, pitching_stats,
		awards, tournament_settings RESTART IDENTITY CASCADE`).Error)
	s.start()
}

// TearDownTest stops the service, flushing pending saves.
func (s *E2ETestSuite) TearDownTest() {
	s.stop()
}

func (s *E2ETestSuite) start() {
	a, err := app.New(s.ctx, s.cfg, s.db, logger.NewNop())
	s.Require().NoError(err)
	s.app = a
	s.server = httptest.NewServer(a.Engine)
}

func (s *E2ETestSuite) stop() {
	if s.app == nil {
		return
	}
	s.server.Close()
	s.Require().NoError(s.app.Close(s.ctx))
	s.app = nil
}

// restart simulates a process restart on the same database.
func (s *E2ETestSuite) restart() {
	s.stop()
	s.start()
}

func (s *E2ETestSuite) do(method, path string, body interface{}, authorized bool) (int, []byte) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(s.ctx, method, s.server.URL+path, reader)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, data
}

// write sends an authorized request and requires the expected status.
func (s *E2ETestSuite) write(method, path string, body interface{}, status int) []byte {
	code, data := s.do(method, path, body, true)
	s.Require().Equal(status, code, string(data))
	return data
}

// get requires a 200 and decodes the body into out.
func (s *E2ETestSuite) get(path string, out interface{}) {
	code, data := s.do(http.MethodGet, path, nil, false)
	s.Require().Equal(http.StatusOK, code, string(data))
	require.NoError(s.T(), json.Unmarshal(data, out))
}

func (s *E2ETestSuite) errorCode(data []byte) string {
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.Require().NoError(json.Unmarshal(data, &resp))
	return resp.Error.Code
}

func (s *E2ETestSuite) setCell(gameID, inning, team int, value string) {
	s.write(http.MethodPut, cellPath(gameID, inning, team), map[string]string{"value": value}, http.StatusOK)
}
