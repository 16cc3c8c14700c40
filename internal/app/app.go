// Package app assembles the scoreboard HTTP service from its modules.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/softball_scoreboard/internal/auth"
	awardHandler "github.com/festy23/softball_scoreboard/internal/award/handler"
	awardRepository "github.com/festy23/softball_scoreboard/internal/award/repository"
	awardRouter "github.com/festy23/softball_scoreboard/internal/award/router"
	awardService "github.com/festy23/softball_scoreboard/internal/award/service"
	boxRepository "github.com/festy23/softball_scoreboard/internal/boxscore/repository"
	"github.com/festy23/softball_scoreboard/internal/config"
	gameHandler "github.com/festy23/softball_scoreboard/internal/game/handler"
	gameRepository "github.com/festy23/softball_scoreboard/internal/game/repository"
	gameRouter "github.com/festy23/softball_scoreboard/internal/game/router"
	gameService "github.com/festy23/softball_scoreboard/internal/game/service"
	"github.com/festy23/softball_scoreboard/internal/health"
	"github.com/festy23/softball_scoreboard/internal/live"
	"github.com/festy23/softball_scoreboard/internal/middleware"
	"github.com/festy23/softball_scoreboard/internal/notify"
	playerHandler "github.com/festy23/softball_scoreboard/internal/player/handler"
	playerRepository "github.com/festy23/softball_scoreboard/internal/player/repository"
	playerRouter "github.com/festy23/softball_scoreboard/internal/player/router"
	playerService "github.com/festy23/softball_scoreboard/internal/player/service"
	"github.com/festy23/softball_scoreboard/internal/seed"
	statsHandler "github.com/festy23/softball_scoreboard/internal/statistics/handler"
	statsRepository "github.com/festy23/softball_scoreboard/internal/statistics/repository"
	statsRouter "github.com/festy23/softball_scoreboard/internal/statistics/router"
	statsService "github.com/festy23/softball_scoreboard/internal/statistics/service"
	teamHandler "github.com/festy23/softball_scoreboard/internal/team/handler"
	teamRepository "github.com/festy23/softball_scoreboard/internal/team/repository"
	teamRouter "github.com/festy23/softball_scoreboard/internal/team/router"
	teamService "github.com/festy23/softball_scoreboard/internal/team/service"
)

// App is the wired service.
type App struct {
	Engine     *gin.Engine
	Tournament *gameService.Tournament
	Hub        *live.Hub
	Registry   *prometheus.Registry

	redis  *redis.Client
	logger *zap.SugaredLogger
}

// New wires every module on top of db. It seeds an empty database when a
// seed file is configured and loads the tournament state.
func New(ctx context.Context, cfg config.Config, db *gorm.DB, logger *zap.SugaredLogger) (*App, error) {
	if cfg.Tournament.SeedFile != "" {
		if err := applySeed(ctx, cfg.Tournament, db, logger); err != nil {
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &App{Registry: reg, logger: logger}
	a.Hub = live.NewHub(reg, logger)

	publishers := notify.Multi{a.Hub}
	statsCache := statsRepository.NewNop()
	var checks []health.Check
	if cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		a.redis = redis.NewClient(opts)
		publishers = append(publishers, notify.NewStreamPublisher(a.redis, cfg.Redis.Stream, cfg.Redis.StreamMaxLen))
		statsCache = statsRepository.NewRedis(a.redis, cfg.Redis.CacheTTL, logger)
		checks = append(checks, health.RedisCheck(a.redis))
	}

	teams := teamRepository.New(db, logger)
	a.Tournament = gameService.New(gameService.Deps{
		DB:        db,
		Games:     gameRepository.New(db, logger),
		Teams:     teams,
		Stats:     boxRepository.New(db, logger),
		Publisher: publishers,
		Metrics:   gameService.NewMetrics(reg),
		Logger:    logger,
	}, gameService.OptionsFromConfig(cfg.Tournament))
	if err := a.Tournament.Load(ctx); err != nil {
		a.closeRedis()
		return nil, fmt.Errorf("loading tournament: %w", err)
	}

	issuer := auth.NewIssuer(cfg.Auth)
	if !issuer.Enabled() {
		logger.Warnw("AUTH_SECRET is not set, write endpoints are disabled")
	}
	write := []gin.HandlerFunc{
		middleware.RateLimit(middleware.NewIPRateLimiter(cfg.Tournament.WriteRateLimit, cfg.Tournament.WriteRateBurst)),
		middleware.RequireAdmin(issuer, logger),
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(logger),
		middleware.Logger(logger, "/health", "/metrics"),
		middleware.NewHTTPMetrics(reg).Handler(),
	)

	r.GET("/health", health.New(db, logger, checks...).Check)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))
	r.GET("/live", live.NewHandler(a.Hub, a.Tournament, cfg.Server.AllowedOrigins).Serve)

	teamRouter.RegisterRoutes(r, teamHandler.New(teamService.New(teams, a.Tournament, logger), logger), write...)
	playerRouter.RegisterRoutes(r, playerHandler.New(
		playerService.New(playerRepository.New(db, logger), db, a.Tournament, logger), logger), write...)
	gameRouter.RegisterRoutes(r, gameHandler.New(a.Tournament, logger), write...)
	statsRouter.RegisterRoutes(r, statsHandler.New(
		statsService.New(a.Tournament, statsCache, cfg.Tournament.LeaderboardLimit, logger), logger))
	awardRouter.RegisterRoutes(r, awardHandler.New(
		awardService.New(awardRepository.New(db, logger), logger), logger), write...)

	a.Engine = r
	return a, nil
}

// Close flushes pending saves and disconnects viewers and Redis.
func (a *App) Close(ctx context.Context) error {
	err := a.Tournament.Close(ctx)
	if err != nil {
		a.logger.Errorw("final flush failed", "error", err)
	}
	a.Hub.Close()
	return errors.Join(err, a.closeRedis())
}

func (a *App) closeRedis() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

func applySeed(ctx context.Context, cfg config.TournamentConfig, db *gorm.DB, logger *zap.SugaredLogger) error {
	f, err := seed.LoadFile(cfg.SeedFile)
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, db, f, cfg.DefaultInnings, cfg.ChampionshipGameID, logger)
	if errors.Is(err, seed.ErrNotEmpty) {
		logger.Infow("seed skipped, database already has teams", "file", cfg.SeedFile)
		return nil
	}
	return err
}
