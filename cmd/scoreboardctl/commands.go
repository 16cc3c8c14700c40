package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/softball_scoreboard/internal/auth"
	awardRepository "github.com/festy23/softball_scoreboard/internal/award/repository"
	awardService "github.com/festy23/softball_scoreboard/internal/award/service"
	boxRepository "github.com/festy23/softball_scoreboard/internal/boxscore/repository"
	"github.com/festy23/softball_scoreboard/internal/config"
	"github.com/festy23/softball_scoreboard/internal/database/database"
	"github.com/festy23/softball_scoreboard/internal/database/migrate"
	gameRepository "github.com/festy23/softball_scoreboard/internal/game/repository"
	gameService "github.com/festy23/softball_scoreboard/internal/game/service"
	"github.com/festy23/softball_scoreboard/internal/notify"
	"github.com/festy23/softball_scoreboard/internal/seed"
	statsRepository "github.com/festy23/softball_scoreboard/internal/statistics/repository"
	statsService "github.com/festy23/softball_scoreboard/internal/statistics/service"
	teamRepository "github.com/festy23/softball_scoreboard/internal/team/repository"
	"github.com/festy23/softball_scoreboard/pkg/logger"
)

type env struct {
	cfg config.Config
	log *zap.SugaredLogger
	out io.Writer
}

func newApp(out io.Writer) *cli.App {
	e := &env{out: out}

	return &cli.App{
		Name:  "scoreboardctl",
		Usage: "softball scoreboard maintenance",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "dotenv file loaded before the environment is read"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log to stderr"},
		},
		Before: func(c *cli.Context) error {
			if err := config.LoadDotEnv(c.String("env-file")); err != nil {
				return err
			}
			e.cfg = config.LoadFromEnv()
			if !c.Bool("verbose") {
				e.log = logger.NewNop()
				return nil
			}
			lc := e.cfg.Logger
			lc.Format, lc.Output, lc.Service = "console", "stderr", "scoreboardctl"
			log, err := logger.NewWithConfig(lc)
			if err != nil {
				return err
			}
			e.log = log
			return nil
		},
		Writer:         out,
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			e.migrateCommand(),
			e.seedCommand(),
			e.resetCommand(),
			e.exportCommand(),
			e.awardsCommand(),
			e.tokenCommand(),
		},
	}
}

func (e *env) withDB(fn func(ctx context.Context, db *gorm.DB) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		db, err := database.New(e.log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()
		return fn(c.Context, db)
	}
}

func (e *env) migrateCommand() *cli.Command {
	withMigrator := func(fn func(c *cli.Context, m *migrate.Migrator) error) cli.ActionFunc {
		return func(c *cli.Context) error {
			return e.withDB(func(_ context.Context, db *gorm.DB) error {
				m, err := migrate.New(db, c.String("dir"), e.log)
				if err != nil {
					return err
				}
				return fn(c, m)
			})(c)
		}
	}
	dir := &cli.StringFlag{Name: "dir", Value: "migrations", EnvVars: []string{"MIGRATIONS_PATH"}, Usage: "migrations directory"}

	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply every pending migration",
				Flags: []cli.Flag{dir},
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					if err := m.Up(); err != nil {
						return err
					}
					return e.printVersion(m)
				}),
			},
			{
				Name:  "down",
				Usage: "roll back migrations",
				Flags: []cli.Flag{dir, &cli.IntFlag{Name: "steps", Value: 1, Usage: "migrations to roll back, 0 for all"}},
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					if err := m.Down(c.Int("steps")); err != nil {
						return err
					}
					return e.printVersion(m)
				}),
			},
			{
				Name:  "version",
				Usage: "print the applied migration version",
				Flags: []cli.Flag{dir},
				Action: withMigrator(func(c *cli.Context, m *migrate.Migrator) error {
					return e.printVersion(m)
				}),
			},
		},
	}
}

func (e *env) printVersion(m *migrate.Migrator) error {
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(e.out, "version %d (dirty: %t)\n", v, dirty)
	return err
}

func (e *env) seedCommand() *cli.Command {
	return &cli.Command{
		Name:      "seed",
		Usage:     "load a YAML tournament fixture into an empty database",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("seed needs a fixture file", 2)
			}
			f, err := seed.LoadFile(path)
			if err != nil {
				return err
			}
			return e.withDB(func(ctx context.Context, db *gorm.DB) error {
				t := e.cfg.Tournament
				res, err := seed.Apply(ctx, db, f, t.DefaultInnings, t.ChampionshipGameID, e.log)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(e.out, "seeded %d teams, %d players, %d games, %d awards\n",
					res.Teams, res.Players, res.Games, res.Awards)
				return err
			})(c)
		},
	}
}

// tournament loads the stored state. Events go to the Redis stream when one
// is configured so that running servers' subscribers hear about offline
// changes.
func (e *env) tournament(ctx context.Context, db *gorm.DB) (*gameService.Tournament, func(), error) {
	var publisher notify.Publisher = notify.Nop{}
	cleanup := func() {}
	if e.cfg.Redis.Enabled() {
		opts, err := redis.ParseURL(e.cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("parsing REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		publisher = notify.NewStreamPublisher(client, e.cfg.Redis.Stream, e.cfg.Redis.StreamMaxLen)
		cleanup = func() { _ = client.Close() }
	}

	opts := gameService.OptionsFromConfig(e.cfg.Tournament)
	opts.SaveDebounce = 0
	t := gameService.New(gameService.Deps{
		DB:        db,
		Games:     gameRepository.New(db, e.log),
		Teams:     teamRepository.New(db, e.log),
		Stats:     boxRepository.New(db, e.log),
		Publisher: publisher,
		Logger:    e.log,
	}, opts)
	if err := t.Load(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return t, cleanup, nil
}

func (e *env) resetCommand() *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "clear every score, inning and stat row (stop the server first)",
		Flags: []cli.Flag{&cli.BoolFlag{Name: "yes", Usage: "confirm the reset"}},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return cli.Exit("refusing to reset without --yes", 2)
			}
			return e.withDB(func(ctx context.Context, db *gorm.DB) error {
				t, cleanup, err := e.tournament(ctx, db)
				if err != nil {
					return err
				}
				defer cleanup()
				if err := t.Reset(ctx); err != nil {
					return err
				}
				if err := t.Close(ctx); err != nil {
					return err
				}
				_, err = fmt.Fprintln(e.out, "tournament reset")
				return err
			})(c)
		},
	}
}

func (e *env) exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write the statistics workbook and standings chart",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "xlsx", Value: "statistics.xlsx", Usage: "workbook path, empty to skip"},
			&cli.StringFlag{Name: "chart", Usage: "PNG chart path, empty to skip"},
		},
		Action: func(c *cli.Context) error {
			xlsxPath, chartPath := c.String("xlsx"), c.String("chart")
			if xlsxPath == "" && chartPath == "" {
				return cli.Exit("nothing to export", 2)
			}
			return e.withDB(func(ctx context.Context, db *gorm.DB) error {
				t, cleanup, err := e.tournament(ctx, db)
				if err != nil {
					return err
				}
				defer cleanup()
				return e.export(ctx, t, xlsxPath, chartPath)
			})(c)
		},
	}
}

func (e *env) export(ctx context.Context, source statsService.Source, xlsxPath, chartPath string) error {
	svc := statsService.New(source, statsRepository.NewNop(), e.cfg.Tournament.LeaderboardLimit, e.log)
	if xlsxPath != "" {
		data, err := svc.ExportXLSX(ctx)
		if err != nil {
			return err
		}
		if err := writeFile(xlsxPath, data); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(e.out, "wrote", xlsxPath); err != nil {
			return err
		}
	}
	if chartPath != "" {
		data, err := svc.StandingsChart(ctx)
		if err != nil {
			return err
		}
		if err := writeFile(chartPath, data); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(e.out, "wrote", chartPath); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (e *env) awardsCommand() *cli.Command {
	return &cli.Command{
		Name:  "awards",
		Usage: "manage awards",
		Subcommands: []*cli.Command{
			{
				Name:      "import",
				Usage:     "upsert awards from an awards document",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					data, err := os.ReadFile(c.Args().First())
					if err != nil {
						return err
					}
					return e.withDB(func(ctx context.Context, db *gorm.DB) error {
						svc := awardService.New(awardRepository.New(db, e.log), e.log)
						resp, err := svc.ImportAwards(ctx, string(data))
						if err != nil {
							return err
						}
						_, err = fmt.Fprintf(e.out, "imported %d awards, %d stored\n", resp.Saved, len(resp.Awards))
						return err
					})(c)
				},
			},
			{
				Name:  "clear",
				Usage: "delete every award",
				Action: e.withDB(func(ctx context.Context, db *gorm.DB) error {
					n, err := awardService.New(awardRepository.New(db, e.log), e.log).ClearAwards(ctx)
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(e.out, "deleted %d awards\n", n)
					return err
				}),
			},
		},
	}
}

func (e *env) tokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "mint a bearer token signed with AUTH_SECRET",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "subject", Value: "scorekeeper", Usage: "token subject"},
			&cli.StringFlag{Name: "role", Value: string(auth.RoleAdmin), Usage: "admin or viewer"},
			&cli.DurationFlag{Name: "ttl", Usage: "lifetime, defaults to AUTH_TOKEN_TTL"},
		},
		Action: func(c *cli.Context) error {
			role := auth.Role(c.String("role"))
			if role != auth.RoleAdmin && role != auth.RoleViewer {
				return cli.Exit(fmt.Sprintf("unknown role %q", role), 2)
			}
			token, err := auth.NewIssuer(e.cfg.Auth).Issue(c.String("subject"), role, c.Duration("ttl"))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(e.out, token)
			return err
		},
	}
}
