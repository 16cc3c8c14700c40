// Package seed loads a tournament fixture from YAML into an empty database.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	awardModel "github.com/festy23/softball_scoreboard/internal/award/model"
	awardRepository "github.com/festy23/softball_scoreboard/internal/award/repository"
	"github.com/festy23/softball_scoreboard/internal/engine"
	gameRepository "github.com/festy23/softball_scoreboard/internal/game/repository"
	playerModel "github.com/festy23/softball_scoreboard/internal/player/model"
	playerRepository "github.com/festy23/softball_scoreboard/internal/player/repository"
	teamModel "github.com/festy23/softball_scoreboard/internal/team/model"
	teamRepository "github.com/festy23/softball_scoreboard/internal/team/repository"
)

var (
	// ErrNotEmpty indicates that the database already has teams.
	ErrNotEmpty = errors.New("database already seeded")
	// ErrInvalidFixture indicates a fixture that references unknown teams or
	// repeats ids.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Fixture is a complete tournament setup.
type Fixture struct {
	Teams  []Team  `yaml:"teams"`
	Games  []Game  `yaml:"games"`
	Awards []Award `yaml:"awards"`
}

// Team is a team with its roster.
type Team struct {
	Name    string   `yaml:"name"`
	Players []Player `yaml:"players"`
}

// Player is one roster entry.
type Player struct {
	Number       int    `yaml:"number"`
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	PlaceOfBirth string `yaml:"place_of_birth"`
}

// Game is a scheduled game. Teams are referenced by name and may be left
// empty for games decided later.
type Game struct {
	ID           int64  `yaml:"id"`
	Visitor      string `yaml:"visitor"`
	Local        string `yaml:"local"`
	Day          string `yaml:"day"`
	Time         string `yaml:"time"`
	Championship bool   `yaml:"championship"`
}

// Award is a pre-announced award.
type Award struct {
	Category    string `yaml:"category"`
	Title       string `yaml:"title"`
	PlayerName  string `yaml:"player_name"`
	TeamName    string `yaml:"team_name"`
	Description string `yaml:"description"`
}

// Result counts what Apply wrote.
type Result struct {
	Teams   int
	Players int
	Games   int
	Awards  int
}

// LoadFile reads and validates a fixture file.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding fixture: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks names, numbers and ids.
func (f *Fixture) Validate() error {
	teams := make(map[string]bool, len(f.Teams))
	for _, t := range f.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" || teams[name] {
			return fmt.Errorf("%w: team name %q is empty or repeated", ErrInvalidFixture, t.Name)
		}
		teams[name] = true

		numbers := make(map[int]bool, len(t.Players))
		for _, p := range t.Players {
			if p.Number < 0 || numbers[p.Number] || strings.TrimSpace(p.Name) == "" {
				return fmt.Errorf("%w: player #%d of %s", ErrInvalidFixture, p.Number, name)
			}
			numbers[p.Number] = true
		}
	}

	ids := make(map[int64]bool, len(f.Games))
	for _, g := range f.Games {
		if g.ID <= 0 || ids[g.ID] {
			return fmt.Errorf("%w: game id %d is not positive or repeated", ErrInvalidFixture, g.ID)
		}
		ids[g.ID] = true
		visitor, local := strings.TrimSpace(g.Visitor), strings.TrimSpace(g.Local)
		for _, name := range []string{visitor, local} {
			if name != "" && !teams[name] {
				return fmt.Errorf("%w: game %d references unknown team %q", ErrInvalidFixture, g.ID, name)
			}
		}
		if visitor != "" && visitor == local {
			return fmt.Errorf("%w: game %d has the same team twice", ErrInvalidFixture, g.ID)
		}
	}

	for _, a := range f.Awards {
		if !awardModel.ValidCategory(a.Category) || strings.TrimSpace(a.Title) == "" {
			return fmt.Errorf("%w: award %q", ErrInvalidFixture, a.Title)
		}
	}
	return nil
}

// Apply writes the fixture in one transaction. It refuses to run when any
// team exists. championshipID flags that game even when the fixture does not.
func Apply(ctx context.Context, db *gorm.DB, f *Fixture, innings int, championshipID int64, logger *zap.SugaredLogger) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&teamModel.Team{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNotEmpty
		}

		teams := teamRepository.New(tx, logger)
		players := playerRepository.New(tx, logger)
		ids := make(map[string]int64, len(f.Teams))
		for _, t := range f.Teams {
			team, err := teams.Create(ctx, strings.TrimSpace(t.Name))
			if err != nil {
				return fmt.Errorf("creating team %s: %w", t.Name, err)
			}
			ids[team.Name] = team.ID
			res.Teams++

			rows := make([]playerModel.Player, 0, len(t.Players))
			for _, p := range t.Players {
				rows = append(rows, playerModel.Player{
					TeamID:       team.ID,
					Number:       p.Number,
					Name:         strings.TrimSpace(p.Name),
					Role:         p.Role,
					PlaceOfBirth: p.PlaceOfBirth,
				})
			}
			if err := players.UpsertByNumber(ctx, rows); err != nil {
				return fmt.Errorf("creating players of %s: %w", t.Name, err)
			}
			res.Players += len(rows)
		}

		games := gameRepository.New(tx, logger)
		for _, g := range f.Games {
			game := engine.Game{
				ID:             g.ID,
				Team1ID:        ids[strings.TrimSpace(g.Visitor)],
				Team2ID:        ids[strings.TrimSpace(g.Local)],
				Innings:        engine.NewInnings(innings),
				IsChampionship: g.Championship || g.ID == championshipID,
				Day:            g.Day,
				Time:           g.Time,
			}
			if err := games.Save(ctx, game); err != nil {
				return fmt.Errorf("creating game %d: %w", g.ID, err)
			}
			res.Games++
		}

		awards := make([]awardModel.Award, 0, len(f.Awards))
		for _, a := range f.Awards {
			awards = append(awards, awardModel.Award{
				Category:    a.Category,
				Title:       strings.TrimSpace(a.Title),
				PlayerName:  a.PlayerName,
				TeamName:    a.TeamName,
				Description: a.Description,
			})
		}
		if err := awardRepository.New(tx, logger).UpsertByTitle(ctx, awards); err != nil {
			return fmt.Errorf("creating awards: %w", err)
		}
		res.Awards = len(awards)
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	logger.Infow("fixture applied",
		"teams", res.Teams,
		"players", res.Players,
		"games", res.Games,
		"awards", res.Awards,
	)
	return res, nil
}
