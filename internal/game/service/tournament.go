// Package service holds the tournament controller: the authoritative
// in-memory games and roster, re-evaluated by the engine after every change
// and persisted in the background.
package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"

	boxRepository "github.com/festy23/softball_scoreboard/internal/boxscore/repository"
	"github.com/festy23/softball_scoreboard/internal/config"
	"github.com/festy23/softball_scoreboard/internal/engine"
	"github.com/festy23/softball_scoreboard/internal/game/model"
	"github.com/festy23/softball_scoreboard/internal/game/repository"
	"github.com/festy23/softball_scoreboard/internal/notify"
	teamModel "github.com/festy23/softball_scoreboard/internal/team/model"
	teamRepository "github.com/festy23/softball_scoreboard/internal/team/repository"
	"github.com/festy23/softball_scoreboard/pkg/retry"
)

// Service is the tournament API used by the HTTP layer.
type Service interface {
	Games() []engine.Game
	Game(id int64) (engine.Game, error)
	Championship() model.ChampionshipResponse
	Snapshot() model.Snapshot

	UpdateGame(ctx context.Context, id int64, req *model.UpdateGameRequest) (engine.Game, error)
	SetCell(ctx context.Context, id int64, inning, team int, value string) (engine.Game, error)
	Swap(ctx context.Context, id int64) (engine.Game, error)
	UpsertBatting(ctx context.Context, gameID, playerID int64, stat engine.BattingStat) (engine.Game, error)
	UpsertPitching(ctx context.Context, gameID, playerID int64, stat engine.PitchingStat) (engine.Game, error)
	ImportBoxScore(ctx context.Context, id int64, text string) (*model.ImportBoxScoreResponse, error)
	Reset(ctx context.Context) error

	// Flush persists every pending change now and returns how many save
	// units were written. Failed units stay pending.
	Flush(ctx context.Context) (int, error)
}

// Options tune the controller.
type Options struct {
	ChampionshipGameID int64
	DefaultInnings     int
	SaveDebounce       time.Duration
	Retry              retry.Config
}

// OptionsFromConfig builds Options from the tournament configuration.
func OptionsFromConfig(cfg config.TournamentConfig) Options {
	return Options{
		ChampionshipGameID: cfg.ChampionshipGameID,
		DefaultInnings:     cfg.DefaultInnings,
		SaveDebounce:       cfg.SaveDebounce,
		Retry:              retry.SaveConfig(),
	}
}

// Deps are the collaborators of a Tournament. Publisher and Metrics may be nil.
type Deps struct {
	DB        *gorm.DB
	Games     repository.Repository
	Teams     teamRepository.Repository
	Stats     boxRepository.Repository
	Publisher notify.Publisher
	Metrics   *Metrics
	Logger    *zap.SugaredLogger
}

type statKey struct {
	gameID   int64
	playerID int64
}

const backgroundFlushTimeout = 30 * time.Second

// Tournament owns the tournament state. All methods are safe for
// concurrent use.
type Tournament struct {
	db        *gorm.DB
	games     repository.Repository
	teams     teamRepository.Repository
	stats     boxRepository.Repository
	publisher notify.Publisher
	metrics   *Metrics
	opts      Options
	logger    *zap.SugaredLogger

	mu            sync.Mutex
	teamList      []engine.Team
	gameList      []engine.Game
	index         map[int64]int
	champion      string
	version       uint64
	dirtyGames    map[int64]struct{}
	dirtyBatting  map[statKey]struct{}
	dirtyPitching map[statKey]struct{}
	championDirty bool
	timer         *time.Timer
	closed        bool
	resetting     bool

	// flushMu serializes writers to the database.
	flushMu sync.Mutex
}

var _ Service = (*Tournament)(nil)

// New creates an empty tournament. Call Load before serving requests.
func New(deps Deps, opts Options) *Tournament {
	if opts.DefaultInnings <= 0 {
		opts.DefaultInnings = engine.RegulationInnings
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = retry.SaveConfig()
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = notify.Nop{}
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}
	return &Tournament{
		db:            deps.DB,
		games:         deps.Games,
		teams:         deps.Teams,
		stats:         deps.Stats,
		publisher:     publisher,
		metrics:       metrics,
		opts:          opts,
		logger:        deps.Logger,
		index:         map[int64]int{},
		dirtyGames:    map[int64]struct{}{},
		dirtyBatting:  map[statKey]struct{}{},
		dirtyPitching: map[statKey]struct{}{},
	}
}

// Load replaces the in-memory state with the stored one. Pending changes
// are discarded.
func (t *Tournament) Load(ctx context.Context) error {
	teams, err := t.teams.List(ctx)
	if err != nil {
		return fmt.Errorf("loading teams: %w", err)
	}
	games, err := t.games.List(ctx)
	if err != nil {
		return fmt.Errorf("loading games: %w", err)
	}
	batting, err := t.stats.ListBatting(ctx)
	if err != nil {
		return fmt.Errorf("loading batting stats: %w", err)
	}
	pitching, err := t.stats.ListPitching(ctx)
	if err != nil {
		return fmt.Errorf("loading pitching stats: %w", err)
	}
	champion, _, err := t.games.GetSetting(ctx, model.SettingChampion)
	if err != nil {
		return fmt.Errorf("loading champion: %w", err)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	index := make(map[int64]int, len(games))
	for i := range games {
		index[games[i].ID] = i
		games[i] = engine.EnsureInnings(games[i], t.opts.DefaultInnings)
	}
	for _, s := range batting {
		if i, ok := index[s.GameID]; ok {
			games[i].BattingStats = append(games[i].BattingStats, s)
		}
	}
	for _, s := range pitching {
		if i, ok := index[s.GameID]; ok {
			games[i].PitchingStats = append(games[i].PitchingStats, s)
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.teamList = teamModel.ToEngineTeams(teams)
	t.gameList = games
	t.index = index
	t.champion = champion
	t.dirtyGames = map[int64]struct{}{}
	t.dirtyBatting = map[statKey]struct{}{}
	t.dirtyPitching = map[statKey]struct{}{}
	t.championDirty = false
	t.markChampionshipLocked()
	t.version++
	t.updatePendingLocked()

	t.logger.Infow("tournament loaded",
		"teams", len(t.teamList),
		"games", len(t.gameList),
		"batting_rows", len(batting),
		"pitching_rows", len(pitching),
		"champion", champion,
	)
	return nil
}

// markChampionshipLocked flags the configured championship game so that
// every consumer of the snapshot can rely on IsChampionship alone.
func (t *Tournament) markChampionshipLocked() {
	if t.opts.ChampionshipGameID == 0 {
		return
	}
	i, ok := t.index[t.opts.ChampionshipGameID]
	if !ok || t.gameList[i].IsChampionship {
		return
	}
	t.gameList[i].IsChampionship = true
	t.dirtyGames[t.gameList[i].ID] = struct{}{}
}

// ReloadRoster refreshes teams and players after roster edits.
func (t *Tournament) ReloadRoster(ctx context.Context) error {
	teams, err := t.teams.List(ctx)
	if err != nil {
		return fmt.Errorf("loading teams: %w", err)
	}

	t.mu.Lock()
	t.teamList = teamModel.ToEngineTeams(teams)
	t.version++
	events := []notify.Event{notify.NewEvent(notify.RosterUpdated, t.version, nil)}
	events = append(events, t.reevaluateLocked()...)
	t.mu.Unlock()

	t.publish(ctx, events)
	t.scheduleSave(ctx)
	return nil
}

// Games returns a copy of every game ordered by id.
func (t *Tournament) Games() []engine.Game {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneGames(t.gameList)
}

// Game returns a copy of one game.
func (t *Tournament) Game(id int64) (engine.Game, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return engine.Game{}, model.ErrGameNotFound
	}
	return t.gameList[i].Clone(), nil
}

// Snapshot returns a consistent copy of the whole state.
func (t *Tournament) Snapshot() model.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	teams := make([]engine.Team, len(t.teamList))
	for i, team := range t.teamList {
		teams[i] = team
		teams[i].Players = append([]engine.Player{}, team.Players...)
	}
	return model.Snapshot{
		Version:  t.version,
		Teams:    teams,
		Games:    cloneGames(t.gameList),
		Champion: t.champion,
	}
}

// Championship describes the championship game.
func (t *Tournament) Championship() model.ChampionshipResponse {
	t.mu.Lock()
	defer t.mu.Unlock()

	resp := model.ChampionshipResponse{Champion: t.champion}
	if i, ok := t.championshipIndexLocked(); ok {
		g := t.gameList[i].Clone()
		resp.Game = &g
		resp.InProgress = engine.InProgress(g)
	}
	return resp
}

// Pending reports the number of save units not yet persisted.
func (t *Tournament) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pendingLocked()
}

func (t *Tournament) pendingLocked() int {
	n := len(t.dirtyGames) + len(t.dirtyBatting) + len(t.dirtyPitching)
	if t.championDirty {
		n++
	}
	return n
}

func (t *Tournament) updatePendingLocked() {
	t.metrics.pending.Set(float64(t.pendingLocked()))
}

func (t *Tournament) championshipIndexLocked() (int, bool) {
	for i, g := range t.gameList {
		if g.IsChampionship {
			return i, true
		}
	}
	return 0, false
}

func (t *Tournament) teamLocked(id int64) (engine.Team, bool) {
	for _, team := range t.teamList {
		if team.ID == id {
			return team, true
		}
	}
	return engine.Team{}, false
}

func cloneGames(games []engine.Game) []engine.Game {
	out := make([]engine.Game, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out
}

func (t *Tournament) publish(ctx context.Context, events []notify.Event) {
	for _, e := range events {
		if err := t.publisher.Publish(ctx, e); err != nil {
			t.logger.Warnw("event publish failed", "type", e.Type, "event_id", e.ID, "error", err)
		}
	}
}
