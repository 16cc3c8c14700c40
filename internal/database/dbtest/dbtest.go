// Package dbtest opens in-memory SQLite databases laid out like the
// PostgreSQL schema in migrations/, for repository and service tests.
package dbtest

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type team struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"not null;uniqueIndex"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (team) TableName() string { return "teams" }

type player struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	TeamID       int64  `gorm:"not null;uniqueIndex:idx_players_team_number"`
	Number       int    `gorm:"not null;uniqueIndex:idx_players_team_number"`
	Name         string `gorm:"not null"`
	Role         string `gorm:"not null;default:''"`
	PlaceOfBirth string `gorm:"not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (player) TableName() string { return "players" }

type game struct {
	ID             int64 `gorm:"primaryKey;autoIncrement:false"`
	Team1ID        *int64
	Team2ID        *int64
	Score1         string `gorm:"not null;default:''"`
	Score2         string `gorm:"not null;default:''"`
	Hits1          string `gorm:"not null;default:''"`
	Hits2          string `gorm:"not null;default:''"`
	Errors1        string `gorm:"not null;default:''"`
	Errors2        string `gorm:"not null;default:''"`
	Innings        string `gorm:"not null;default:'[]'"`
	IsChampionship bool   `gorm:"not null;default:false"`
	Day            string `gorm:"not null;default:''"`
	Time           string `gorm:"not null;default:''"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (game) TableName() string { return "games" }

type battingStat struct {
	ID               int64 `gorm:"primaryKey;autoIncrement"`
	PlayerID         int64 `gorm:"not null;uniqueIndex:idx_batting_player_game"`
	GameID           int64 `gorm:"not null;uniqueIndex:idx_batting_player_game"`
	PlateAppearances int
	AtBats           int
	Runs             int
	Hits             int
	Doubles          int
	Triples          int
	HomeRuns         int
	RBI              int `gorm:"column:rbi"`
	Walks            int
	HitByPitch       int
	SacHits          int
	SacFlies         int
	StrikeOuts       int
	StolenBases      int
}

func (battingStat) TableName() string { return "batting_stats" }

type pitchingStat struct {
	ID             int64 `gorm:"primaryKey;autoIncrement"`
	PlayerID       int64 `gorm:"not null;uniqueIndex:idx_pitching_player_game"`
	GameID         int64 `gorm:"not null;uniqueIndex:idx_pitching_player_game"`
	InningsPitched float64
	Hits           int
	Runs           int
	EarnedRuns     int
	Walks          int
	StrikeOuts     int
	HomeRuns       int
	Wins           int
	Losses         int
	Saves          int
}

func (pitchingStat) TableName() string { return "pitching_stats" }

type award struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Category    string `gorm:"not null;uniqueIndex:idx_awards_category_title"`
	Title       string `gorm:"not null;uniqueIndex:idx_awards_category_title"`
	PlayerName  string `gorm:"not null;default:''"`
	TeamName    string `gorm:"not null;default:''"`
	Description string `gorm:"not null;default:''"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (award) TableName() string { return "awards" }

type tournamentSetting struct {
	Key       string `gorm:"primaryKey"`
	Value     string `gorm:"not null;default:''"`
	UpdatedAt time.Time
}

func (tournamentSetting) TableName() string { return "tournament_settings" }

// Open returns a fresh database with every scoreboard table created.
// The pool is pinned to one connection because each SQLite in-memory
// connection is a separate database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&team{}, &player{}, &game{}, &battingStat{}, &pitchingStat{}, &award{}, &tournamentSetting{})
	if err != nil {
		t.Fatalf("create schema: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
