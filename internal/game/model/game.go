// Package model provides the game entity, tournament settings and DTOs.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/festy23/softball_scoreboard/internal/engine"
)

// Innings stores the inning grid in a JSONB column.
type Innings engine.Innings

// Value implements driver.Valuer.
func (in Innings) Value() (driver.Value, error) {
	if in == nil {
		return "[]", nil
	}
	data, err := json.Marshal(engine.Innings(in))
	if err != nil {
		return nil, fmt.Errorf("encoding innings: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (in *Innings) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*in = Innings{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported innings column type %T", value)
	}

	var grid engine.Innings
	if err := grid.UnmarshalJSON(data); err != nil {
		return err
	}
	*in = Innings(grid)
	return nil
}

// Game matches the games table. Team ids are NULL while unassigned.
type Game struct {
	ID             int64     `gorm:"primaryKey;autoIncrement:false;column:id"`
	Team1ID        *int64    `gorm:"column:team1_id"`
	Team2ID        *int64    `gorm:"column:team2_id"`
	Score1         string    `gorm:"column:score1;type:varchar(8);not null"`
	Score2         string    `gorm:"column:score2;type:varchar(8);not null"`
	Hits1          string    `gorm:"column:hits1;type:varchar(8);not null"`
	Hits2          string    `gorm:"column:hits2;type:varchar(8);not null"`
	Errors1        string    `gorm:"column:errors1;type:varchar(8);not null"`
	Errors2        string    `gorm:"column:errors2;type:varchar(8);not null"`
	Innings        Innings   `gorm:"column:innings;type:jsonb;not null"`
	IsChampionship bool      `gorm:"column:is_championship;not null"`
	Day            string    `gorm:"column:day;type:varchar(32);not null"`
	Time           string    `gorm:"column:time;type:varchar(16);not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM.
func (Game) TableName() string {
	return "games"
}

// GameColumns lists the columns rewritten when a game is saved.
var GameColumns = []string{
	"team1_id", "team2_id", "score1", "score2", "hits1", "hits2", "errors1", "errors2",
	"innings", "is_championship", "day", "time", "updated_at",
}

func teamRef(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}

func teamID(ref *int64) int64 {
	if ref == nil {
		return 0
	}
	return *ref
}

// NewGame converts an engine game to a row. Box score rows are not part of
// the games table.
func NewGame(g engine.Game) Game {
	return Game{
		ID:             g.ID,
		Team1ID:        teamRef(g.Team1ID),
		Team2ID:        teamRef(g.Team2ID),
		Score1:         g.Score1,
		Score2:         g.Score2,
		Hits1:          g.Hits1,
		Hits2:          g.Hits2,
		Errors1:        g.Errors1,
		Errors2:        g.Errors2,
		Innings:        Innings(g.Innings.Clone()),
		IsChampionship: g.IsChampionship,
		Day:            g.Day,
		Time:           g.Time,
	}
}

// ToEngine converts the row to an engine game without box score rows.
func (g Game) ToEngine() engine.Game {
	innings := engine.Innings(g.Innings).Clone()
	if innings == nil {
		innings = engine.Innings{}
	}
	return engine.Game{
		ID:             g.ID,
		Team1ID:        teamID(g.Team1ID),
		Team2ID:        teamID(g.Team2ID),
		Score1:         g.Score1,
		Score2:         g.Score2,
		Hits1:          g.Hits1,
		Hits2:          g.Hits2,
		Errors1:        g.Errors1,
		Errors2:        g.Errors2,
		Innings:        innings,
		IsChampionship: g.IsChampionship,
		Day:            g.Day,
		Time:           g.Time,
	}
}
