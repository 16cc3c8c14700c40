// Package model provides the team entity and DTOs.
package model

import (
	"time"

	"github.com/festy23/softball_scoreboard/internal/engine"
	playerModel "github.com/festy23/softball_scoreboard/internal/player/model"
)

// Team represents a tournament team and its roster.
// Matches the teams table schema.
type Team struct {
	ID        int64                `gorm:"primaryKey;column:id" json:"id"`
	Name      string               `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Players   []playerModel.Player `gorm:"foreignKey:TeamID" json:"players"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM.
func (Team) TableName() string {
	return "teams"
}

// ToEngine converts the team and its loaded players to engine values.
func (t Team) ToEngine() engine.Team {
	players := make([]engine.Player, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, p.ToEngine())
	}
	return engine.Team{ID: t.ID, Name: t.Name, Players: players}
}

// ToEngineTeams converts a slice of teams.
func ToEngineTeams(teams []Team) []engine.Team {
	out := make([]engine.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.ToEngine())
	}
	return out
}
