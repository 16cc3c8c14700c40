// Package model provides the player entity and DTOs.
package model

import (
	"time"

	"github.com/festy23/softball_scoreboard/internal/engine"
)

// Player is a rostered player. Uniform numbers are unique within a team.
type Player struct {
	ID           int64     `gorm:"primaryKey;column:id" json:"id"`
	TeamID       int64     `gorm:"column:team_id;not null" json:"team_id"`
	Number       int       `gorm:"column:number;not null" json:"number"`
	Name         string    `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Role         string    `gorm:"column:role;type:varchar(64);not null" json:"role"`
	PlaceOfBirth string    `gorm:"column:place_of_birth;type:varchar(255);not null" json:"place_of_birth"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// ToEngine converts the row to the engine's player value.
func (p Player) ToEngine() engine.Player {
	return engine.Player{
		ID:           p.ID,
		Number:       p.Number,
		Name:         p.Name,
		Role:         p.Role,
		PlaceOfBirth: p.PlaceOfBirth,
		TeamID:       p.TeamID,
	}
}
