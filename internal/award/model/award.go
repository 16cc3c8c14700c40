// Package model provides the award entity and DTOs.
package model

import (
	"time"

	"github.com/festy23/softball_scoreboard/internal/importer"
)

// Award is a tournament prize. Category and title are unique together.
type Award struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	Category    string    `gorm:"column:category;type:varchar(32);not null" json:"category"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	PlayerName  string    `gorm:"column:player_name;type:varchar(255);not null" json:"player_name"`
	TeamName    string    `gorm:"column:team_name;type:varchar(255);not null" json:"team_name"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Award) TableName() string {
	return "awards"
}

// ValidCategory reports whether c is a known award category.
func ValidCategory(c string) bool {
	return c == importer.CategoryInitialRound || c == importer.CategoryFinal
}

// FromEntry converts a parsed award.
func FromEntry(e importer.AwardEntry) Award {
	return Award{
		Category:    e.Category,
		Title:       e.Title,
		PlayerName:  e.PlayerName,
		TeamName:    e.TeamName,
		Description: e.Description,
	}
}
