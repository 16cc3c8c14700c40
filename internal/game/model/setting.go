package model

import "time"

// SettingChampion holds the name of the declared champion, empty when none.
const SettingChampion = "champion"

// Setting is a tournament-wide key/value pair.
type Setting struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM.
func (Setting) TableName() string {
	return "tournament_settings"
}
