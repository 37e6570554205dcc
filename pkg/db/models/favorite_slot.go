package models

import "time"

// FavoriteSlot stores one favorites set as a JSON array of item codes.
type FavoriteSlot struct {
	Name      string    `gorm:"column:name;type:varchar(128);primaryKey"`
	Payload   string    `gorm:"column:payload;type:text;not null;default:'[]'"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (FavoriteSlot) TableName() string {
	return "favorite_slots"
}
