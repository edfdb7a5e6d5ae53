package models

import (
	"time"
)

type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_item_like" json:"user_id"`
	ItemID    uint      `gorm:"not null;uniqueIndex:idx_item_like" json:"item_id"`
	CreatedAt time.Time `json:"created_at"`
}
