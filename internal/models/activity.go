package models

import (
	"time"
)

type ActivityType string

const (
	ActivitySwapRequest     ActivityType = "swap_request"
	ActivitySwapCompleted   ActivityType = "swap_completed"
	ActivitySwapDeclined    ActivityType = "swap_declined"
	ActivityPointRedemption ActivityType = "point_redemption"
	ActivityAdminAdjustment ActivityType = "admin_adjustment"
	ActivityItemListed      ActivityType = "item_listed"
	ActivityItemApproved    ActivityType = "item_approved"
	ActivityItemRejected    ActivityType = "item_rejected"
)

// Activity 只追加的审计流水，不提供更新和删除
type Activity struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"not null;index" json:"user_id"`
	User        User         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Type        ActivityType `gorm:"type:varchar(30);not null;index" json:"type"`
	Description string       `gorm:"size:300;not null" json:"description"`
	Delta       int          `gorm:"not null" json:"delta"` // 正数为增加，负数为扣除，0 表示纯状态事件
	ItemID      *uint        `gorm:"index" json:"item_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
