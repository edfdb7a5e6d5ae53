package models

import (
	"time"
)

type SwapStatus string

// 交换请求状态机：pending 为唯一初始态，其余均为终态。
// 原型里声明过 accepted 中间态但从未真正进入，这里不保留。
const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusCompleted SwapStatus = "completed"
	SwapStatusDeclined  SwapStatus = "declined"
	SwapStatusCancelled SwapStatus = "cancelled"
)

type Swap struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Sid           string     `gorm:"uniqueIndex;size:36;not null" json:"sid"`
	RequesterID   uint       `gorm:"not null;index" json:"requester_id"`
	Requester     User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"requester"`
	ItemID        uint       `gorm:"not null;index" json:"item_id"`
	Item          Item       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"item"`
	OfferedItemID *uint      `gorm:"index" json:"offered_item_id,omitempty"`
	OfferedItem   *Item      `gorm:"foreignKey:OfferedItemID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"offered_item,omitempty"`
	PointsOffered int        `gorm:"default:0" json:"points_offered"`
	Message       string     `gorm:"size:500" json:"message"`
	Status        SwapStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsTerminal 终态后 Swap 不再变更
func (s SwapStatus) IsTerminal() bool {
	return s != SwapStatusPending
}
