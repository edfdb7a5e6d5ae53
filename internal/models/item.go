package models

import (
	"time"
)

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"   // 刚提交，等待管理员审核
	ItemStatusAvailable ItemStatus = "available" // 审核通过，可被交换
	ItemStatusSwapped   ItemStatus = "swapped"   // 已完成交换，终态
	ItemStatusRemoved   ItemStatus = "removed"   // 被下架/驳回，终态
)

// 衣物属性的固定枚举
var (
	ItemCategories = []string{"tops", "bottoms", "dresses", "outerwear", "footwear", "accessories"}
	ItemTypes      = []string{"casual", "formal", "sportswear", "vintage", "designer"}
	ItemSizes      = []string{"XS", "S", "M", "L", "XL", "XXL"}
	ItemConditions = []string{"new", "like_new", "good", "fair"}
)

const MaxItemPoints = 10000

type Item struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Pid         string     `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID      uint       `gorm:"not null;index" json:"user_id"`
	User        User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Category    string     `gorm:"size:20;not null" json:"category"`
	Kind        string     `gorm:"column:type;size:20;not null" json:"type"`
	Size        string     `gorm:"size:10;not null" json:"size"`
	Condition   string     `gorm:"size:20;not null" json:"condition"`
	Points      int        `gorm:"default:0" json:"points"` // 兑换所需积分估值 0-10000
	Views       int        `gorm:"default:0" json:"views"`
	Likes       int        `gorm:"default:0" json:"likes"`
	Status      ItemStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsTerminal 物品是否已处于终态（不再接受任何交换）
func (s ItemStatus) IsTerminal() bool {
	return s == ItemStatusSwapped || s == ItemStatusRemoved
}

// ValidEnum 检查值是否在枚举列表内
func ValidEnum(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
