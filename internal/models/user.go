package models

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // Hash
	Name      string     `gorm:"size:100" json:"name"`
	Avatar    string     `gorm:"default:🧥" json:"avatar"`                     // emoji 头像
	Points    int        `gorm:"default:0" json:"points"`                     // 积分余额，仅由结算引擎和管理员调整写入
	Level     string     `gorm:"size:30;default:'Newcomer'" json:"level"`     // 由积分派生的等级称号
	Role      string     `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	IsBanned  bool       `gorm:"default:false" json:"is_banned"`
	BanReason string     `gorm:"size:200" json:"ban_reason,omitempty"`
	BannedAt  *time.Time `json:"banned_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}
