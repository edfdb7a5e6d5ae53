package utils

import (
	"time"
)

// 等级阈值，只由积分余额派生
const (
	LevelSwapMaster        = "Swap Master"
	LevelEcoChampion       = "Eco Champion"
	LevelFashionEnthusiast = "Fashion Enthusiast"
	LevelNewcomer          = "Newcomer"
)

// GetUserLevel 根据积分余额返回用户等级称号和图标
func GetUserLevel(points int) (name string, icon string) {
	switch {
	case points >= 1000:
		return LevelSwapMaster, "🏆"
	case points >= 500:
		return LevelEcoChampion, "🌍"
	case points >= 100:
		return LevelFashionEnthusiast, "👗"
	default:
		return LevelNewcomer, "🌱"
	}
}

// GetDaysSinceJoined 计算注册天数
func GetDaysSinceJoined(createdAt time.Time) int {
	return int(time.Since(createdAt).Hours() / 24)
}
