package services

import (
	"rewear/internal/db"
	"rewear/internal/models"

	"gorm.io/gorm"
)

// 活动流水只追加，没有更新和删除入口。
// 结算相关的流水和结算写在同一个事务里，保证审计记录不缺不重。

// recordActivityTx 在事务内追加一条流水
func recordActivityTx(tx *gorm.DB, userID uint, typ models.ActivityType, description string, delta int, itemID *uint) error {
	entry := models.Activity{
		UserID:      userID,
		Type:        typ,
		Description: description,
		Delta:       delta,
		ItemID:      itemID,
	}
	return tx.Create(&entry).Error
}

// RecordActivity 非事务场景（上架、审核等单写事件）的流水追加
func RecordActivity(userID uint, typ models.ActivityType, description string, delta int, itemID *uint) error {
	return recordActivityTx(db.DB, userID, typ, description, delta, itemID)
}

// GetUserActivities 查询用户最近的活动流水，供个人面板展示
func GetUserActivities(userID uint, limit int) ([]models.Activity, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var activities []models.Activity
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}
