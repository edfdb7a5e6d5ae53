package services

import (
	"fmt"
	"rewear/internal/db"
	"rewear/internal/models"
	"rewear/internal/utils"

	"gorm.io/gorm"
)

// 积分台账。余额只存在 User.Points 上，每次变动后重新派生 Level。
// 这里的函数只被结算引擎和管理员积分调整调用，外部调用方不直接动余额。

// creditTx 在事务内给用户增加积分
func creditTx(tx *gorm.DB, userID uint, amount int) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount)).
		Error
}

// debitTx 在事务内扣减用户积分（不做余额下限检查，调用方自行保证）
func debitTx(tx *gorm.DB, userID uint, amount int) error {
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points - ?", amount)).
		Error
}

// recomputeLevelTx 余额变动后重新计算等级并写回
func recomputeLevelTx(tx *gorm.DB, userID uint) error {
	var user models.User
	if err := tx.Select("id", "points").First(&user, userID).Error; err != nil {
		return err
	}
	level, _ := utils.GetUserLevel(user.Points)
	return tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("level", level).
		Error
}

// AdminAdjustPoints 管理员手工调整积分，正数增加负数扣除。
// 不做零下限钳制：管理员扣分可以把余额调成负数，这是有意保留的行为。
func AdminAdjustPoints(userID uint, delta int, reason string) error {
	if delta == 0 {
		return ErrInvalidOperation
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		if err := creditTx(tx, userID, delta); err != nil {
			return err
		}
		if err := recomputeLevelTx(tx, userID); err != nil {
			return err
		}

		desc := fmt.Sprintf("管理员调整积分：%+d（%s）", delta, reason)
		return recordActivityTx(tx, userID, models.ActivityAdminAdjustment, desc, delta, nil)
	})
}
