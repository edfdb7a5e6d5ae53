package services

import (
	"fmt"
	"rewear/internal/db"
	"rewear/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 结算引擎。两条结算路径（积分兑换、交换达成）都在单个数据库事务内完成：
// 物品状态 + 双方余额 + Swap 状态 + 活动流水要么全部落库要么全部回滚。
// 物品 available→swapped 的条件更新是唯一权威闸门，保证每件物品至多结算一次；
// 并发的第二个结算者会在这一步拿到 0 行更新，整个事务回滚，不产生任何副作用。

// 交换达成时双方各得物品估值的 10%，向下取整。
// 注意这是完成奖励而非转账：兑换路径才是全额转移估值。
const acceptanceBonusDivisor = 10

// settleRedemption 积分兑换结算：请求方全额支付估值，Swap 直接以 completed 创建。
func settleRedemption(requester *models.User, item *models.Item, input CreateSwapInput, message string) (*models.Swap, error) {
	var swap *models.Swap
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 原子占用物品，输掉竞争则整体失败
		res := tx.Model(&models.Item{}).
			Where("id = ? AND status = ?", item.ID, models.ItemStatusAvailable).
			UpdateColumn("status", models.ItemStatusSwapped)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			settlementConflictsTotal.Inc()
			return ErrItemUnavailable
		}

		// 2. 条件扣款：余额不足时 0 行更新，回滚掉第 1 步
		res = tx.Model(&models.User{}).
			Where("id = ? AND points >= ?", requester.ID, item.Points).
			UpdateColumn("points", gorm.Expr("points - ?", item.Points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var current models.User
			if err := tx.Select("points").First(&current, requester.ID).Error; err != nil {
				return err
			}
			return &InsufficientPointsError{Required: item.Points, Available: current.Points}
		}

		// 3. 物主入账，双方重算等级
		if err := creditTx(tx, item.UserID, item.Points); err != nil {
			return err
		}
		if err := recomputeLevelTx(tx, requester.ID); err != nil {
			return err
		}
		if err := recomputeLevelTx(tx, item.UserID); err != nil {
			return err
		}

		// 4. Swap 直接以终态创建
		swap = &models.Swap{
			Sid:           uuid.NewString(),
			RequesterID:   requester.ID,
			ItemID:        item.ID,
			OfferedItemID: input.OfferedItemID,
			PointsOffered: input.PointsOffered,
			Message:       message,
			Status:        models.SwapStatusCompleted,
		}
		if err := tx.Create(swap).Error; err != nil {
			return err
		}

		// 5. 一条兑换流水，记在请求方名下
		desc := fmt.Sprintf("用 %d 积分兑换了《%s》", item.Points, item.Title)
		return recordActivityTx(tx, requester.ID, models.ActivityPointRedemption, desc, -item.Points, &item.ID)
	})
	if err != nil {
		return nil, err
	}
	swapsSettledTotal.WithLabelValues("redemption").Inc()
	return swap, nil
}

// settleAcceptance 物主接受交换的结算：双方各得完成奖励，物品和 Swap 一起翻转终态。
func settleAcceptance(swap *models.Swap) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		// 1. 原子推进 Swap：仅当仍为 pending。并发的第二次 accept 在这里失败。
		res := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
			UpdateColumn("status", models.SwapStatusCompleted)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOperation
		}

		// 2. 原子占用物品。物品已经被别的结算拿走时回滚第 1 步。
		var item models.Item
		if err := tx.First(&item, swap.ItemID).Error; err != nil {
			return err
		}
		res = tx.Model(&models.Item{}).
			Where("id = ? AND status = ?", item.ID, models.ItemStatusAvailable).
			UpdateColumn("status", models.ItemStatusSwapped)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			settlementConflictsTotal.Inc()
			return ErrItemUnavailable
		}

		// 3. 完成奖励发给双方（不是转账，系统总积分净增 2*bonus）
		bonus := item.Points / acceptanceBonusDivisor
		if bonus > 0 {
			if err := creditTx(tx, swap.RequesterID, bonus); err != nil {
				return err
			}
			if err := creditTx(tx, item.UserID, bonus); err != nil {
				return err
			}
			if err := recomputeLevelTx(tx, swap.RequesterID); err != nil {
				return err
			}
			if err := recomputeLevelTx(tx, item.UserID); err != nil {
				return err
			}
		}

		// 4. 双方各一条完成流水
		desc := fmt.Sprintf("交换达成：《%s》，获得 %d 积分奖励", item.Title, bonus)
		if err := recordActivityTx(tx, swap.RequesterID, models.ActivitySwapCompleted, desc, bonus, &item.ID); err != nil {
			return err
		}
		return recordActivityTx(tx, item.UserID, models.ActivitySwapCompleted, desc, bonus, &item.ID)
	})
	if err != nil {
		return err
	}
	swapsSettledTotal.WithLabelValues("acceptance").Inc()
	return nil
}
