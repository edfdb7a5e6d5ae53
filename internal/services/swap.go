package services

import (
	"errors"
	"fmt"
	"rewear/internal/db"
	"rewear/internal/models"
	"rewear/internal/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 交换请求状态机：pending → {completed, declined, cancelled}。
// 终态不可再变更，所有推进都用条件更新做闸门，靠 0 行更新识别并发竞争。

// CreateSwapInput 创建交换请求的入参
type CreateSwapInput struct {
	ItemID        uint   `json:"item_id" binding:"required"`
	OfferedItemID *uint  `json:"offered_item_id"`
	PointsOffered int    `json:"points_offered"`
	Message       string `json:"message"`
}

// CreateSwap 创建交换请求。前置检查按序执行，第一个失败者返回。
// 出价达到物品估值时立即走兑换结算，Swap 直接以 completed 落库；
// 否则以 pending 创建，等物主接受或拒绝。
func CreateSwap(requester *models.User, input CreateSwapInput) (*models.Swap, error) {
	if input.PointsOffered < 0 {
		return nil, ErrInvalidOperation
	}

	// 1. 目标物品存在且可交换
	var item models.Item
	if err := db.DB.First(&item, input.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if item.Status != models.ItemStatusAvailable {
		return nil, ErrItemUnavailable
	}

	// 2. 不能和自己交换
	if requester.ID == item.UserID {
		return nil, ErrInvalidOperation
	}

	// 3. 同一请求方对同一物品同时只允许一个 pending 请求。
	// 这里的预检查保证错误顺序，真正的防竞态靠 pending 部分唯一索引兜底。
	var pendingCount int64
	if err := db.DB.Model(&models.Swap{}).
		Where("requester_id = ? AND item_id = ? AND status = ?",
			requester.ID, item.ID, models.SwapStatusPending).
		Count(&pendingCount).Error; err != nil {
		return nil, err
	}
	if pendingCount > 0 {
		return nil, ErrDuplicateRequest
	}

	// 4. 以物易物时校验所提供的物品
	if input.OfferedItemID != nil {
		var offered models.Item
		if err := db.DB.First(&offered, *input.OfferedItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidOffer
			}
			return nil, err
		}
		if offered.UserID != requester.ID || offered.Status != models.ItemStatusAvailable {
			return nil, ErrInvalidOffer
		}
	}

	message := utils.SanitizeText(input.Message)

	// 5. 出价达到估值 → 余额校验 + 立即兑换结算
	if input.PointsOffered >= item.Points {
		if requester.Points < item.Points {
			return nil, &InsufficientPointsError{Required: item.Points, Available: requester.Points}
		}
		swap, err := settleRedemption(requester, &item, input, message)
		if err != nil {
			return nil, err
		}
		swapsCreatedTotal.Inc()
		return swap, nil
	}

	// 普通请求：Swap 落库 + 一条零额流水，同一事务
	swap := &models.Swap{
		Sid:           uuid.NewString(),
		RequesterID:   requester.ID,
		ItemID:        item.ID,
		OfferedItemID: input.OfferedItemID,
		PointsOffered: input.PointsOffered,
		Message:       message,
		Status:        models.SwapStatusPending,
	}
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(swap).Error; err != nil {
			// 并发的重复创建会撞 pending 唯一索引
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateRequest
			}
			return err
		}
		desc := fmt.Sprintf("请求交换《%s》", item.Title)
		return recordActivityTx(tx, requester.ID, models.ActivitySwapRequest, desc, 0, &item.ID)
	})
	if err != nil {
		return nil, err
	}
	swapsCreatedTotal.Inc()
	return swap, nil
}

// AcceptSwap 物主接受交换，进入结算。并发的第二个接受者拿到 ErrInvalidOperation。
func AcceptSwap(sid string, actor *models.User) error {
	swap, err := loadSwap(sid)
	if err != nil {
		return err
	}
	if swap.Status.IsTerminal() {
		return ErrInvalidOperation
	}
	if actor.ID != swap.Item.UserID {
		return ErrForbidden
	}
	return settleAcceptance(swap)
}

// DeclineSwap 物主拒绝交换，只记一条零额流水，不动物品和余额。
func DeclineSwap(sid string, actor *models.User) error {
	swap, err := loadSwap(sid)
	if err != nil {
		return err
	}
	if swap.Status.IsTerminal() {
		return ErrInvalidOperation
	}
	if actor.ID != swap.Item.UserID {
		return ErrForbidden
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Swap{}).
			Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
			UpdateColumn("status", models.SwapStatusDeclined)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInvalidOperation
		}
		desc := fmt.Sprintf("交换《%s》的请求被拒绝", swap.Item.Title)
		return recordActivityTx(tx, swap.RequesterID, models.ActivitySwapDeclined, desc, 0, &swap.ItemID)
	})
	if err != nil {
		return err
	}
	swapsDeclinedTotal.Inc()
	return nil
}

// CancelSwap 请求方撤回自己的 pending 请求。不记流水（撤回不是积分/状态事件）。
func CancelSwap(sid string, actor *models.User) error {
	swap, err := loadSwap(sid)
	if err != nil {
		return err
	}
	if swap.Status.IsTerminal() {
		return ErrInvalidOperation
	}
	if actor.ID != swap.RequesterID {
		return ErrForbidden
	}

	res := db.DB.Model(&models.Swap{}).
		Where("id = ? AND status = ?", swap.ID, models.SwapStatusPending).
		UpdateColumn("status", models.SwapStatusCancelled)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidOperation
	}
	swapsCancelledTotal.Inc()
	return nil
}

// GetSwap 按公开 ID 查询单个交换请求
func GetSwap(sid string) (*models.Swap, error) {
	return loadSwap(sid)
}

// ListSwapsByRequester 查询某用户发出的交换请求，status 为空时不过滤
func ListSwapsByRequester(userID uint, status string) ([]models.Swap, error) {
	query := db.DB.Preload("Item").Preload("OfferedItem").
		Where("requester_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var swaps []models.Swap
	err := query.Order("created_at DESC").Limit(100).Find(&swaps).Error
	return swaps, err
}

// ListIncomingSwaps 查询针对某用户物品的交换请求（物主视角）
func ListIncomingSwaps(ownerID uint, status string) ([]models.Swap, error) {
	query := db.DB.Preload("Item").Preload("OfferedItem").Preload("Requester").
		Joins("JOIN items ON items.id = swaps.item_id").
		Where("items.user_id = ?", ownerID)
	if status != "" {
		query = query.Where("swaps.status = ?", status)
	}
	var swaps []models.Swap
	err := query.Order("swaps.created_at DESC").Limit(100).Find(&swaps).Error
	return swaps, err
}

func loadSwap(sid string) (*models.Swap, error) {
	var swap models.Swap
	if err := db.DB.Preload("Item").Where("sid = ?", sid).First(&swap).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &swap, nil
}
