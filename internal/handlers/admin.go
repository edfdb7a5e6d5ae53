package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"rewear/internal/db"
	"rewear/internal/models"
	"rewear/internal/services"
	"rewear/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// PendingItems 待审核物品列表
func (h *AdminHandler) PendingItems(c *gin.Context) {
	var items []models.Item
	if err := db.DB.Preload("User").
		Where("status = ?", models.ItemStatusPending).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// ApproveItem 审核通过：pending → available
func (h *AdminHandler) ApproveItem(c *gin.Context) {
	h.moderateItem(c, models.ItemStatusAvailable, models.ActivityItemApproved, "《%s》审核通过，已上架")
}

// RejectItem 审核驳回：pending → removed（驳回和下架统一为 removed 终态）
func (h *AdminHandler) RejectItem(c *gin.Context) {
	h.moderateItem(c, models.ItemStatusRemoved, models.ActivityItemRejected, "《%s》未通过审核")
}

func (h *AdminHandler) moderateItem(c *gin.Context, target models.ItemStatus, typ models.ActivityType, descFormat string) {
	pid := c.Param("pid")

	var item models.Item
	if err := db.DB.Where("pid = ?", pid).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, services.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// 只允许从 pending 推进，条件更新防止并发重复审核
	res := db.DB.Model(&models.Item{}).
		Where("id = ? AND status = ?", item.ID, models.ItemStatusPending).
		UpdateColumn("status", target)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, services.ErrInvalidOperation)
		return
	}

	services.RecordActivity(item.UserID, typ, fmt.Sprintf(descFormat, item.Title), 0, &item.ID)
	utils.GetCache().Delete("item:detail:" + utils.UintToString(item.ID))

	c.JSON(http.StatusOK, gin.H{"status": target})
}

// RemoveItem 下架已上架的物品：available → removed
func (h *AdminHandler) RemoveItem(c *gin.Context) {
	pid := c.Param("pid")

	var item models.Item
	if err := db.DB.Where("pid = ?", pid).First(&item).Error; err != nil {
		JSONError(c, services.ErrNotFound)
		return
	}

	res := db.DB.Model(&models.Item{}).
		Where("id = ? AND status = ?", item.ID, models.ItemStatusAvailable).
		UpdateColumn("status", models.ItemStatusRemoved)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, services.ErrInvalidOperation)
		return
	}

	utils.GetCache().Delete("item:detail:" + utils.UintToString(item.ID))
	c.JSON(http.StatusOK, gin.H{"status": models.ItemStatusRemoved})
}

type adjustPointsRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required,max=200"`
}

// AdjustPoints 管理员调整用户积分，走台账同一套 credit/recompute
func (h *AdminHandler) AdjustPoints(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var req adjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.AdminAdjustPoints(userID, req.Delta, utils.SanitizeText(req.Reason)); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "points adjusted"})
}

type banRequest struct {
	Reason string `json:"reason" binding:"required,max=200"`
}

// BanUser 封禁用户，封禁后只能读
func (h *AdminHandler) BanUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var req banRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	res := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_banned":  true,
		"ban_reason": utils.SanitizeText(req.Reason),
		"banned_at":  &now,
	})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, services.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user banned"})
}

// UnbanUser 解封
func (h *AdminHandler) UnbanUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	res := db.DB.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_banned":  false,
		"ban_reason": "",
		"banned_at":  nil,
	})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if res.RowsAffected == 0 {
		JSONError(c, services.ErrNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user unbanned"})
}
