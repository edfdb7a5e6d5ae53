package handlers

import (
	"net/http"
	"rewear/internal/db"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/services"
	"rewear/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile - 公开主页 /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	userID := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		JSONError(c, services.ErrNotFound)
		return
	}

	levelName, levelIcon := utils.GetUserLevel(user.Points)

	var items []models.Item
	db.DB.Where("user_id = ? AND status = ?", user.ID, models.ItemStatusAvailable).
		Order("created_at DESC").
		Limit(50).
		Find(&items)

	// 公开主页不暴露邮箱和封禁详情
	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"name":       user.Name,
		"avatar":     user.Avatar,
		"level":      levelName,
		"level_icon": levelIcon,
		"days_since": utils.GetDaysSinceJoined(user.CreatedAt),
		"items":      items,
	})
}

// Dashboard - 个人面板概览
func (h *UserHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var itemCount, swapCount, completedCount int64
	db.DB.Model(&models.Item{}).Where("user_id = ?", user.ID).Count(&itemCount)
	db.DB.Model(&models.Swap{}).Where("requester_id = ?", user.ID).Count(&swapCount)
	db.DB.Model(&models.Swap{}).
		Where("requester_id = ? AND status = ?", user.ID, models.SwapStatusCompleted).
		Count(&completedCount)

	levelName, levelIcon := utils.GetUserLevel(user.Points)

	c.JSON(http.StatusOK, gin.H{
		"user":            user,
		"level":           levelName,
		"level_icon":      levelIcon,
		"days_since":      utils.GetDaysSinceJoined(user.CreatedAt),
		"item_count":      itemCount,
		"swap_count":      swapCount,
		"completed_swaps": completedCount,
	})
}

// Activities - 积分与状态流水
func (h *UserHandler) Activities(c *gin.Context) {
	user := middleware.CurrentUser(c)

	activities, err := services.GetUserActivities(user.ID, utils.StringToInt(c.DefaultQuery("limit", "50")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"activities": activities})
}
