package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"rewear/internal/db"
	"rewear/internal/middleware"
	"rewear/internal/models"
	"rewear/internal/services"
	"rewear/internal/utils"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ItemHandler struct{}

func NewItemHandler() *ItemHandler {
	return &ItemHandler{}
}

type createItemRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Size        string `json:"size" binding:"required"`
	Condition   string `json:"condition" binding:"required"`
	Points      int    `json:"points"`
}

// Create 上架物品，初始为 pending，等待管理员审核
func (h *ItemHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidEnum(req.Category, models.ItemCategories) ||
		!models.ValidEnum(req.Type, models.ItemTypes) ||
		!models.ValidEnum(req.Size, models.ItemSizes) ||
		!models.ValidEnum(req.Condition, models.ItemConditions) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category/type/size/condition"})
		return
	}
	if req.Points < 0 || req.Points > models.MaxItemPoints {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("points must be 0-%d", models.MaxItemPoints)})
		return
	}

	item := models.Item{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      user.ID,
		Title:       utils.SanitizeText(req.Title),
		Description: req.Description, // 原文入库，展示时渲染并过滤
		Category:    req.Category,
		Kind:        req.Type,
		Size:        req.Size,
		Condition:   req.Condition,
		Points:      req.Points,
		Status:      models.ItemStatusPending,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	desc := fmt.Sprintf("上架了《%s》，等待审核", item.Title)
	services.RecordActivity(user.ID, models.ActivityItemListed, desc, 0, &item.ID)

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// List 浏览可交换的物品，支持按分类过滤和分页
func (h *ItemHandler) List(c *gin.Context) {
	query := db.DB.Preload("User").Where("status = ?", models.ItemStatusAvailable)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	const pageSize = 20

	var items []models.Item
	if err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "page": page})
}

// Mine 我的物品列表（含待审核和已下架）
func (h *ItemHandler) Mine(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var items []models.Item
	if err := db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Detail 物品详情，累加浏览数，描述渲染为 HTML。详情走本地缓存。
func (h *ItemHandler) Detail(c *gin.Context) {
	pid := c.Param("pid")

	var item models.Item
	if err := db.DB.Preload("User").Where("pid = ?", pid).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			JSONError(c, services.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// 浏览计数不走缓存
	db.DB.Model(&item).UpdateColumn("views", gorm.Expr("views + ?", 1))
	item.Views++

	cacheKey := "item:detail:" + utils.UintToString(item.ID)
	var descriptionHTML interface{}
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		descriptionHTML = cached
	} else {
		html := utils.RenderMarkdown(item.Description)
		utils.GetCache().Set(cacheKey, html, 5*time.Minute)
		descriptionHTML = html
	}

	c.JSON(http.StatusOK, gin.H{
		"item":             item,
		"description_html": descriptionHTML,
	})
}

// Like 点赞，一人一次
func (h *ItemHandler) Like(c *gin.Context) {
	user := middleware.CurrentUser(c)
	pid := c.Param("pid")

	var item models.Item
	if err := db.DB.Where("pid = ?", pid).First(&item).Error; err != nil {
		JSONError(c, services.ErrNotFound)
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		like := models.Like{UserID: user.ID, ItemID: item.ID}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}
		return tx.Model(&item).UpdateColumn("likes", gorm.Expr("likes + ?", 1)).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// 已点过，返回当前计数即可
			c.JSON(http.StatusOK, gin.H{"likes": item.Likes})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": item.Likes + 1})
}
