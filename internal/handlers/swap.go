package handlers

import (
	"net/http"
	"rewear/internal/middleware"
	"rewear/internal/services"
	"rewear/internal/utils"

	"github.com/gin-gonic/gin"
)

type SwapHandler struct{}

func NewSwapHandler() *SwapHandler {
	return &SwapHandler{}
}

// Create 提交交换请求。出价达到物品估值时立即兑换结算。
func (h *SwapHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input services.CreateSwapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	swap, err := services.CreateSwap(user, input)
	if err != nil {
		JSONError(c, err)
		return
	}

	// 结算或上新后详情缓存失效
	utils.GetCache().Delete("item:detail:" + utils.UintToString(swap.ItemID))

	c.JSON(http.StatusCreated, gin.H{"swap": swap})
}

// Accept 物主接受交换
func (h *SwapHandler) Accept(c *gin.Context) {
	user := middleware.CurrentUser(c)
	sid := c.Param("sid")

	if err := services.AcceptSwap(sid, user); err != nil {
		JSONError(c, err)
		return
	}

	if swap, err := services.GetSwap(sid); err == nil {
		utils.GetCache().Delete("item:detail:" + utils.UintToString(swap.ItemID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "swap completed"})
}

// Decline 物主拒绝交换
func (h *SwapHandler) Decline(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := services.DeclineSwap(c.Param("sid"), user); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "swap declined"})
}

// Cancel 请求方撤回交换
func (h *SwapHandler) Cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := services.CancelSwap(c.Param("sid"), user); err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "swap cancelled"})
}

// Detail 查询单个交换请求，仅双方可见
func (h *SwapHandler) Detail(c *gin.Context) {
	user := middleware.CurrentUser(c)

	swap, err := services.GetSwap(c.Param("sid"))
	if err != nil {
		JSONError(c, err)
		return
	}
	if user.ID != swap.RequesterID && user.ID != swap.Item.UserID && user.Role != "admin" {
		JSONError(c, services.ErrForbidden)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swap": swap})
}

// List 查询我的交换请求。role=outgoing 为我发出的，role=incoming 为针对我物品的。
func (h *SwapHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	role := c.DefaultQuery("role", "outgoing")
	status := c.Query("status")

	var err error
	var swaps interface{}
	if role == "incoming" {
		swaps, err = services.ListIncomingSwaps(user.ID, status)
	} else {
		swaps, err = services.ListSwapsByRequester(user.ID, status)
	}
	if err != nil {
		JSONError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"swaps": swaps})
}
