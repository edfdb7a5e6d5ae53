package handlers

import (
	"errors"
	"log"
	"net/http"
	"rewear/internal/services"

	"github.com/gin-gonic/gin"
)

// JSONError 把业务错误映射成 HTTP 状态码：
// 404 未找到，400 参数/积分不足，403 无权限，409 重复请求/已被结算。
// 其余视为基础设施故障，记日志后返回笼统的 500。
func JSONError(c *gin.Context, err error) {
	var insufficient *services.InsufficientPointsError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &insufficient):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "insufficient points",
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.Is(err, services.ErrInvalidOperation), errors.Is(err, services.ErrInvalidOffer):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicateRequest), errors.Is(err, services.ErrItemUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
