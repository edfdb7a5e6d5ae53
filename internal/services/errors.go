package services

import (
	"errors"
	"fmt"
)

// 预期内的业务错误，由 handler 层映射为 HTTP 状态码。
// 只有基础设施故障（数据库不可用等）才作为普通 error 向上冒泡。
var (
	ErrNotFound         = errors.New("not found")
	ErrItemUnavailable  = errors.New("item is not available")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrDuplicateRequest = errors.New("a pending swap for this item already exists")
	ErrInvalidOffer     = errors.New("offered item is invalid")
	ErrForbidden        = errors.New("forbidden")
)

// InsufficientPointsError 兑换时积分不足，携带所需/可用余额供界面提示
type InsufficientPointsError struct {
	Required  int `json:"required"`
	Available int `json:"available"`
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: required %d, available %d", e.Required, e.Available)
}
