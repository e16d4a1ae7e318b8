package handler

import (
	"errors"
	"strconv"

	"microblog/internal/service"
	"microblog/pkg/response"

	"github.com/gin-gonic/gin"
)

// handleServiceError 服务层错误→统一响应映射
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "邮箱或密码错误")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "权限不足")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "目标不存在")
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrSelfUnfollow),
		errors.Is(err, service.ErrAlreadyConfirmed),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrValidation):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, "服务内部错误")
	}
}

// pageParams 统一读取分页参数
func pageParams(c *gin.Context, defaultSize int) (page, pageSize int) {
	page = queryInt(c, "page", 1)
	pageSize = queryInt(c, "page_size", defaultSize)
	return page, pageSize
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return defaultValue
}

// paramID 读取路径中的数字ID
func paramID(c *gin.Context, key string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(key), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
