package handler

import (
	"microblog/internal/service"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// ModerationHandler 评论审核接口
// 路由挂 ModerateComments 能力检查，服务层再校验一次
type ModerationHandler struct {
	service  *service.CommentService
	pageSize int
}

// NewModerationHandler 创建ModerationHandler实例
func NewModerationHandler(s *service.CommentService, pageSize int) *ModerationHandler {
	return &ModerationHandler{service: s, pageSize: pageSize}
}

// List 管理视图：全部存留评论（含被屏蔽的）
func (h *ModerationHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	comments, err := h.service.ListModeration(token.CurrentUser(c), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"comments":  response.FilterCommentList(comments),
	})
}

// Disable 屏蔽评论
func (h *ModerationHandler) Disable(c *gin.Context) {
	id, ok := paramID(c, "comment_id")
	if !ok {
		response.BadRequest(c, "invalid comment_id")
		return
	}
	if err := h.service.Disable(token.CurrentUser(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "评论已屏蔽", nil)
}

// Enable 恢复评论
func (h *ModerationHandler) Enable(c *gin.Context) {
	id, ok := paramID(c, "comment_id")
	if !ok {
		response.BadRequest(c, "invalid comment_id")
		return
	}
	if err := h.service.Enable(token.CurrentUser(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "评论已恢复", nil)
}

// Delete 永久删除评论
func (h *ModerationHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "comment_id")
	if !ok {
		response.BadRequest(c, "invalid comment_id")
		return
	}
	if err := h.service.Delete(token.CurrentUser(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "评论已删除", nil)
}
