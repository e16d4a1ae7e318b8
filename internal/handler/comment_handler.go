package handler

import (
	"microblog/internal/service"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论接口
type CommentHandler struct {
	service  *service.CommentService
	pageSize int
}

// NewCommentHandler 创建CommentHandler实例
func NewCommentHandler(s *service.CommentService, pageSize int) *CommentHandler {
	return &CommentHandler{service: s, pageSize: pageSize}
}

// Add 发表评论（需要Comment能力）
func (h *CommentHandler) Add(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		response.BadRequest(c, "invalid post_id")
		return
	}
	type req struct {
		Body string `json:"body" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.service.Add(token.CurrentUser(c), postID, r.Body)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "评论已发表", response.FilterCommentInfo(comment))
}

// ListPublic 文章的公开评论列表（隐藏被屏蔽的）
func (h *CommentHandler) ListPublic(c *gin.Context) {
	postID, ok := paramID(c, "post_id")
	if !ok {
		response.BadRequest(c, "invalid post_id")
		return
	}
	page, pageSize := pageParams(c, h.pageSize)
	comments, err := h.service.ListPublic(postID, page, pageSize)
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
