package handler

import (
	"microblog/internal/service"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// PostHandler 文章接口
type PostHandler struct {
	service  *service.PostService
	pageSize int
}

// NewPostHandler 创建PostHandler实例
func NewPostHandler(s *service.PostService, pageSize int) *PostHandler {
	return &PostHandler{service: s, pageSize: pageSize}
}

// Create 发表文章（需要Write能力）
func (h *PostHandler) Create(c *gin.Context) {
	type req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.service.Create(token.CurrentUser(c), r.Title, r.Body)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "文章已发表", response.FilterPostInfo(post))
}

// List 全站文章列表
func (h *PostHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	posts, err := h.service.ListAll(page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"posts":     response.FilterPostList(posts),
	})
}

// Feed 关注流（需要认证）
// 经自关注边，天然包含本人文章
func (h *PostHandler) Feed(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	posts, err := h.service.Feed(token.CurrentUser(c), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"posts":     response.FilterPostList(posts),
	})
}

// Get 获取单篇文章
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "post_id")
	if !ok {
		response.BadRequest(c, "invalid post_id")
		return
	}
	post, err := h.service.Get(id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, response.FilterPostInfo(post))
}

// Update 编辑文章（作者本人或管理员）
func (h *PostHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "post_id")
	if !ok {
		response.BadRequest(c, "invalid post_id")
		return
	}
	type req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	post, err := h.service.Update(token.CurrentUser(c), id, r.Title, r.Body)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "文章已更新", response.FilterPostInfo(post))
}

// ListByUser 某用户的文章列表（公开）
func (h *PostHandler) ListByUser(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	posts, err := h.service.ListByUsername(c.Param("username"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"posts":     response.FilterPostList(posts),
	})
}

// Delete 删除文章（作者本人或管理员，评论级联删除）
func (h *PostHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "post_id")
	if !ok {
		response.BadRequest(c, "invalid post_id")
		return
	}
	if err := h.service.Delete(token.CurrentUser(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "文章已删除", nil)
}
