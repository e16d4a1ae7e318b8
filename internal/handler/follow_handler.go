package handler

import (
	"microblog/internal/repository"
	"microblog/internal/service"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// FollowHandler 关注关系接口
type FollowHandler struct {
	service  *service.FollowService
	pageSize int
}

// NewFollowHandler 创建FollowHandler实例
func NewFollowHandler(s *service.FollowService, pageSize int) *FollowHandler {
	return &FollowHandler{service: s, pageSize: pageSize}
}

// Follow 关注用户（需要Follow能力，幂等）
func (h *FollowHandler) Follow(c *gin.Context) {
	if err := h.service.Follow(token.CurrentUser(c), c.Param("username")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "关注成功", nil)
}

// Unfollow 取消关注（需要Follow能力）
func (h *FollowHandler) Unfollow(c *gin.Context) {
	if err := h.service.Unfollow(token.CurrentUser(c), c.Param("username")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "已取消关注", nil)
}

// Followers 某用户的粉丝列表（公开）
func (h *FollowHandler) Followers(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	edges, err := h.service.Followers(c.Param("username"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"followers": filterFollowEdges(edges),
	})
}

// Following 某用户关注的人（公开）
func (h *FollowHandler) Following(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)
	edges, err := h.service.Following(c.Param("username"), page, pageSize)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, gin.H{
		"page":      page,
		"page_size": pageSize,
		"following": filterFollowEdges(edges),
	})
}

func filterFollowEdges(edges []*repository.FollowEdge) []*response.FollowInfo {
	infos := make([]*response.FollowInfo, 0, len(edges))
	for _, e := range edges {
		infos = append(infos, &response.FollowInfo{
			UserID:    e.UserID,
			Username:  e.Username,
			Timestamp: e.CreatedAt,
		})
	}
	return infos
}
