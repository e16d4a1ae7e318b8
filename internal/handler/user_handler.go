package handler

import (
	"microblog/internal/service"
	"microblog/pkg/redis"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户资料接口
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler 创建UserHandler实例
func NewUserHandler(s *service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// GetProfile 查询用户主页（公开）
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Param("username"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.Success(c, &response.ProfileResponse{
		User:      response.FilterUserInfo(profile.User),
		PostCount: profile.PostCount,
		Followers: profile.Followers,
		Following: profile.Following,
	})
}

// UpdateProfile 更新本人资料（需要认证）
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	type req struct {
		Location string `json:"location"`
		AboutMe  string `json:"about_me"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := token.CurrentUser(c)
	if err := h.service.UpdateProfile(user, r.Location, r.AboutMe); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "资料已更新", response.FilterUserInfo(user))
}

// AdminUpdateProfile 管理员编辑任意用户资料（需要Administer能力）
func (h *UserHandler) AdminUpdateProfile(c *gin.Context) {
	targetID, ok := paramID(c, "user_id")
	if !ok {
		response.BadRequest(c, "invalid user_id")
		return
	}
	type req struct {
		Email     *string `json:"email"`
		Username  *string `json:"username"`
		Confirmed *bool   `json:"confirmed"`
		Role      *string `json:"role"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	target, err := h.service.AdminUpdateProfile(token.CurrentUser(c), targetID, service.AdminProfileUpdate{
		Email:     r.Email,
		Username:  r.Username,
		Confirmed: r.Confirmed,
		RoleName:  r.Role,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "用户资料已更新", response.FilterUserInfo(target))
}

// OnlineUsers 在线用户列表（Redis不可用时返回空列表）
func (h *UserHandler) OnlineUsers(c *gin.Context) {
	users, err := redis.OnlineUsers()
	if err != nil {
		users = []*redis.PresenceData{}
	}
	response.Success(c, gin.H{
		"count": len(users),
		"users": users,
	})
}
