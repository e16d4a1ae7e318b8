package handler

import (
	"microblog/internal/service"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// AuthHandler 注册/登录/确认/凭证维护
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler 创建AuthHandler实例
func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required,email"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=6"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, authToken, err := h.service.Register(r.Email, r.Username, r.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "注册成功，确认邮件已发送", &response.RegisterResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: authToken,
	})
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	type req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, authToken, err := h.service.Login(r.Email, r.Password)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SuccessWithMessage(c, "登录成功", &response.LoginResponse{
		User:        response.FilterUserInfo(user),
		AccessToken: authToken,
	})
}

// Confirm 账号确认（需要认证）
// 令牌的主体必须与当前认证用户一致
func (h *AuthHandler) Confirm(c *gin.Context) {
	user := token.CurrentUser(c)
	if err := h.service.Confirm(user, c.Param("token")); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "账号确认成功", response.FilterUserInfo(user))
}

// ResendConfirmation 重发确认令牌（需要认证）
func (h *AuthHandler) ResendConfirmation(c *gin.Context) {
	user := token.CurrentUser(c)
	if err := h.service.ResendConfirmation(user); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "确认邮件已重新发送", nil)
}

// ChangePassword 修改密码（需要认证）
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	type req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.service.ChangePassword(token.CurrentUser(c), r.OldPassword, r.NewPassword); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "密码已更新", nil)
}

// ChangeEmail 修改邮箱（需要认证）
func (h *AuthHandler) ChangeEmail(c *gin.Context) {
	type req struct {
		Email string `json:"email" binding:"required,email"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user := token.CurrentUser(c)
	if err := h.service.ChangeEmail(user, r.Email); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "邮箱已更新", response.FilterUserInfo(user))
}

// DeleteAccount 注销账号（需要认证）
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.service.DeleteAccount(token.CurrentUser(c)); err != nil {
		handleServiceError(c, err)
		return
	}
	response.SuccessWithMessage(c, "账号已注销", nil)
}
