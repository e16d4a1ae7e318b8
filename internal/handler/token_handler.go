package handler

import (
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
)

// TokenHandler API令牌签发（HTTP Basic通道）
type TokenHandler struct {
	tokenSvc *token.Service
}

// NewTokenHandler 创建TokenHandler实例
func NewTokenHandler(tokenSvc *token.Service) *TokenHandler {
	return &TokenHandler{tokenSvc: tokenSvc}
}

// IssueToken 签发API访问令牌
// 仅密码认证的请求可签发；凭令牌认证的请求不能换发新令牌
func (h *TokenHandler) IssueToken(c *gin.Context) {
	user := token.CurrentUser(c)
	if user == nil || token.TokenUsed(c) {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	authToken, err := h.tokenSvc.IssueAuth(user.ID)
	if err != nil {
		response.InternalError(c, "令牌签发失败")
		return
	}

	response.Success(c, &response.TokenResponse{
		Token:      authToken,
		Expiration: h.tokenSvc.AuthExpireSeconds(),
	})
}
