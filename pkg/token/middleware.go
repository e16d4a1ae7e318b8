package token

import (
	"strings"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/logger"
	"microblog/pkg/password"
	"microblog/pkg/permission"
	"microblog/pkg/redis"
	"microblog/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// ContextUserKey 当前认证用户在gin.Context中的键名
	ContextUserKey = "current_user"
	// ContextTokenUsedKey 标记本次请求凭令牌认证（而非密码）
	ContextTokenUsedKey = "token_used"
)

// CurrentUser 从gin.Context中取出当前认证用户
// 身份值由网关显式注入并随请求传递，未认证时返回nil
func CurrentUser(c *gin.Context) *model.User {
	if v, exists := c.Get(ContextUserKey); exists {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}

// TokenUsed 本次请求是否凭令牌认证
func TokenUsed(c *gin.Context) bool {
	return c.GetBool(ContextTokenUsedKey)
}

// setIdentity 注入身份并记一次活动心跳
func setIdentity(c *gin.Context, userRepo *repository.UserRepository, user *model.User, tokenUsed bool) {
	c.Set(ContextUserKey, user)
	c.Set(ContextTokenUsedKey, tokenUsed)

	// 活动心跳：last_seen单调前移，redis在线状态镜像，失败仅降级
	_ = userRepo.Ping(user.ID)
	_ = redis.TouchPresence(user.ID, user.Username)
}

// AuthMiddleware Bearer令牌认证中间件
// 从请求头提取 Authorization: Bearer <token>，校验后加载用户注入Context
func (s *Service) AuthMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "缺少Authorization请求头")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "Authorization格式错误，应为Bearer <token>")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := s.VerifyAuth(tokenString)
		if err != nil {
			response.Unauthorized(c, "token无效或已过期")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.Unauthorized(c, "用户不存在")
			c.Abort()
			return
		}

		setIdentity(c, userRepo, user, true)
		c.Next()
	}
}

// BasicAuthMiddleware HTTP Basic认证中间件（API通道）
// email:password 凭密码认证；token加空密码凭令牌认证
// 凭令牌认证的请求不允许再签发新令牌（由 /tokens 处理器检查 TokenUsed）
func (s *Service) BasicAuthMiddleware(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier, secret, ok := c.Request.BasicAuth()
		if !ok || identifier == "" {
			response.Unauthorized(c, "invalid credentials")
			c.Abort()
			return
		}

		if secret == "" {
			// 令牌通道
			userID, err := s.VerifyAuth(identifier)
			if err != nil {
				response.Unauthorized(c, "invalid credentials")
				c.Abort()
				return
			}
			user, err := userRepo.GetByID(userID)
			if err != nil {
				response.Unauthorized(c, "invalid credentials")
				c.Abort()
				return
			}
			setIdentity(c, userRepo, user, true)
			c.Next()
			return
		}

		// 密码通道
		user, err := userRepo.GetByEmail(strings.ToLower(identifier))
		if err != nil {
			response.Unauthorized(c, "invalid credentials")
			c.Abort()
			return
		}
		if !password.Verify(secret, user.PasswordHash) {
			response.Unauthorized(c, "invalid credentials")
			c.Abort()
			return
		}
		setIdentity(c, userRepo, user, false)
		c.Next()
	}
}

// RequireConfirmed 未确认账号拦截
// 认证类路由（确认、重发确认）不挂该中间件
func RequireConfirmed() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "用户未认证")
			c.Abort()
			return
		}
		if !user.Confirmed {
			response.Forbidden(c, "账号尚未确认")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission 能力检查中间件
// 匿名身份对任何能力均为false
func RequirePermission(required permission.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c, "用户未认证")
			c.Abort()
			return
		}
		if !permission.Can(permission.Permission(user.Role.Permissions), required) {
			logger.Warn("能力不足",
				zap.Uint("user_id", user.ID),
				zap.String("role", user.Role.Name),
				zap.String("path", c.Request.URL.Path),
			)
			response.Forbidden(c, "权限不足")
			c.Abort()
			return
		}
		c.Next()
	}
}
