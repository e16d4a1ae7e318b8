package service

import (
	"errors"

	"microblog/internal/model"
	"microblog/pkg/permission"
)

// 服务层错误分类，handler据此映射响应码
var (
	ErrInvalidCredentials = errors.New("invalid credentials")            // 邮箱/密码/令牌无效
	ErrForbidden          = errors.New("forbidden")                      // 已认证但能力不足
	ErrNotFound           = errors.New("not found")                      // 目标资源不存在
	ErrEmailTaken         = errors.New("email already registered")       // 邮箱已被占用
	ErrUsernameTaken      = errors.New("username already taken")         // 用户名已被占用
	ErrSelfUnfollow       = errors.New("cannot unfollow yourself")       // 自关注边不可通过公开入口删除
	ErrInvalidToken       = errors.New("invalid or expired token")       // 确认令牌无效或过期
	ErrAlreadyConfirmed   = errors.New("account is already confirmed")   // 重复确认
	ErrValidation         = errors.New("validation failed")              // 字段校验失败
)

// userCan 判断用户是否具备所需能力
// 匿名身份（nil）对任何能力都返回false
func userCan(u *model.User, p permission.Permission) bool {
	if u == nil {
		return false
	}
	return permission.Can(permission.Permission(u.Role.Permissions), p)
}
