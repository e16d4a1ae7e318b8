package response

import (
	"net/http"

	"microblog/internal/model"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`            // 状态码：0表示成功，其他表示错误
	Message string      `json:"message"`         // 响应消息
	Data    interface{} `json:"data,omitempty"`  // 响应数据
	Error   string      `json:"error,omitempty"` // 错误详情（仅在开发环境显示）
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 带自定义消息的成功响应
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: message,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// BadRequest 400错误
func BadRequest(c *gin.Context, message string) {
	Error(c, 400, message)
}

// Unauthorized 401错误
func Unauthorized(c *gin.Context, message string) {
	Error(c, 401, message)
}

// Forbidden 403错误
func Forbidden(c *gin.Context, message string) {
	Error(c, 403, message)
}

// NotFound 404错误
func NotFound(c *gin.Context, message string) {
	Error(c, 404, message)
}

// InternalError 500错误
func InternalError(c *gin.Context, message string) {
	Error(c, 500, message)
}

// UserInfo 用户信息（隐藏敏感字段）
type UserInfo struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Confirmed   bool   `json:"confirmed"`
	Location    string `json:"location,omitempty"`
	AboutMe     string `json:"about_me,omitempty"`
	MemberSince string `json:"member_since"`
	LastSeen    string `json:"last_seen"`
}

// FilterUserInfo 过滤用户信息，隐藏敏感字段
func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}

	return &UserInfo{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role.Name,
		Confirmed:   user.Confirmed,
		Location:    user.Location,
		AboutMe:     user.AboutMe,
		MemberSince: user.MemberSince.Format("2006-01-02 15:04:05"),
		LastSeen:    user.LastSeen.Format("2006-01-02 15:04:05"),
	}
}

// PostInfo 文章信息
type PostInfo struct {
	ID        uint   `json:"id"`
	AuthorID  uint   `json:"author_id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FilterPostInfo 过滤文章信息
func FilterPostInfo(post *model.Post) *PostInfo {
	if post == nil {
		return nil
	}

	return &PostInfo{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Body:      post.Body,
		BodyHTML:  post.BodyHTML,
		CreatedAt: post.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt: post.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterPostList 过滤文章列表
func FilterPostList(posts []*model.Post) []*PostInfo {
	infos := make([]*PostInfo, 0, len(posts))
	for _, p := range posts {
		infos = append(infos, FilterPostInfo(p))
	}
	return infos
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID        uint   `json:"id"`
	PostID    uint   `json:"post_id"`
	AuthorID  uint   `json:"author_id"`
	Body      string `json:"body"`
	BodyHTML  string `json:"body_html"`
	Disabled  bool   `json:"disabled"`
	CreatedAt string `json:"created_at"`
}

// FilterCommentInfo 过滤评论信息
func FilterCommentInfo(comment *model.Comment) *CommentInfo {
	if comment == nil {
		return nil
	}

	return &CommentInfo{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Body:      comment.Body,
		BodyHTML:  comment.BodyHTML,
		Disabled:  comment.Disabled,
		CreatedAt: comment.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// FilterCommentList 过滤评论列表
func FilterCommentList(comments []*model.Comment) []*CommentInfo {
	infos := make([]*CommentInfo, 0, len(comments))
	for _, cm := range comments {
		infos = append(infos, FilterCommentInfo(cm))
	}
	return infos
}

// FollowInfo 关注关系信息
type FollowInfo struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
}

// TokenResponse API令牌响应
// Expiration 为有效期秒数，签发时已写入令牌
type TokenResponse struct {
	Token      string `json:"token"`
	Expiration int64  `json:"expiration"`
}

// ProfileResponse 用户主页响应
type ProfileResponse struct {
	User      *UserInfo `json:"user"`
	PostCount int64     `json:"post_count"`
	Followers int64     `json:"followers"`
	Following int64     `json:"following"`
}
