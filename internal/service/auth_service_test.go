package service

import (
	"testing"
	"time"

	"microblog/config"
	"microblog/internal/mailer"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/permission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsDefaultRole(t *testing.T) {
	env := newTestEnv(t)

	u, authToken, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, authToken)
	assert.Equal(t, permission.RoleUser, u.Role.Name)
	assert.False(t, u.Confirmed)

	// 注册即可用访问令牌
	userID, err := env.tokens.VerifyAuth(authToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, userID)
}

func TestRegisterAdminEmailGetsAdministrator(t *testing.T) {
	env := newTestEnv(t)

	u, _, err := env.auth.Register("Admin@Example.com", "admin", "password123")
	require.NoError(t, err)
	assert.Equal(t, permission.RoleAdministrator, u.Role.Name)
	assert.True(t, permission.Can(permission.Permission(u.Role.Permissions), permission.Administer))
}

func TestRegisterHonorsConfiguredDefaultRole(t *testing.T) {
	env := newTestEnv(t)

	// 配置指定默认角色时按名称取角色，而不是角色表的默认标记
	custom := NewAuthService(env.db, env.userRepo, env.roleRepo,
		repository.NewFollowRepository(env.db), env.tokens, mailer.NewLogMailer(),
		config.AppConfig{AdminEmail: "admin@example.com", DefaultRole: permission.RoleModerator},
		time.Hour)

	u, _, err := custom.Register("carol@example.com", "carol", "password123")
	require.NoError(t, err)
	assert.Equal(t, permission.RoleModerator, u.Role.Name)

	// 配置的角色名不存在时注册失败，不静默落回默认角色
	broken := NewAuthService(env.db, env.userRepo, env.roleRepo,
		repository.NewFollowRepository(env.db), env.tokens, mailer.NewLogMailer(),
		config.AppConfig{AdminEmail: "admin@example.com", DefaultRole: "Nonexistent"},
		time.Hour)
	_, _, err = broken.Register("dave@example.com", "dave", "password123")
	assert.Error(t, err)
}

func TestRegisterCreatesSelfFollow(t *testing.T) {
	env := newTestEnv(t)

	u, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	var cnt int64
	require.NoError(t, env.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", u.ID, u.ID).
		Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	_, _, err = env.auth.Register("alice@example.com", "alice2", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// 邮箱大小写不敏感
	_, _, err = env.auth.Register("ALICE@example.com", "alice3", "password123")
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, _, err = env.auth.Register("other@example.com", "alice", "password123")
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "alice")

	u, authToken, err := env.auth.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)
	assert.NotEmpty(t, authToken)

	// 密码错误与账号不存在返回同一错误
	_, _, err = env.auth.Login("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = env.auth.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestConfirmFlow(t *testing.T) {
	env := newTestEnv(t)

	u, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)
	require.False(t, u.Confirmed)

	confirmToken, err := env.tokens.IssueConfirm(u.ID)
	require.NoError(t, err)
	require.NoError(t, env.auth.Confirm(u, confirmToken))
	assert.True(t, u.Confirmed)

	// 数据库状态同步
	fresh, err := env.userRepo.GetByID(u.ID)
	require.NoError(t, err)
	assert.True(t, fresh.Confirmed)

	// 重复确认
	err = env.auth.Confirm(u, confirmToken)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestConfirmRejectsForeignToken(t *testing.T) {
	env := newTestEnv(t)

	alice, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)
	bob, _, err := env.auth.Register("bob@example.com", "bob", "password123")
	require.NoError(t, err)

	// Bob的令牌确认不了Alice的账号
	bobToken, err := env.tokens.IssueConfirm(bob.ID)
	require.NoError(t, err)
	err = env.auth.Confirm(alice, bobToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.False(t, alice.Confirmed)

	// 访问令牌也确认不了
	authToken, err := env.tokens.IssueAuth(alice.ID)
	require.NoError(t, err)
	err = env.auth.Confirm(alice, authToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestResendConfirmation(t *testing.T) {
	env := newTestEnv(t)

	u, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)
	require.NoError(t, env.auth.ResendConfirmation(u))

	confirmToken, err := env.tokens.IssueConfirm(u.ID)
	require.NoError(t, err)
	require.NoError(t, env.auth.Confirm(u, confirmToken))

	err = env.auth.ResendConfirmation(u)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)
}

func TestChangePassword(t *testing.T) {
	env := newTestEnv(t)
	u := env.registerUser(t, "alice")

	err := env.auth.ChangePassword(u, "wrongpass", "newpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, env.auth.ChangePassword(u, "password123", "newpassword"))

	_, _, err = env.auth.Login("alice@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = env.auth.Login("alice@example.com", "newpassword")
	require.NoError(t, err)
}

func TestChangeEmail(t *testing.T) {
	env := newTestEnv(t)
	u := env.registerUser(t, "alice")
	env.registerUser(t, "bob")

	err := env.auth.ChangeEmail(u, "bob@example.com")
	assert.ErrorIs(t, err, ErrEmailTaken)

	require.NoError(t, env.auth.ChangeEmail(u, "alice-new@example.com"))
	_, _, err = env.auth.Login("alice-new@example.com", "password123")
	require.NoError(t, err)
}

func TestDeleteAccountCascades(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	require.NoError(t, env.follows.Follow(bob, "alice"))

	post, err := env.posts.Create(alice, "标题", "正文")
	require.NoError(t, err)
	_, err = env.comments.Add(bob, post.ID, "Bob的评论")
	require.NoError(t, err)
	bobPost, err := env.posts.Create(bob, "Bob的标题", "正文")
	require.NoError(t, err)
	_, err = env.comments.Add(alice, bobPost.ID, "Alice的评论")
	require.NoError(t, err)

	require.NoError(t, env.auth.DeleteAccount(alice))

	// 用户、文章、双向评论、关注边全部清除
	_, err = env.userRepo.GetByID(alice.ID)
	assert.Error(t, err)
	var postCnt, commentCnt, followCnt int64
	require.NoError(t, env.db.Model(&model.Post{}).Where("author_id = ?", alice.ID).Count(&postCnt).Error)
	assert.Zero(t, postCnt)
	require.NoError(t, env.db.Model(&model.Comment{}).
		Where("author_id = ? OR post_id = ?", alice.ID, post.ID).Count(&commentCnt).Error)
	assert.Zero(t, commentCnt)
	require.NoError(t, env.db.Model(&model.Follow{}).
		Where("follower_id = ? OR followed_id = ?", alice.ID, alice.ID).Count(&followCnt).Error)
	assert.Zero(t, followCnt)

	// Bob与他的文章不受影响
	_, err = env.userRepo.GetByID(bob.ID)
	require.NoError(t, err)
	_, err = env.posts.Get(bobPost.ID)
	require.NoError(t, err)
}

func TestConfirmTokenExpiryWindow(t *testing.T) {
	env := newTestEnv(t)

	u, _, err := env.auth.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)

	confirmToken, err := env.tokens.IssueConfirm(u.ID)
	require.NoError(t, err)

	// 最大年龄为零的校验窗口必然失败
	_, err = env.tokens.VerifyConfirm(confirmToken, -time.Second)
	assert.Error(t, err)
}
