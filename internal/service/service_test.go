package service

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"microblog/config"
	"microblog/internal/mailer"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/logger"
	"microblog/pkg/token"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var loggerOnce sync.Once

// testEnv 服务层测试环境：内存数据库 + 全套服务
type testEnv struct {
	db       *gorm.DB
	userRepo *repository.UserRepository
	roleRepo *repository.RoleRepository
	tokens   *token.Service
	auth     *AuthService
	users    *UserService
	follows  *FollowService
	posts    *PostService
	comments *CommentService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	loggerOnce.Do(func() {
		logger.InitLogger(config.LogConfig{
			Level:    "error",
			Filename: filepath.Join(t.TempDir(), "test.log"),
			MaxSize:  1,
		})
	})

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
	))

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	require.NoError(t, roleRepo.Seed())

	tokenSvc := token.NewService(config.TokenConfig{
		Secret:        "test-secret",
		Issuer:        "microblog-test",
		AuthExpire:    time.Hour,
		ConfirmMaxAge: time.Hour,
	})
	appCfg := config.AppConfig{
		AdminEmail:  "admin@example.com",
		DefaultRole: "User",
	}

	return &testEnv{
		db:       db,
		userRepo: userRepo,
		roleRepo: roleRepo,
		tokens:   tokenSvc,
		auth:     NewAuthService(db, userRepo, roleRepo, followRepo, tokenSvc, mailer.NewLogMailer(), appCfg, time.Hour),
		users:    NewUserService(userRepo, roleRepo, postRepo, followRepo),
		follows:  NewFollowService(userRepo, followRepo),
		posts:    NewPostService(db, userRepo, postRepo, commentRepo, followRepo, nil),
		comments: NewCommentService(commentRepo, postRepo),
	}
}

// registerUser 注册并确认一个普通用户
func (e *testEnv) registerUser(t *testing.T, name string) *model.User {
	t.Helper()
	u, _, err := e.auth.Register(fmt.Sprintf("%s@example.com", name), name, "password123")
	require.NoError(t, err)

	confirmToken, err := e.tokens.IssueConfirm(u.ID)
	require.NoError(t, err)
	require.NoError(t, e.auth.Confirm(u, confirmToken))
	return u
}

// promote 把用户提升到指定角色
func (e *testEnv) promote(t *testing.T, u *model.User, roleName string) {
	t.Helper()
	role, err := e.roleRepo.GetByName(roleName)
	require.NoError(t, err)
	u.RoleID = role.ID
	u.Role = *role
	require.NoError(t, e.userRepo.Update(u))
}
