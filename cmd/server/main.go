package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microblog/config"
	"microblog/internal/handler"
	"microblog/internal/mailer"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/internal/service"
	dbPkg "microblog/pkg/db"
	"microblog/pkg/feedpush"
	"microblog/pkg/logger"
	"microblog/pkg/permission"
	redisPkg "microblog/pkg/redis"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. 加载配置
	cfg := config.LoadConfig()

	// 2. 初始化日志系统
	log := logger.InitLogger(cfg.Log)
	defer log.Sync()

	log.Info("=== 微博客服务启动 ===")
	log.Info("服务器配置信息",
		zap.String("port", cfg.Server.Port),
		zap.String("database_host", cfg.Database.Host),
		zap.Int("database_port", cfg.Database.Port),
		zap.String("database_name", cfg.Database.Database),
		zap.Duration("auth_expire", cfg.Token.AuthExpire),
		zap.Duration("confirm_max_age", cfg.Token.ConfirmMaxAge),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 初始化数据库连接
	if _, err := dbPkg.InitDB(cfg.Database); err != nil {
		log.Fatal("数据库连接失败", zap.Error(err))
	}
	defer func() {
		if err := dbPkg.CloseDB(); err != nil {
			log.Error("关闭数据库连接失败", zap.Error(err))
		}
	}()
	log.Info("数据库连接成功")

	// 3.1 自动迁移表结构
	if err := dbPkg.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatal("自动迁移失败", zap.Error(err))
	}
	log.Info("自动迁移完成")

	// 3.2 初始化Redis（失败不阻断启动，相关功能降级）
	if err := redisPkg.InitRedis(cfg.Redis); err != nil {
		log.Warn("Redis连接失败，在线状态与计数缓存降级", zap.Error(err))
	} else {
		defer redisPkg.Close()
		log.Info("Redis连接成功")
	}

	// 3.3 初始化仓储层
	db := dbPkg.GetDB()
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// 3.4 角色种子与自关注边回填（幂等，每次启动执行）
	if err := roleRepo.Seed(); err != nil {
		log.Fatal("角色初始化失败", zap.Error(err))
	}
	if err := followRepo.BackfillSelfFollows(); err != nil {
		log.Fatal("自关注边回填失败", zap.Error(err))
	}
	log.Info("角色与关注图初始化完成")

	// 3.5 初始化业务服务
	tokenSvc := token.NewService(cfg.Token)
	mail := mailer.NewLogMailer()
	authSvc := service.NewAuthService(db, userRepo, roleRepo, followRepo, tokenSvc, mail, cfg.App, cfg.Token.ConfirmMaxAge)
	userSvc := service.NewUserService(userRepo, roleRepo, postRepo, followRepo)
	followSvc := service.NewFollowService(userRepo, followRepo)
	postSvc := service.NewPostService(db, userRepo, postRepo, commentRepo, followRepo, feedpush.GetManager())
	commentSvc := service.NewCommentService(commentRepo, postRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	tokenHandler := handler.NewTokenHandler(tokenSvc)
	userHandler := handler.NewUserHandler(userSvc)
	followHandler := handler.NewFollowHandler(followSvc, cfg.App.FollowsPerPage)
	postHandler := handler.NewPostHandler(postSvc, cfg.App.PostsPerPage)
	commentHandler := handler.NewCommentHandler(commentSvc, cfg.App.CommentsPerPage)
	moderationHandler := handler.NewModerationHandler(commentSvc, cfg.App.CommentsPerPage)
	wsHandler := feedpush.NewHandler(tokenSvc, userRepo)

	// 4. 设置Gin模式
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 5. 创建Gin路由
	router := gin.New()
	router.Use(logger.RequestIDMiddleware())
	router.Use(logger.LoggerMiddleware())
	router.Use(logger.ErrorLoggerMiddleware())

	// 6. 基础路由
	setupBasicRoutes(router)

	v1 := router.Group("/api/v1")
	{
		// 公开接口（无需认证）
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		v1.GET("/posts", postHandler.List)
		v1.GET("/posts/:post_id", postHandler.Get)
		v1.GET("/posts/:post_id/comments", commentHandler.ListPublic)

		v1.GET("/users/:username", userHandler.GetProfile)
		v1.GET("/users/:username/followers", followHandler.Followers)
		v1.GET("/users/:username/following", followHandler.Following)
		v1.GET("/users/:username/posts", postHandler.ListByUser)

		// HTTP Basic通道：密码换发API令牌
		tokens := v1.Group("/tokens")
		tokens.Use(tokenSvc.BasicAuthMiddleware(userRepo))
		{
			tokens.POST("", tokenHandler.IssueToken)
		}

		// 需要认证的接口
		auth := v1.Group("")
		auth.Use(tokenSvc.AuthMiddleware(userRepo))
		{
			// 账号确认入口不要求已确认状态
			auth.POST("/auth/confirm/:token", authHandler.Confirm)
			auth.POST("/auth/resend-confirmation", authHandler.ResendConfirmation)

			// 其余接口要求账号已确认
			confirmed := auth.Group("")
			confirmed.Use(token.RequireConfirmed())
			{
				confirmed.PUT("/auth/password", authHandler.ChangePassword)
				confirmed.PUT("/auth/email", authHandler.ChangeEmail)
				confirmed.DELETE("/auth/account", authHandler.DeleteAccount)

				confirmed.PUT("/profile", userHandler.UpdateProfile)
				confirmed.GET("/feed", postHandler.Feed)
				confirmed.GET("/online", userHandler.OnlineUsers)

				// 写文章
				write := confirmed.Group("")
				write.Use(token.RequirePermission(permission.Write))
				{
					write.POST("/posts", postHandler.Create)
					write.PUT("/posts/:post_id", postHandler.Update)
					write.DELETE("/posts/:post_id", postHandler.Delete)
				}

				// 发评论
				comment := confirmed.Group("")
				comment.Use(token.RequirePermission(permission.Comment))
				{
					comment.POST("/posts/:post_id/comments", commentHandler.Add)
				}

				// 关注需要Follow能力；取关只要求认证，能力被回收后仍可解除既有关注
				follow := confirmed.Group("")
				follow.Use(token.RequirePermission(permission.Follow))
				{
					follow.POST("/users/:username/follow", followHandler.Follow)
				}
				confirmed.DELETE("/users/:username/follow", followHandler.Unfollow)

				// 评论审核
				moderate := confirmed.Group("/moderation")
				moderate.Use(token.RequirePermission(permission.ModerateComments))
				{
					moderate.GET("/comments", moderationHandler.List)
					moderate.PUT("/comments/:comment_id/disable", moderationHandler.Disable)
					moderate.PUT("/comments/:comment_id/enable", moderationHandler.Enable)
					moderate.DELETE("/comments/:comment_id", moderationHandler.Delete)
				}

				// 管理员编辑用户资料
				admin := confirmed.Group("/admin")
				admin.Use(token.RequirePermission(permission.Administer))
				{
					admin.PUT("/users/:user_id", userHandler.AdminUpdateProfile)
				}
			}
		}
	}

	// WebSocket关注流推送
	router.GET("/ws/feed", wsHandler.Serve)

	// 7. 创建HTTP服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 8. 启动HTTP服务器
	go func() {
		log.Info("HTTP服务器启动", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP服务器启动失败", zap.Error(err))
		}
	}()

	// 9. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务器...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("HTTP服务器关闭失败", zap.Error(err))
	}

	log.Info("服务器已安全关闭")
}

// setupBasicRoutes 设置基础路由
func setupBasicRoutes(router *gin.Engine) {
	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		if err := dbPkg.HealthCheck(); err != nil {
			status = "db-down"
		}
		response.Success(c, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// 根路径
	router.GET("/", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "欢迎使用微博客服务",
			"version": "1.0.0",
		})
	})
}
