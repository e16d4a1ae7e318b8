package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"microblog/config"
	"microblog/internal/model"
	"microblog/internal/repository"
	dbPkg "microblog/pkg/db"
	"microblog/pkg/markdown"
	"microblog/pkg/password"
)

// 演示数据生成器：批量创建已确认用户、关注关系、文章与评论
// 用法: go run ./tools/seed [用户数] [每人文章数]
func main() {
	userCount := argInt(1, 10)
	postsPerUser := argInt(2, 3)

	cfg := config.LoadConfig()
	db, err := dbPkg.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	defer dbPkg.CloseDB()

	if err := dbPkg.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.Follow{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("自动迁移失败: %v", err)
	}

	roleRepo := repository.NewRoleRepository(db)
	userRepo := repository.NewUserRepository(db)
	followRepo := repository.NewFollowRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	if err := roleRepo.Seed(); err != nil {
		log.Fatalf("角色初始化失败: %v", err)
	}
	defaultRole, err := roleRepo.GetDefault()
	if err != nil {
		log.Fatalf("默认角色缺失: %v", err)
	}

	hash, err := password.Hash("password123")
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	fmt.Printf("生成 %d 个演示用户，每人 %d 篇文章\n", userCount, postsPerUser)
	start := time.Now()

	users := make([]*model.User, 0, userCount)
	for i := 1; i <= userCount; i++ {
		u := &model.User{
			Email:        fmt.Sprintf("demo%d@example.com", i),
			Username:     fmt.Sprintf("demo%d", i),
			PasswordHash: hash,
			RoleID:       defaultRole.ID,
			Confirmed:    true,
			AboutMe:      fmt.Sprintf("演示账号 #%d", i),
			MemberSince:  time.Now(),
			LastSeen:     time.Now(),
		}
		if err := userRepo.Create(nil, u); err != nil {
			fmt.Printf("用户 %s 创建失败（可能已存在）: %v\n", u.Username, err)
			continue
		}
		if err := followRepo.Create(nil, u.ID, u.ID); err != nil {
			log.Fatalf("自关注边创建失败: %v", err)
		}
		users = append(users, u)
	}

	// 关注关系：每个用户关注后两位（环形），保证关注流有内容
	for i, u := range users {
		for j := 1; j <= 2 && len(users) > 1; j++ {
			target := users[(i+j)%len(users)]
			if err := followRepo.Create(nil, u.ID, target.ID); err != nil {
				fmt.Printf("关注关系创建失败: %v\n", err)
			}
		}
	}

	postTotal := 0
	for _, u := range users {
		for k := 1; k <= postsPerUser; k++ {
			body := fmt.Sprintf("这是 **%s** 的第 %d 篇演示文章。\n\n- 支持Markdown\n- 渲染为HTML存储", u.Username, k)
			p := &model.Post{
				AuthorID: u.ID,
				Title:    fmt.Sprintf("%s 的文章 #%d", u.Username, k),
				Body:     body,
				BodyHTML: markdown.Render(body),
			}
			if err := postRepo.Create(p); err != nil {
				fmt.Printf("文章创建失败: %v\n", err)
				continue
			}
			postTotal++

			// 下一位用户留一条评论
			if len(users) > 1 {
				commenter := users[(postTotal)%len(users)]
				cBody := fmt.Sprintf("来自 %s 的评论", commenter.Username)
				c := &model.Comment{
					PostID:   p.ID,
					AuthorID: commenter.ID,
					Body:     cBody,
					BodyHTML: markdown.Render(cBody),
				}
				if err := commentRepo.Create(c); err != nil {
					fmt.Printf("评论创建失败: %v\n", err)
				}
			}
		}
	}

	fmt.Printf("\n完成：用户 %d，文章 %d，耗时 %v\n", len(users), postTotal, time.Since(start))
	fmt.Println("所有演示账号密码: password123")
}

func argInt(pos, fallback int) int {
	if len(os.Args) > pos {
		if v, err := strconv.Atoi(os.Args[pos]); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
