package service

import (
	"strings"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/logger"
	"microblog/pkg/markdown"
	"microblog/pkg/permission"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FeedNotifier 新文章推送协作方（在线粉丝实时通知）
type FeedNotifier interface {
	NotifyNewPost(followerIDs []uint, post *model.Post)
}

// PostService 文章服务
// 正文写入路径同步重算渲染字段，存储的BodyHTML始终与Body一致
type PostService struct {
	db          *gorm.DB
	userRepo    *repository.UserRepository
	postRepo    *repository.PostRepository
	commentRepo *repository.CommentRepository
	followRepo  *repository.FollowRepository
	notifier    FeedNotifier
}

// NewPostService 创建PostService实例
func NewPostService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	postRepo *repository.PostRepository,
	commentRepo *repository.CommentRepository,
	followRepo *repository.FollowRepository,
	notifier FeedNotifier,
) *PostService {
	return &PostService{
		db:          db,
		userRepo:    userRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		notifier:    notifier,
	}
}

// Create 发表文章
func (s *PostService) Create(author *model.User, title, body string) (*model.Post, error) {
	title = strings.TrimSpace(title)
	if title == "" || strings.TrimSpace(body) == "" {
		return nil, ErrValidation
	}

	post := &model.Post{
		AuthorID: author.ID,
		Title:    title,
		Body:     body,
		BodyHTML: markdown.Render(body),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// 推送给在线粉丝；失败只影响实时性，关注流查询不受影响
	if s.notifier != nil {
		followerIDs, err := s.followRepo.FollowerIDs(author.ID)
		if err != nil {
			logger.Warn("获取粉丝列表失败，跳过推送", zap.Uint("author_id", author.ID), zap.Error(err))
		} else {
			s.notifier.NotifyNewPost(followerIDs, post)
		}
	}

	return post, nil
}

// Get 获取单篇文章
func (s *PostService) Get(id uint) (*model.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// Update 编辑文章：仅作者本人或管理员
func (s *PostService) Update(actor *model.User, id uint, title, body string) (*model.Post, error) {
	post, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != actor.ID && !userCan(actor, permission.Administer) {
		return nil, ErrForbidden
	}
	if title = strings.TrimSpace(title); title != "" {
		post.Title = title
	}
	if strings.TrimSpace(body) != "" {
		post.Body = body
		post.BodyHTML = markdown.Render(body)
	}
	if err := s.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 删除文章：仅作者本人或管理员，评论级联删除
func (s *PostService) Delete(actor *model.User, id uint) error {
	post, err := s.Get(id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.ID && !userCan(actor, permission.Administer) {
		return ErrForbidden
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.DeleteByPost(tx, post.ID); err != nil {
			return err
		}
		return s.postRepo.Delete(tx, post.ID)
	})
}

// ListAll 全站文章，按时间倒序分页
func (s *PostService) ListAll(page, pageSize int) ([]*model.Post, error) {
	offset, limit := paginate(page, pageSize)
	return s.postRepo.ListAll(offset, limit)
}

// ListByAuthor 某用户的文章，按时间倒序分页
func (s *PostService) ListByAuthor(authorID uint, page, pageSize int) ([]*model.Post, error) {
	offset, limit := paginate(page, pageSize)
	return s.postRepo.ListByAuthor(authorID, offset, limit)
}

// ListByUsername 按用户名列出文章
func (s *PostService) ListByUsername(username string, page, pageSize int) ([]*model.Post, error) {
	author, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ListByAuthor(author.ID, page, pageSize)
}

// Feed 关注流：关注对象（含本人，经自关注边）的文章，按时间倒序分页
func (s *PostService) Feed(user *model.User, page, pageSize int) ([]*model.Post, error) {
	offset, limit := paginate(page, pageSize)
	return s.postRepo.Feed(user.ID, offset, limit)
}
