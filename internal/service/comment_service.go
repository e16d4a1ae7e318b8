package service

import (
	"strings"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/markdown"
	"microblog/pkg/permission"
)

// CommentService 评论与审核服务
// 评论生命周期：Active →(屏蔽/恢复)↔ Disabled →(删除) 永久移除
// 状态迁移均要求 ModerateComments 能力，删除不可逆
type CommentService struct {
	commentRepo *repository.CommentRepository
	postRepo    *repository.PostRepository
}

// NewCommentService 创建CommentService实例
func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

// Add 发表评论
func (s *CommentService) Add(author *model.User, postID uint, body string) (*model.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrValidation
	}
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Body:     body,
		BodyHTML: markdown.Render(body),
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListPublic 文章的公开评论（隐藏被屏蔽的）
func (s *CommentService) ListPublic(postID uint, page, pageSize int) ([]*model.Comment, error) {
	if _, err := s.postRepo.GetByID(postID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	offset, limit := paginate(page, pageSize)
	return s.commentRepo.ListPublic(postID, offset, limit)
}

// ListModeration 管理视图：全部存留评论（含被屏蔽的）
func (s *CommentService) ListModeration(actor *model.User, page, pageSize int) ([]*model.Comment, error) {
	if !userCan(actor, permission.ModerateComments) {
		return nil, ErrForbidden
	}
	offset, limit := paginate(page, pageSize)
	return s.commentRepo.ListModeration(offset, limit)
}

// Disable 屏蔽评论：从公开列表隐藏，数据保留
func (s *CommentService) Disable(actor *model.User, id uint) error {
	return s.setDisabled(actor, id, true)
}

// Enable 恢复评论
func (s *CommentService) Enable(actor *model.User, id uint) error {
	return s.setDisabled(actor, id, false)
}

func (s *CommentService) setDisabled(actor *model.User, id uint, disabled bool) error {
	if !userCan(actor, permission.ModerateComments) {
		return ErrForbidden
	}
	if _, err := s.commentRepo.GetByID(id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.commentRepo.SetDisabled(id, disabled)
}

// Delete 永久删除评论，不可恢复
// 幂等：目标已不存在视为成功
func (s *CommentService) Delete(actor *model.User, id uint) error {
	if !userCan(actor, permission.ModerateComments) {
		return ErrForbidden
	}
	if _, err := s.commentRepo.GetByID(id); err != nil {
		if repository.IsNotFound(err) {
			return nil
		}
		return err
	}
	return s.commentRepo.Delete(id)
}
