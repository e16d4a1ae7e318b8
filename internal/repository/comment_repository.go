package repository

import (
	"microblog/internal/model"

	"gorm.io/gorm"
)

// CommentRepository 评论数据仓储
type CommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建CommentRepository实例
func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create 创建评论
func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// GetByID 根据ID获取评论
func (r *CommentRepository) GetByID(id uint) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListPublic 文章的公开评论（不含被屏蔽的），按时间正序分页
func (r *CommentRepository) ListPublic(postID uint, offset, limit int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Where("post_id = ? AND disabled = ?", postID, false).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

// ListModeration 管理视图：全部存留评论（含被屏蔽的），按时间倒序分页
func (r *CommentRepository) ListModeration(offset, limit int) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&comments).Error
	return comments, err
}

// SetDisabled 设置屏蔽标记
func (r *CommentRepository) SetDisabled(id uint, disabled bool) error {
	return r.db.Model(&model.Comment{}).Where("id = ?", id).Update("disabled", disabled).Error
}

// Delete 物理删除评论，不可恢复
func (r *CommentRepository) Delete(id uint) error {
	return r.db.Delete(&model.Comment{}, id).Error
}

// DeleteByPost 删除文章下全部评论，用于文章级联删除
func (r *CommentRepository) DeleteByPost(tx *gorm.DB, postID uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error
}

// DeleteByAuthor 删除作者全部评论，用于注销账号
func (r *CommentRepository) DeleteByAuthor(tx *gorm.DB, authorID uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Where("author_id = ?", authorID).Delete(&model.Comment{}).Error
}

// CountByPost 文章的公开评论数
func (r *CommentRepository) CountByPost(postID uint) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Comment{}).
		Where("post_id = ? AND disabled = ?", postID, false).Count(&cnt).Error
	return cnt, err
}
