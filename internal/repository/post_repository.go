package repository

import (
	"microblog/internal/model"

	"gorm.io/gorm"
)

// PostRepository 文章数据仓储
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建PostRepository实例
func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create 创建文章
func (r *PostRepository) Create(post *model.Post) error {
	return r.db.Create(post).Error
}

// GetByID 根据ID获取文章
func (r *PostRepository) GetByID(id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// Update 保存文章变更
func (r *PostRepository) Update(post *model.Post) error {
	return r.db.Save(post).Error
}

// Delete 删除文章（评论级联由服务层在同一事务内处理）
func (r *PostRepository) Delete(tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&model.Post{}, id).Error
}

// DeleteByAuthor 删除作者全部文章，用于注销账号
func (r *PostRepository) DeleteByAuthor(tx *gorm.DB, authorID uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Where("author_id = ?", authorID).Delete(&model.Post{}).Error
}

// ListAll 按时间倒序分页列出全部文章
func (r *PostRepository) ListAll(offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// ListByAuthor 按时间倒序分页列出某作者文章
func (r *PostRepository) ListByAuthor(authorID uint, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

// CountByAuthor 某作者文章数
func (r *PostRepository) CountByAuthor(authorID uint) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Post{}).Where("author_id = ?", authorID).Count(&cnt).Error
	return cnt, err
}

// Feed 关注流：关注对象（含自关注边带来的本人）发表的文章
// 单条join查询完成，避免按关注对象逐个扇出查询
func (r *PostRepository) Feed(userID uint, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.Model(&model.Post{}).
		Joins("JOIN follow ON follow.followed_id = post.author_id").
		Where("follow.follower_id = ?", userID).
		Order("post.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}
