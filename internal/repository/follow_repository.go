package repository

import (
	"time"

	"microblog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository 关注关系仓储
// 唯一性由复合主键 (follower_id, followed_id) 在存储层保证，
// 并发重复写入由 OnConflict DoNothing 吸收，不依赖先查后写
type FollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建FollowRepository实例
func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create 建立关注边
// 幂等：边已存在时不报错
func (r *FollowRepository) Create(tx *gorm.DB, followerID, followedID uint) error {
	if tx == nil {
		tx = r.db
	}
	f := &model.Follow{FollowerID: followerID, FollowedID: followedID}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

// Delete 删除关注边
// 幂等：边不存在时不报错
func (r *FollowRepository) Delete(followerID, followedID uint) error {
	return r.db.
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&model.Follow{}).Error
}

// DeleteByUser 删除用户的全部关注边（双向），用于注销账号
func (r *FollowRepository) DeleteByUser(tx *gorm.DB, userID uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.
		Where("follower_id = ? OR followed_id = ?", userID, userID).
		Delete(&model.Follow{}).Error
}

// BackfillSelfFollows 为缺少自关注边的存量用户补边
// 幂等，启动时执行一次
func (r *FollowRepository) BackfillSelfFollows() error {
	return r.db.Exec(
		"INSERT INTO follow (follower_id, followed_id, created_at) "+
			"SELECT id, id, ? FROM user "+
			"WHERE id NOT IN (SELECT follower_id FROM follow WHERE follower_id = followed_id)",
		time.Now(),
	).Error
}

// Exists 判断关注边是否存在
func (r *FollowRepository) Exists(followerID, followedID uint) (bool, error) {
	var cnt int64
	if err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// FollowEdge 关注列表条目（join出用户名）
type FollowEdge struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
}

// ListFollowers 分页列出粉丝（不含自关注边）
func (r *FollowRepository) ListFollowers(userID uint, offset, limit int) ([]*FollowEdge, error) {
	var edges []*FollowEdge
	err := r.db.Model(&model.Follow{}).
		Select("user.id AS user_id, user.username AS username, follow.created_at AS created_at").
		Joins("JOIN user ON user.id = follow.follower_id").
		Where("follow.followed_id = ? AND follow.follower_id <> ?", userID, userID).
		Order("follow.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&edges).Error
	return edges, err
}

// ListFollowing 分页列出关注对象（不含自关注边）
func (r *FollowRepository) ListFollowing(userID uint, offset, limit int) ([]*FollowEdge, error) {
	var edges []*FollowEdge
	err := r.db.Model(&model.Follow{}).
		Select("user.id AS user_id, user.username AS username, follow.created_at AS created_at").
		Joins("JOIN user ON user.id = follow.followed_id").
		Where("follow.follower_id = ? AND follow.followed_id <> ?", userID, userID).
		Order("follow.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&edges).Error
	return edges, err
}

// FollowerIDs 粉丝ID列表（不含本人），用于新文章推送
func (r *FollowRepository) FollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Follow{}).
		Where("followed_id = ? AND follower_id <> ?", userID, userID).
		Pluck("follower_id", &ids).Error
	return ids, err
}

// CountFollowers 粉丝数（不含自关注边）
func (r *FollowRepository) CountFollowers(userID uint) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Follow{}).
		Where("followed_id = ? AND follower_id <> ?", userID, userID).
		Count(&cnt).Error
	return cnt, err
}

// CountFollowing 关注数（不含自关注边）
func (r *FollowRepository) CountFollowing(userID uint) (int64, error) {
	var cnt int64
	err := r.db.Model(&model.Follow{}).
		Where("follower_id = ? AND followed_id <> ?", userID, userID).
		Count(&cnt).Error
	return cnt, err
}
