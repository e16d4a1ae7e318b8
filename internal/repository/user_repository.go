package repository

import (
	"errors"
	"time"

	"microblog/internal/model"

	"gorm.io/gorm"
)

// ErrRecordNotFound 仓储层未命中
var ErrRecordNotFound = gorm.ErrRecordNotFound

// UserRepository 用户数据仓储
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建UserRepository实例
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create 创建用户
func (r *UserRepository) Create(tx *gorm.DB, user *model.User) error {
	if tx == nil {
		tx = r.db
	}
	// Role为预置数据，不随用户写入级联
	return tx.Omit("Role").Create(user).Error
}

// GetByID 根据ID获取用户（带角色）
func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Role").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail 根据邮箱获取用户（带角色）
func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Role").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername 根据用户名获取用户（带角色）
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	var u model.User
	if err := r.db.Preload("Role").Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailExists 邮箱是否已被占用
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var cnt int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&cnt).Error
	return cnt > 0, err
}

// UsernameExists 用户名是否已被占用
func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var cnt int64
	err := r.db.Model(&model.User{}).Where("username = ?", username).Count(&cnt).Error
	return cnt > 0, err
}

// Update 保存用户字段变更
func (r *UserRepository) Update(user *model.User) error {
	return r.db.Omit("Role").Save(user).Error
}

// SetConfirmed 将账号标记为已确认
func (r *UserRepository) SetConfirmed(id uint) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("confirmed", true).Error
}

// Ping 更新最近活动时间（单调递增，只向前推）
func (r *UserRepository) Ping(id uint) error {
	return r.db.Model(&model.User{}).
		Where("id = ? AND last_seen < ?", id, time.Now()).
		Update("last_seen", time.Now()).Error
}

// Delete 删除用户（由服务层在事务内连同文章、评论、关注边一起清理）
func (r *UserRepository) Delete(tx *gorm.DB, id uint) error {
	if tx == nil {
		tx = r.db
	}
	return tx.Delete(&model.User{}, id).Error
}

// IsNotFound 判断是否为未命中错误
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
