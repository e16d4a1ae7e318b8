package repository

import (
	"microblog/internal/model"
	"microblog/pkg/permission"

	"gorm.io/gorm"
)

// RoleRepository 角色数据仓储
type RoleRepository struct {
	db *gorm.DB
}

// NewRoleRepository 创建RoleRepository实例
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// Seed 按能力表种入预定义角色
// 以角色名为准做upsert，可重复执行
func (r *RoleRepository) Seed() error {
	for name, spec := range permission.Roles {
		var role model.Role
		err := r.db.Where("name = ?", name).First(&role).Error
		if err != nil {
			if !IsNotFound(err) {
				return err
			}
			role = model.Role{Name: name}
		}
		role.Permissions = uint(spec.Mask)
		role.IsDefault = spec.Default
		if err := r.db.Save(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByName 根据角色名获取角色
func (r *RoleRepository) GetByName(name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// GetDefault 获取默认角色
func (r *RoleRepository) GetDefault() (*model.Role, error) {
	var role model.Role
	if err := r.db.Where("is_default = ?", true).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
