package model

import "time"

// Role 角色模型
// Permissions 为能力位掩码（见 pkg/permission）
// IsDefault 最多允许一个角色为默认角色，注册时未匹配管理员邮箱则授予默认角色

type Role struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:角色名"`
	Permissions uint      `gorm:"not null;comment:能力位掩码"`
	IsDefault   bool      `gorm:"default:false;index;comment:是否默认角色"`
	CreatedAt   time.Time `gorm:"comment:创建时间"`
	UpdatedAt   time.Time `gorm:"comment:更新时间"`
}

func (Role) TableName() string { return "role" }
