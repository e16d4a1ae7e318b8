package model

import (
	"time"
)

// User 用户模型
// 索引与唯一约束：用户名唯一、邮箱唯一
// 说明：密码仅存储哈希（PasswordHash），不存储明文，也不提供读取接口
// Confirmed 表示邮箱确认状态，未确认账号会被网关拦截
// MemberSince / LastSeen 只随活动心跳单调递增

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Email        string    `gorm:"type:varchar(128);not null;uniqueIndex;comment:邮箱"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex;comment:用户名"`
	PasswordHash string    `gorm:"type:varchar(255);not null;comment:密码哈希"`
	RoleID       uint      `gorm:"not null;index;comment:角色ID"`
	Role         Role      `gorm:"foreignKey:RoleID"`
	Confirmed    bool      `gorm:"default:false;comment:邮箱是否已确认"`
	Location     string    `gorm:"type:varchar(64);comment:所在地"`
	AboutMe      string    `gorm:"type:text;comment:个人简介"`
	MemberSince  time.Time `gorm:"comment:注册时间"`
	LastSeen     time.Time `gorm:"comment:最近活动时间"`
	CreatedAt    time.Time `gorm:"comment:创建时间"`
	UpdatedAt    time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名（因全局配置使用单数表名，这里与结构体名一致为 user）
func (User) TableName() string { return "user" }
