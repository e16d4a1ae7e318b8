package model

import "time"

// Comment 评论模型
// Disabled 为屏蔽标记：公开列表隐藏，管理列表可见，可恢复
// 删除为物理删除，不可恢复

type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"not null;index;comment:文章ID"`
	AuthorID  uint      `gorm:"not null;index;comment:作者ID"`
	Body      string    `gorm:"type:text;comment:原始正文"`
	BodyHTML  string    `gorm:"type:text;comment:渲染后正文"`
	Disabled  bool      `gorm:"default:false;comment:是否被屏蔽"`
	CreatedAt time.Time `gorm:"index;comment:发表时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (Comment) TableName() string { return "comment" }
