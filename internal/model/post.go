package model

import "time"

// Post 文章模型
// BodyHTML 为渲染并消毒后的正文，写入时同步重算，与 Body 始终一致

type Post struct {
	ID        uint      `gorm:"primaryKey"`
	AuthorID  uint      `gorm:"not null;index;comment:作者ID"`
	Title     string    `gorm:"type:varchar(128);comment:标题"`
	Body      string    `gorm:"type:text;comment:原始正文"`
	BodyHTML  string    `gorm:"type:text;comment:渲染后正文"`
	CreatedAt time.Time `gorm:"index;comment:发表时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

func (Post) TableName() string { return "post" }
