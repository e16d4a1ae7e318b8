package model

import "time"

// Follow 关注关系（follower 关注 followed）
// 复合主键 (follower_id, followed_id)，同一有序对至多一条边
// 自关注边（follower_id == followed_id）在注册时创建，保证 feed 自然包含本人文章

type Follow struct {
	FollowerID uint      `gorm:"primaryKey;autoIncrement:false;comment:关注者ID"`
	FollowedID uint      `gorm:"primaryKey;autoIncrement:false;comment:被关注者ID"`
	CreatedAt  time.Time `gorm:"comment:建立时间"`
}

func (Follow) TableName() string { return "follow" }
