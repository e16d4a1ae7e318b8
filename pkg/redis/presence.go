package redis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PresenceData 在线状态数据
// 由认证中间件的活动心跳写入，带TTL自动过期
type PresenceData struct {
	UserID   uint      `json:"user_id"`
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

// 在线状态相关常量
const (
	PresenceKeyPrefix = "mb:presence:user:" // 用户在线状态key前缀
	OnlineUsersKey    = "mb:online:users"   // 在线用户集合key
	PresenceTTL       = 5 * time.Minute     // 在线状态TTL
)

// TouchPresence 活动心跳：刷新用户在线状态
func TouchPresence(userID uint, username string) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	presence := PresenceData{
		UserID:   userID,
		Username: username,
		LastSeen: time.Now(),
	}

	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("序列化在线状态失败: %w", err)
	}

	if err := client.Set(ctx, key, data, PresenceTTL).Err(); err != nil {
		return fmt.Errorf("写入在线状态失败: %w", err)
	}

	return client.SAdd(ctx, OnlineUsersKey, userID).Err()
}

// ClearPresence 清除用户在线状态（连接关闭时调用）
func ClearPresence(userID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)
	if err := client.Del(ctx, key).Err(); err != nil {
		return err
	}
	return client.SRem(ctx, OnlineUsersKey, userID).Err()
}

// GetPresence 获取用户在线状态
func GetPresence(userID uint) (*PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}
	key := fmt.Sprintf("%s%d", PresenceKeyPrefix, userID)

	data, err := client.Get(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("获取在线状态失败: %w", err)
	}

	var presence PresenceData
	if err := json.Unmarshal([]byte(data), &presence); err != nil {
		return nil, fmt.Errorf("反序列化在线状态失败: %w", err)
	}

	return &presence, nil
}

// OnlineUsers 在线用户列表
// 集合成员可能已过期，逐个回查状态key过滤
func OnlineUsers() ([]*PresenceData, error) {
	if client == nil {
		return nil, fmt.Errorf("redis客户端未初始化")
	}

	members, err := client.SMembers(ctx, OnlineUsersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("获取在线用户集合失败: %w", err)
	}

	presences := make([]*PresenceData, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 32)
		if err != nil {
			continue
		}
		presence, err := GetPresence(uint(id))
		if err != nil {
			// 状态key已过期，从集合清除
			_ = client.SRem(ctx, OnlineUsersKey, m).Err()
			continue
		}
		presences = append(presences, presence)
	}

	return presences, nil
}
