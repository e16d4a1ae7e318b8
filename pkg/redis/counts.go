package redis

import (
	"fmt"
	"strconv"
	"time"
)

// 社交计数缓存：粉丝数/关注数
// 数据库为准，缓存未命中或redis不可用时由调用方回源

const (
	FollowerCountKeyPrefix  = "mb:count:followers:" // 粉丝数key前缀
	FollowingCountKeyPrefix = "mb:count:following:" // 关注数key前缀
	CountTTL                = 10 * time.Minute      // 计数缓存TTL
)

// GetFollowerCount 读取粉丝数缓存，未命中返回 (0, false)
func GetFollowerCount(userID uint) (int64, bool) {
	return getCount(fmt.Sprintf("%s%d", FollowerCountKeyPrefix, userID))
}

// GetFollowingCount 读取关注数缓存，未命中返回 (0, false)
func GetFollowingCount(userID uint) (int64, bool) {
	return getCount(fmt.Sprintf("%s%d", FollowingCountKeyPrefix, userID))
}

// SetFollowerCount 写入粉丝数缓存
func SetFollowerCount(userID uint, count int64) error {
	return setCount(fmt.Sprintf("%s%d", FollowerCountKeyPrefix, userID), count)
}

// SetFollowingCount 写入关注数缓存
func SetFollowingCount(userID uint, count int64) error {
	return setCount(fmt.Sprintf("%s%d", FollowingCountKeyPrefix, userID), count)
}

// InvalidateFollowCounts 关注关系变更后使双方计数失效
func InvalidateFollowCounts(followerID, followedID uint) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return client.Del(ctx,
		fmt.Sprintf("%s%d", FollowingCountKeyPrefix, followerID),
		fmt.Sprintf("%s%d", FollowerCountKeyPrefix, followedID),
	).Err()
}

func getCount(key string) (int64, bool) {
	if client == nil {
		return 0, false
	}
	data, err := client.Get(ctx, key).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.ParseInt(data, 10, 64)
	if err != nil {
		return 0, false
	}
	return count, true
}

func setCount(key string, count int64) error {
	if client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return client.Set(ctx, key, strconv.FormatInt(count, 10), CountTTL).Err()
}
