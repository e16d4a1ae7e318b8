package service

import (
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/redis"
)

// FollowService 关注关系服务
// 边的唯一性由存储层约束保证，重复操作一律视为成功
type FollowService struct {
	userRepo   *repository.UserRepository
	followRepo *repository.FollowRepository
}

// NewFollowService 创建FollowService实例
func NewFollowService(userRepo *repository.UserRepository, followRepo *repository.FollowRepository) *FollowService {
	return &FollowService{userRepo: userRepo, followRepo: followRepo}
}

// Follow 关注目标用户（按用户名）
// 幂等：重复关注不报错；关注自己等价于已存在的自关注边，同样视为成功
func (s *FollowService) Follow(follower *model.User, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if err := s.followRepo.Create(nil, follower.ID, target.ID); err != nil {
		return err
	}
	// 计数缓存失效，失败仅降级
	_ = redis.InvalidateFollowCounts(follower.ID, target.ID)
	return nil
}

// Unfollow 取消关注目标用户（按用户名）
// 自关注边不经由公开入口删除
func (s *FollowService) Unfollow(follower *model.User, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	if target.ID == follower.ID {
		return ErrSelfUnfollow
	}
	if err := s.followRepo.Delete(follower.ID, target.ID); err != nil {
		return err
	}
	_ = redis.InvalidateFollowCounts(follower.ID, target.ID)
	return nil
}

// IsFollowing a是否关注b
// 未持久化的身份（ID为0）不关注任何人
func (s *FollowService) IsFollowing(a, b *model.User) (bool, error) {
	if a == nil || b == nil || a.ID == 0 || b.ID == 0 {
		return false, nil
	}
	return s.followRepo.Exists(a.ID, b.ID)
}

// IsFollowedBy a是否被b关注
func (s *FollowService) IsFollowedBy(a, b *model.User) (bool, error) {
	return s.IsFollowing(b, a)
}

// Followers 分页列出某用户的粉丝
func (s *FollowService) Followers(username string, page, pageSize int) ([]*repository.FollowEdge, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	offset, limit := paginate(page, pageSize)
	return s.followRepo.ListFollowers(target.ID, offset, limit)
}

// Following 分页列出某用户关注的人
func (s *FollowService) Following(username string, page, pageSize int) ([]*repository.FollowEdge, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	offset, limit := paginate(page, pageSize)
	return s.followRepo.ListFollowing(target.ID, offset, limit)
}

// FollowerCount 粉丝数（带缓存回源）
func (s *FollowService) FollowerCount(userID uint) (int64, error) {
	if count, ok := redis.GetFollowerCount(userID); ok {
		return count, nil
	}
	count, err := s.followRepo.CountFollowers(userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetFollowerCount(userID, count)
	return count, nil
}

// FollowingCount 关注数（带缓存回源）
func (s *FollowService) FollowingCount(userID uint) (int64, error) {
	if count, ok := redis.GetFollowingCount(userID); ok {
		return count, nil
	}
	count, err := s.followRepo.CountFollowing(userID)
	if err != nil {
		return 0, err
	}
	_ = redis.SetFollowingCount(userID, count)
	return count, nil
}

// paginate 统一分页参数
func paginate(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return (page - 1) * pageSize, pageSize
}
