package service

import (
	"strings"

	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/permission"
)

// UserService 用户资料服务
type UserService struct {
	userRepo   *repository.UserRepository
	roleRepo   *repository.RoleRepository
	postRepo   *repository.PostRepository
	followRepo *repository.FollowRepository
}

// NewUserService 创建UserService实例
func NewUserService(
	userRepo *repository.UserRepository,
	roleRepo *repository.RoleRepository,
	postRepo *repository.PostRepository,
	followRepo *repository.FollowRepository,
) *UserService {
	return &UserService{
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		postRepo:   postRepo,
		followRepo: followRepo,
	}
}

// Profile 用户主页数据
type Profile struct {
	User      *model.User
	PostCount int64
	Followers int64
	Following int64
}

// GetProfile 按用户名查询主页
func (s *UserService) GetProfile(username string) (*Profile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	postCount, err := s.postRepo.CountByAuthor(user.ID)
	if err != nil {
		return nil, err
	}
	followers, err := s.followRepo.CountFollowers(user.ID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountFollowing(user.ID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:      user,
		PostCount: postCount,
		Followers: followers,
		Following: following,
	}, nil
}

// UpdateProfile 更新本人资料
func (s *UserService) UpdateProfile(user *model.User, location, aboutMe string) error {
	user.Location = strings.TrimSpace(location)
	user.AboutMe = strings.TrimSpace(aboutMe)
	return s.userRepo.Update(user)
}

// AdminProfileUpdate 管理员资料编辑参数
// 指针字段为nil表示不修改
type AdminProfileUpdate struct {
	Email     *string
	Username  *string
	Confirmed *bool
	RoleName  *string
}

// AdminUpdateProfile 管理员编辑任意用户资料（含角色与确认状态）
func (s *UserService) AdminUpdateProfile(actor *model.User, targetID uint, update AdminProfileUpdate) (*model.User, error) {
	if !userCan(actor, permission.Administer) {
		return nil, ErrForbidden
	}
	target, err := s.userRepo.GetByID(targetID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if update.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*update.Email))
		if email != target.Email {
			if taken, err := s.userRepo.EmailExists(email); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrEmailTaken
			}
			target.Email = email
		}
	}
	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if username != target.Username {
			if taken, err := s.userRepo.UsernameExists(username); err != nil {
				return nil, err
			} else if taken {
				return nil, ErrUsernameTaken
			}
			target.Username = username
		}
	}
	if update.Confirmed != nil {
		target.Confirmed = *update.Confirmed
	}
	if update.RoleName != nil {
		role, err := s.roleRepo.GetByName(*update.RoleName)
		if err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		target.RoleID = role.ID
		target.Role = *role
	}

	if err := s.userRepo.Update(target); err != nil {
		return nil, err
	}
	return target, nil
}
