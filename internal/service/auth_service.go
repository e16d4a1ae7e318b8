package service

import (
	"strings"
	"time"

	"microblog/config"
	"microblog/internal/mailer"
	"microblog/internal/model"
	"microblog/internal/repository"
	"microblog/pkg/logger"
	"microblog/pkg/password"
	"microblog/pkg/permission"
	"microblog/pkg/token"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthService 注册、登录、账号确认与凭证维护
type AuthService struct {
	db         *gorm.DB
	userRepo   *repository.UserRepository
	roleRepo   *repository.RoleRepository
	followRepo *repository.FollowRepository
	tokenSvc   *token.Service
	mail       mailer.Mailer
	appCfg     config.AppConfig
	confirmAge time.Duration
}

// NewAuthService 创建AuthService实例
func NewAuthService(
	db *gorm.DB,
	userRepo *repository.UserRepository,
	roleRepo *repository.RoleRepository,
	followRepo *repository.FollowRepository,
	tokenSvc *token.Service,
	mail mailer.Mailer,
	appCfg config.AppConfig,
	confirmAge time.Duration,
) *AuthService {
	return &AuthService{
		db:         db,
		userRepo:   userRepo,
		roleRepo:   roleRepo,
		followRepo: followRepo,
		tokenSvc:   tokenSvc,
		mail:       mail,
		appCfg:     appCfg,
		confirmAge: confirmAge,
	}
}

// Register 注册新用户
// 角色在创建时确定：匹配管理员邮箱则为管理员，其次取配置指定的默认角色，最后回退角色表默认标记
// 自关注边与用户记录在同一事务内创建，保证关注流天然包含本人文章
func (s *AuthService) Register(email, username, plainPassword string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || plainPassword == "" {
		return nil, "", ErrValidation
	}

	// 唯一性预检查（最终由唯一索引兜底）
	if taken, err := s.userRepo.EmailExists(email); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrEmailTaken
	}
	if taken, err := s.userRepo.UsernameExists(username); err != nil {
		return nil, "", err
	} else if taken {
		return nil, "", ErrUsernameTaken
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, "", err
	}

	// 角色分配：管理员邮箱 > 配置指定的默认角色 > 角色表默认标记
	var role *model.Role
	if email == strings.ToLower(s.appCfg.AdminEmail) {
		role, err = s.roleRepo.GetByName(permission.RoleAdministrator)
	} else if s.appCfg.DefaultRole != "" {
		role, err = s.roleRepo.GetByName(s.appCfg.DefaultRole)
	} else {
		role, err = s.roleRepo.GetDefault()
	}
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		RoleID:       role.ID,
		Role:         *role,
		Confirmed:    false,
		MemberSince:  now,
		LastSeen:     now,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		// 自关注边
		return s.followRepo.Create(tx, user.ID, user.ID)
	})
	if err != nil {
		return nil, "", err
	}

	// 签发确认令牌并交邮件协作方投递；投递失败不影响注册
	confirmToken, err := s.tokenSvc.IssueConfirm(user.ID)
	if err != nil {
		return nil, "", err
	}
	if err := s.mail.SendConfirmation(user.Email, user.Username, confirmToken); err != nil {
		logger.Error("确认邮件投递失败", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	authToken, err := s.tokenSvc.IssueAuth(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, authToken, nil
}

// Login 登录
// 用户不存在与密码错误返回同一错误，不泄露账号是否存在
func (s *AuthService) Login(email, plainPassword string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || plainPassword == "" {
		return nil, "", ErrInvalidCredentials
	}
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !password.Verify(plainPassword, u.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}
	authToken, err := s.tokenSvc.IssueAuth(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, authToken, nil
}

// Confirm 账号确认
// 令牌须为confirm用途、在最大年龄窗口内、且主体与当前账号一致
func (s *AuthService) Confirm(user *model.User, tokenString string) error {
	if user.Confirmed {
		return ErrAlreadyConfirmed
	}
	subjectID, err := s.tokenSvc.VerifyConfirm(tokenString, s.confirmAge)
	if err != nil || subjectID != user.ID {
		return ErrInvalidToken
	}
	if err := s.userRepo.SetConfirmed(user.ID); err != nil {
		return err
	}
	user.Confirmed = true
	return nil
}

// ResendConfirmation 重发确认令牌
func (s *AuthService) ResendConfirmation(user *model.User) error {
	if user.Confirmed {
		return ErrAlreadyConfirmed
	}
	confirmToken, err := s.tokenSvc.IssueConfirm(user.ID)
	if err != nil {
		return err
	}
	return s.mail.SendConfirmation(user.Email, user.Username, confirmToken)
}

// ChangePassword 修改密码，需先验证旧密码
func (s *AuthService) ChangePassword(user *model.User, oldPassword, newPassword string) error {
	if newPassword == "" {
		return ErrValidation
	}
	if !password.Verify(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}
	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.userRepo.Update(user)
}

// ChangeEmail 修改邮箱，重新校验唯一性
// 角色不随邮箱变更重新评估
func (s *AuthService) ChangeEmail(user *model.User, newEmail string) error {
	newEmail = strings.TrimSpace(strings.ToLower(newEmail))
	if newEmail == "" {
		return ErrValidation
	}
	if newEmail == user.Email {
		return nil
	}
	if taken, err := s.userRepo.EmailExists(newEmail); err != nil {
		return err
	} else if taken {
		return ErrEmailTaken
	}
	user.Email = newEmail
	return s.userRepo.Update(user)
}

// DeleteAccount 注销账号
// 同一事务内清理文章及其评论、本人评论、双向关注边、用户记录
func (s *AuthService) DeleteAccount(user *model.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		// 本人文章下的他人评论
		if err := tx.Where("post_id IN (?)",
			tx.Model(&model.Post{}).Select("id").Where("author_id = ?", user.ID),
		).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", user.ID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := s.followRepo.DeleteByUser(tx, user.ID); err != nil {
			return err
		}
		return s.userRepo.Delete(tx, user.ID)
	})
}
