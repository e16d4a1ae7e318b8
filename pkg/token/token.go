package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"microblog/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// 令牌用途标签
// 两种用途走互相独立的校验路径，确认令牌不能被当作访问令牌重放
const (
	PurposeAuth    = "auth"    // API访问令牌
	PurposeConfirm = "confirm" // 账号确认令牌
)

// ErrInvalidToken 所有校验失败统一降级为该错误，调用方据此走重新认证路径
var ErrInvalidToken = errors.New("invalid token")

// Service 提供签名令牌的签发与校验
// 使用对称密钥 HS256，密钥进程内加载一次后不再变更
// 访问令牌在签发时写入过期时间；确认令牌只写签发时间，最大年龄在校验时判断

type Service struct {
	secretKey  []byte        // 对称密钥
	issuer     string        // 签发者
	authExpire time.Duration // 访问令牌有效期
	now        func() time.Time
}

// Claims 令牌声明载荷
// Purpose 标记用途，防止跨用途使用

type Claims struct {
	Purpose string `json:"purpose"`
	jwtv5.RegisteredClaims
}

// NewService 创建令牌服务
func NewService(cfg config.TokenConfig) *Service {
	return &Service{
		secretKey:  []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		authExpire: cfg.AuthExpire,
		now:        time.Now,
	}
}

// AuthExpireSeconds 访问令牌有效期（秒），用于 /tokens 响应
func (s *Service) AuthExpireSeconds() int64 {
	return int64(s.authExpire / time.Second)
}

// IssueAuth 签发API访问令牌
// 过期时间在签发时固化进令牌
func (s *Service) IssueAuth(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("userID is required")
	}

	now := s.now()
	claims := &Claims{
		Purpose: PurposeAuth,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(s.authExpire)),
		},
	}

	return s.sign(claims)
}

// IssueConfirm 签发账号确认令牌
// 不写入过期时间，有效窗口由校验方决定，策略调整无需重发令牌
func (s *Service) IssueConfirm(userID uint) (string, error) {
	if userID == 0 {
		return "", errors.New("userID is required")
	}

	now := s.now()
	claims := &Claims{
		Purpose: PurposeConfirm,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
		},
	}

	return s.sign(claims)
}

// VerifyAuth 校验API访问令牌
// 签名、用途、过期时间任一不符则返回 ErrInvalidToken
func (s *Service) VerifyAuth(tokenString string) (uint, error) {
	claims, err := s.parse(tokenString, jwtv5.WithExpirationRequired())
	if err != nil {
		return 0, ErrInvalidToken
	}
	if claims.Purpose != PurposeAuth {
		return 0, ErrInvalidToken
	}
	return subjectID(claims)
}

// VerifyConfirm 校验账号确认令牌
// maxAge 为校验时刻允许的最大令牌年龄
func (s *Service) VerifyConfirm(tokenString string, maxAge time.Duration) (uint, error) {
	claims, err := s.parse(tokenString)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if claims.Purpose != PurposeConfirm {
		return 0, ErrInvalidToken
	}
	if claims.IssuedAt == nil || s.now().Sub(claims.IssuedAt.Time) > maxAge {
		return 0, ErrInvalidToken
	}
	return subjectID(claims)
}

// sign 签名令牌
func (s *Service) sign(claims *Claims) (string, error) {
	token := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// parse 解析并校验签名
func (s *Service) parse(tokenString string, opts ...jwtv5.ParserOption) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}
	claims := &Claims{}
	opts = append(opts,
		jwtv5.WithIssuer(s.issuer),
		jwtv5.WithTimeFunc(func() time.Time { return s.now() }),
	)
	parsedToken, err := jwtv5.ParseWithClaims(
		tokenString,
		claims,
		func(token *jwtv5.Token) (interface{}, error) {
			// 验证签名方法
			if token.Method != jwtv5.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secretKey, nil
		},
		opts...,
	)
	if err != nil {
		return nil, fmt.Errorf("parse token failed: %w", err)
	}
	if !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// subjectID 从声明中取出用户ID
func subjectID(claims *Claims) (uint, error) {
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}
