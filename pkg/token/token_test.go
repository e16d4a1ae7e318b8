package token

import (
	"testing"
	"time"

	"microblog/config"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(config.TokenConfig{
		Secret:        "test-secret",
		Issuer:        "microblog-test",
		AuthExpire:    time.Hour,
		ConfirmMaxAge: time.Hour,
	})
}

func TestAuthTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.IssueAuth(42)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := svc.VerifyAuth(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestAuthTokenExpires(t *testing.T) {
	svc := newTestService()
	t0 := time.Now()
	svc.now = func() time.Time { return t0 }

	tokenString, err := svc.IssueAuth(42)
	require.NoError(t, err)

	// 有效期内
	svc.now = func() time.Time { return t0.Add(50 * time.Minute) }
	_, err = svc.VerifyAuth(tokenString)
	require.NoError(t, err)

	// 过期后
	svc.now = func() time.Time { return t0.Add(61 * time.Minute) }
	_, err = svc.VerifyAuth(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestConfirmTokenMaxAgeCheckedAtVerifyTime(t *testing.T) {
	svc := newTestService()
	t0 := time.Now()
	svc.now = func() time.Time { return t0 }

	tokenString, err := svc.IssueConfirm(7)
	require.NoError(t, err)

	// 窗口内：3000秒 < 3600秒
	svc.now = func() time.Time { return t0.Add(3000 * time.Second) }
	userID, err := svc.VerifyConfirm(tokenString, 3600*time.Second)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	// 窗口外：3700秒 > 3600秒
	svc.now = func() time.Time { return t0.Add(3700 * time.Second) }
	_, err = svc.VerifyConfirm(tokenString, 3600*time.Second)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 同一令牌，放宽窗口后再次可用（最大年龄不固化进令牌）
	_, err = svc.VerifyConfirm(tokenString, 2*time.Hour)
	require.NoError(t, err)
}

func TestPurposeCrossUseRejected(t *testing.T) {
	svc := newTestService()

	confirmToken, err := svc.IssueConfirm(1)
	require.NoError(t, err)
	authToken, err := svc.IssueAuth(1)
	require.NoError(t, err)

	// 确认令牌不能当访问令牌用
	_, err = svc.VerifyAuth(confirmToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// 访问令牌不能当确认令牌用
	_, err = svc.VerifyConfirm(authToken, time.Hour)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	svc := newTestService()

	tokenString, err := svc.IssueAuth(42)
	require.NoError(t, err)

	tampered := tokenString[:len(tokenString)-2] + "xx"
	_, err = svc.VerifyAuth(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAuth("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.VerifyAuth("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestService()
	other := NewService(config.TokenConfig{
		Secret:     "another-secret",
		Issuer:     "microblog-test",
		AuthExpire: time.Hour,
	})

	tokenString, err := other.IssueAuth(42)
	require.NoError(t, err)

	_, err = svc.VerifyAuth(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongIssuerRejected(t *testing.T) {
	svc := newTestService()
	other := NewService(config.TokenConfig{
		Secret:     "test-secret",
		Issuer:     "someone-else",
		AuthExpire: time.Hour,
	})

	tokenString, err := other.IssueAuth(42)
	require.NoError(t, err)

	_, err = svc.VerifyAuth(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUnsignedTokenRejected(t *testing.T) {
	svc := newTestService()

	// alg=none 的令牌必须被拒绝
	claims := &Claims{
		Purpose: PurposeAuth,
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    "microblog-test",
			Subject:   "42",
			IssuedAt:  jwtv5.NewNumericDate(time.Now()),
			ExpiresAt: jwtv5.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, claims)
	tokenString, err := unsigned.SignedString(jwtv5.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyAuth(tokenString)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRequiresUserID(t *testing.T) {
	svc := newTestService()

	_, err := svc.IssueAuth(0)
	assert.Error(t, err)
	_, err = svc.IssueConfirm(0)
	assert.Error(t, err)
}
