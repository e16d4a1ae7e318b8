package password

import (
	"golang.org/x/crypto/bcrypt"
)

// Hash 生成密码哈希
// bcrypt 自带盐值与慢速参数，哈希不可逆
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify 校验密码
// bcrypt 比较为恒定代价，不会因前缀匹配提前返回
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
