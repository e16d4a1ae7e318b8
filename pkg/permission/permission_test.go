package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCan(t *testing.T) {
	userMask := Follow | Comment | Write

	assert.True(t, Can(userMask, Follow))
	assert.True(t, Can(userMask, Comment))
	assert.True(t, Can(userMask, Write))
	assert.True(t, Can(userMask, Follow|Write))
	assert.False(t, Can(userMask, ModerateComments))
	assert.False(t, Can(userMask, Administer))
	// 组合要求中缺任意一位即失败
	assert.False(t, Can(userMask, Write|ModerateComments))
}

func TestRoleMasks(t *testing.T) {
	user, ok := Roles[RoleUser]
	require.True(t, ok)
	assert.Equal(t, Follow|Comment|Write, user.Mask)
	assert.True(t, user.Default)

	moderator, ok := Roles[RoleModerator]
	require.True(t, ok)
	assert.Equal(t, Follow|Comment|Write|ModerateComments, moderator.Mask)
	assert.False(t, moderator.Default)

	admin, ok := Roles[RoleAdministrator]
	require.True(t, ok)
	assert.False(t, admin.Default)
	// 管理员掩码覆盖全部能力位
	for _, p := range []Permission{Follow, Comment, Write, ModerateComments, Administer} {
		assert.True(t, Can(admin.Mask, p))
	}
}

func TestOnlyOneDefaultRole(t *testing.T) {
	defaults := 0
	for _, spec := range Roles {
		if spec.Default {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestZeroMaskCanNothing(t *testing.T) {
	assert.False(t, Can(0, Follow))
	// 空要求对任何掩码都成立
	assert.True(t, Can(0, 0))
}
