package permission

// Permission 能力位
// 角色的 Permissions 字段是这些位的掩码
type Permission uint

const (
	Follow           Permission = 0x01 // 关注他人
	Comment          Permission = 0x02 // 发表评论
	Write            Permission = 0x04 // 发表文章
	ModerateComments Permission = 0x08 // 评论管理
	Administer       Permission = 0x80 // 系统管理
)

// 预定义角色名
const (
	RoleUser          = "User"
	RoleModerator     = "Moderator"
	RoleAdministrator = "Administrator"
)

// RoleSpec 角色定义：位掩码 + 是否默认
type RoleSpec struct {
	Mask    Permission
	Default bool
}

// Roles 角色→掩码表，启动时装载一次，之后视为不可变配置
// 每一级角色都是上一级的超集
var Roles = map[string]RoleSpec{
	RoleUser:          {Mask: Follow | Comment | Write, Default: true},
	RoleModerator:     {Mask: Follow | Comment | Write | ModerateComments, Default: false},
	RoleAdministrator: {Mask: 0xFF, Default: false},
}

// Can 判断掩码是否满足所需能力
// 按位与后须等于所需位集本身，支持多位组合检查
func Can(mask, required Permission) bool {
	return mask&required == required
}
