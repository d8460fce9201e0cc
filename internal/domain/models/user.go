package models

import (
	"time"

	"gorm.io/gorm"

	"contacts-http-service/utils"
)

// 用户角色
const (
	RoleAdmin = "admin" // 管理员拥有全部权限
	RoleStaff = "staff" // 普通用户按权限列表授权
)

// User represents an account that can manage contacts
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"type:varchar(50);unique;not null" json:"username"`
	Password    string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Email       string    `gorm:"type:varchar(100)" json:"email"`
	Role        string    `gorm:"type:varchar(20);not null;default:staff" json:"role"`
	Permissions []string  `gorm:"type:text;serializer:json" json:"permissions"` // 例如 contacts.add_company
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasPerm 检查用户是否拥有指定权限，管理员拥有全部权限
func (u *User) HasPerm(perm string) bool {
	if u.Role == RoleAdmin {
		return true
	}
	for _, p := range u.Permissions {
		if p == perm {
			return true
		}
	}
	return false
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
