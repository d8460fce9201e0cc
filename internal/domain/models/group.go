package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"contacts-http-service/utils"
)

// Group represents a named collection of contacts
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null;index" json:"name"`
	Slug      string    `gorm:"type:varchar(200)" json:"slug"`
	About     string    `gorm:"type:text" json:"about,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"` // 默认按修改时间倒序排列

	Comments []Comment `gorm:"polymorphic:Owner;polymorphicValue:group" json:"comments,omitempty"`
}

// BeforeSave 是一个GORM钩子，保存前根据名称生成slug
func (g *Group) BeforeSave(tx *gorm.DB) error {
	if g.Name != "" {
		g.Slug = utils.Slugify(g.Name)
	}
	return nil
}

// AbsoluteURL 返回分组详情的规范URL
func (g *Group) AbsoluteURL() string {
	if g.Slug == "" {
		return fmt.Sprintf("/api/groups/%d", g.ID)
	}
	return fmt.Sprintf("/api/groups/%d/%s", g.ID, g.Slug)
}
