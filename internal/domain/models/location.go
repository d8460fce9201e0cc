package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"contacts-http-service/utils"
)

// Location classifies sub-records as home/work/etc.
type Location struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Slug            string    `gorm:"type:varchar(100)" json:"slug"`
	Weight          int       `gorm:"default:0" json:"weight"`                   // 手动排序权重
	IsPhone         bool      `gorm:"default:false" json:"is_phone"`             // 可用于电话号码
	IsStreetAddress bool      `gorm:"default:false" json:"is_street_address"`    // 可用于街道地址
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeSave 是一个GORM钩子，保存前根据名称生成slug
func (l *Location) BeforeSave(tx *gorm.DB) error {
	if l.Name != "" {
		l.Slug = utils.Slugify(l.Name)
	}
	return nil
}

// AbsoluteURL 返回位置类型详情的规范URL
func (l *Location) AbsoluteURL() string {
	return fmt.Sprintf("/api/locations/%d", l.ID)
}
