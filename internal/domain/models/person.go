package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"contacts-http-service/utils"
)

// Person represents an individual contact record
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null;index" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100);not null;index" json:"last_name"`
	Slug      string    `gorm:"type:varchar(200)" json:"slug"`
	CompanyID *uint     `json:"company_id,omitempty"` // 所属公司，可以为空
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company         *Company        `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	PhoneNumbers    []PhoneNumber   `gorm:"polymorphic:Owner;polymorphicValue:person" json:"phone_numbers,omitempty"`
	EmailAddresses  []EmailAddress  `gorm:"polymorphic:Owner;polymorphicValue:person" json:"email_addresses,omitempty"`
	WebSites        []WebSite       `gorm:"polymorphic:Owner;polymorphicValue:person" json:"web_sites,omitempty"`
	StreetAddresses []StreetAddress `gorm:"polymorphic:Owner;polymorphicValue:person" json:"street_addresses,omitempty"`
	Comments        []Comment       `gorm:"polymorphic:Owner;polymorphicValue:person" json:"comments,omitempty"`
}

// FullName 返回姓名全称
func (p *Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// BeforeSave 是一个GORM钩子，保存前根据姓名生成slug
func (p *Person) BeforeSave(tx *gorm.DB) error {
	if name := p.FullName(); name != "" {
		p.Slug = utils.Slugify(name)
	}
	return nil
}

// AbsoluteURL 返回联系人详情的规范URL
func (p *Person) AbsoluteURL() string {
	if p.Slug == "" {
		return fmt.Sprintf("/api/people/%d", p.ID)
	}
	return fmt.Sprintf("/api/people/%d/%s", p.ID, p.Slug)
}
