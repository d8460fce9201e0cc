package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"contacts-http-service/utils"
)

// Company represents a company contact record
type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null;index" json:"name"`
	Slug      string    `gorm:"type:varchar(200)" json:"slug"`
	About     string    `gorm:"type:text" json:"about,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	People          []Person        `gorm:"foreignKey:CompanyID" json:"people,omitempty"`
	PhoneNumbers    []PhoneNumber   `gorm:"polymorphic:Owner;polymorphicValue:company" json:"phone_numbers,omitempty"`
	EmailAddresses  []EmailAddress  `gorm:"polymorphic:Owner;polymorphicValue:company" json:"email_addresses,omitempty"`
	WebSites        []WebSite       `gorm:"polymorphic:Owner;polymorphicValue:company" json:"web_sites,omitempty"`
	StreetAddresses []StreetAddress `gorm:"polymorphic:Owner;polymorphicValue:company" json:"street_addresses,omitempty"`
	Comments        []Comment       `gorm:"polymorphic:Owner;polymorphicValue:company" json:"comments,omitempty"`
}

// BeforeSave 是一个GORM钩子，保存前根据名称生成slug
func (c *Company) BeforeSave(tx *gorm.DB) error {
	if c.Name != "" {
		c.Slug = utils.Slugify(c.Name)
	}
	return nil
}

// AbsoluteURL 返回公司详情的规范URL
func (c *Company) AbsoluteURL() string {
	if c.Slug == "" {
		return fmt.Sprintf("/api/companies/%d", c.ID)
	}
	return fmt.Sprintf("/api/companies/%d/%s", c.ID, c.Slug)
}
