package models

import "time"

// WebSite 表示附加在任意主实体上的网站子记录
type WebSite struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;index:idx_website_owner" json:"owner_id"`
	OwnerType  string    `gorm:"type:varchar(20);not null;index:idx_website_owner" json:"owner_type"`
	LocationID *uint     `json:"location_id,omitempty"`
	URL        string    `gorm:"type:varchar(500);not null" json:"url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
