package models

import "time"

// EmailAddress 表示附加在任意主实体上的电子邮件子记录
type EmailAddress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;index:idx_email_owner" json:"owner_id"`
	OwnerType  string    `gorm:"type:varchar(20);not null;index:idx_email_owner" json:"owner_type"`
	LocationID *uint     `json:"location_id,omitempty"`
	Address    string    `gorm:"type:varchar(254);not null" json:"address"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
