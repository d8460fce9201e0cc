package models

import "time"

// PhoneNumber 表示附加在任意主实体上的电话号码子记录
type PhoneNumber struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;index:idx_phone_owner" json:"owner_id"`
	OwnerType  string    `gorm:"type:varchar(20);not null;index:idx_phone_owner" json:"owner_type"`
	LocationID *uint     `json:"location_id,omitempty"` // 位置类型（住宅/办公等），可以为空
	Number     string    `gorm:"type:varchar(50);not null" json:"number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
