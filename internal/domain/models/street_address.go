package models

import "time"

// StreetAddress 表示附加在任意主实体上的街道地址子记录
type StreetAddress struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OwnerID    uint      `gorm:"not null;index:idx_address_owner" json:"owner_id"`
	OwnerType  string    `gorm:"type:varchar(20);not null;index:idx_address_owner" json:"owner_type"`
	LocationID *uint     `json:"location_id,omitempty"`
	Street     string    `gorm:"type:varchar(200);not null" json:"street"`
	City       string    `gorm:"type:varchar(100)" json:"city"`
	Province   string    `gorm:"type:varchar(100)" json:"province"`
	PostalCode string    `gorm:"type:varchar(20)" json:"postal_code"`
	Country    string    `gorm:"type:varchar(100)" json:"country"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
