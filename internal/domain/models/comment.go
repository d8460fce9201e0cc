package models

import "time"

// Comment 表示附加在任意主实体上的自由文本备注
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OwnerID     uint      `gorm:"not null;index:idx_comment_owner" json:"owner_id"`
	OwnerType   string    `gorm:"type:varchar(20);not null;index:idx_comment_owner" json:"owner_type"`
	Author      string    `gorm:"type:varchar(100)" json:"author"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
