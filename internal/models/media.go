package models

import (
	"time"
)

// Media is a single file attachment, exclusively owned by the message
// that created it.
type Media struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	URL       string    `gorm:"not null" json:"url"`
	MessageID uint      `gorm:"not null;index" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`
}
