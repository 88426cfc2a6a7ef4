package models

import (
	"time"
)

type Message struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	RoomID    uint       `gorm:"not null;index" json:"room_id"`
	SenderID  uint       `gorm:"not null" json:"sender_id"`
	Content   string     `gorm:"type:text" json:"content"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	ReplyToID *uint      `json:"reply_to_id,omitempty"`
	Reaction  string     `json:"reaction,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Sender      User     `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Room        Room     `gorm:"foreignKey:RoomID" json:"-"`
	ReplyTo     *Message `gorm:"foreignKey:ReplyToID" json:"-"`
	Attachments []Media  `gorm:"foreignKey:MessageID" json:"attachments,omitempty"`
}
