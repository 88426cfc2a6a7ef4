package models

import (
	"time"
)

type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Users    []User    `gorm:"many2many:room_users" json:"users,omitempty"`
	Messages []Message `gorm:"foreignKey:RoomID" json:"-"`
}

// RoomUser is the membership row between a room and a user. Rows are
// bulk-created together with their room and have no lifecycle of their own.
type RoomUser struct {
	RoomID    uint      `gorm:"primaryKey" json:"room_id"`
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (RoomUser) TableName() string {
	return "room_users"
}
