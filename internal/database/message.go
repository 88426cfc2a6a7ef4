package database

import (
	"errors"
	"time"

	"github.com/outcamp/outcamp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrEmptyMessage is returned when a message carries neither text nor
	// attachments.
	ErrEmptyMessage = errors.New("message must have content or media")
	// ErrNotAMember is returned when the sender does not belong to the
	// target room.
	ErrNotAMember = errors.New("user is not a member of the room")
)

// SaveMessage appends a message to its room, creating one Media row per
// attachment URL. Message and media inserts share one transaction: a failed
// media insert rolls back the message instead of silently succeeding with
// partial attachments.
func (d *Database) SaveMessage(msg *models.Message, mediaURLs []string) error {
	if msg.Content == "" && len(mediaURLs) == 0 {
		return ErrEmptyMessage
	}

	member, err := d.IsMember(msg.RoomID, msg.SenderID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotAMember
	}

	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(msg).Error; err != nil {
			return err
		}
		if len(mediaURLs) == 0 {
			return nil
		}
		attachments := make([]models.Media, len(mediaURLs))
		for i, url := range mediaURLs {
			attachments[i] = models.Media{URL: url, MessageID: msg.ID}
		}
		if err := tx.Create(&attachments).Error; err != nil {
			return err
		}
		msg.Attachments = attachments
		return nil
	})
}

// GetMessage loads a single message with its sender and attachments.
func (d *Database) GetMessage(id uint) (*models.Message, error) {
	var msg models.Message
	err := d.db.Preload("Sender").Preload("Attachments").First(&msg, id).Error
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetRoomMessages returns the room's full history, oldest first, with each
// sender's profile and attachments loaded.
func (d *Database) GetRoomMessages(roomID uint) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at ASC, id ASC").
		Preload("Sender").
		Preload("Attachments").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// LastMessage returns the room's most recent message, or nil when the room
// has no messages yet. Called once per room when building the room list:
// an independent query per room, which is fine at the room counts this
// service sees.
func (d *Database) LastMessage(roomID uint) (*models.Message, error) {
	var msg models.Message
	err := d.db.
		Where("room_id = ?", roomID).
		Order("created_at DESC, id DESC").
		Preload("Sender").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkMessageRead sets the read flag and timestamp.
func (d *Database) MarkMessageRead(id uint) error {
	now := time.Now()
	return d.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

// SetMessageReaction sets or clears the reaction string.
func (d *Database) SetMessageReaction(id uint, reaction string) error {
	return d.db.Model(&models.Message{}).
		Where("id = ?", id).
		Update("reaction", reaction).Error
}
