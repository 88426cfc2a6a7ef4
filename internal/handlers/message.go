package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/handlers/dto"
	"github.com/outcamp/outcamp-backend/internal/middleware"
	"github.com/outcamp/outcamp-backend/internal/models"
)

type MessageHandler struct {
	db *database.Database
}

func NewMessageHandler(db *database.Database) *MessageHandler {
	return &MessageHandler{db: db}
}

// SendMessage appends a message to a room, with optional media attachments
// and an optional reply target. The sender comes from the session, never
// the body.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := &models.Message{
		RoomID:    req.RoomID,
		SenderID:  userID,
		Content:   req.Content,
		ReplyToID: req.ReplyToID,
	}

	err := h.db.SaveMessage(message, req.MediaURLs)
	middleware.RecordChatOperation("send_message", err)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, database.ErrNotAMember):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, formatMessageResponse(message))
}

// GetRoomMessages returns the room's full history, oldest first.
func (h *MessageHandler) GetRoomMessages(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	roomID, ok := parseID(c, "id")
	if !ok {
		return
	}

	member, err := h.db.IsMember(roomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	messages, err := h.db.GetRoomMessages(roomID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result := make([]gin.H, len(messages))
	for i := range messages {
		result[i] = formatMessageResponse(&messages[i])
	}

	c.JSON(http.StatusOK, gin.H{"messages": result})
}

// MarkRead records a read receipt. Only a room member other than the sender
// may mark a message read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	messageID, ok := parseID(c, "id")
	if !ok {
		return
	}

	message, err := h.db.GetMessage(messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	member, err := h.db.IsMember(message.RoomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	if message.SenderID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot mark your own message as read"})
		return
	}

	if err := h.db.MarkMessageRead(messageID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "marked as read"})
}

// SetReaction sets or clears the reaction on a message. An empty reaction
// clears it.
func (h *MessageHandler) SetReaction(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	messageID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.db.GetMessage(messageID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	member, err := h.db.IsMember(message.RoomID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not a member of this room"})
		return
	}

	if err := h.db.SetMessageReaction(messageID, req.Reaction); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reaction updated"})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + param})
		return 0, false
	}
	return uint(id), true
}

func formatMessageResponse(msg *models.Message) gin.H {
	response := gin.H{
		"id":         msg.ID,
		"room_id":    msg.RoomID,
		"sender_id":  msg.SenderID,
		"content":    msg.Content,
		"is_read":    msg.IsRead,
		"created_at": msg.CreatedAt,
	}

	if msg.ReadAt != nil {
		response["read_at"] = msg.ReadAt
	}
	if msg.ReplyToID != nil {
		response["reply_to_id"] = msg.ReplyToID
	}
	if msg.Reaction != "" {
		response["reaction"] = msg.Reaction
	}

	if len(msg.Attachments) > 0 {
		attachments := make([]gin.H, len(msg.Attachments))
		for i, media := range msg.Attachments {
			attachments[i] = gin.H{"id": media.ID, "url": media.URL}
		}
		response["attachments"] = attachments
	}

	if msg.Sender.ID != 0 {
		response["sender"] = formatUserProfile(&msg.Sender)
	}

	return response
}
