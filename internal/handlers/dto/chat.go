package dto

type CreateRoomRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	UserIDs []uint `json:"user_ids" binding:"required,min=1,dive,gt=0"`
}

type DirectRoomRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// SendMessageRequest carries a new message. Content may be empty only when
// media_urls is not.
type SendMessageRequest struct {
	RoomID    uint     `json:"room_id" binding:"required"`
	Content   string   `json:"content"`
	MediaURLs []string `json:"media_urls" binding:"omitempty,dive,url"`
	ReplyToID *uint    `json:"reply_to_id"`
}

type ReactionRequest struct {
	Reaction string `json:"reaction" binding:"max=50"`
}
