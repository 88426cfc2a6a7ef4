package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/handlers/dto"
	"github.com/outcamp/outcamp-backend/internal/middleware"
	"github.com/outcamp/outcamp-backend/internal/models"
)

type RoomHandler struct {
	db *database.Database
}

func NewRoomHandler(db *database.Database) *RoomHandler {
	return &RoomHandler{db: db}
}

// CreateRoom creates a room with an explicit member list. No dedup against
// existing rooms, including direct ones.
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	memberIDs := dedupe(append(req.UserIDs, userID))

	ok, err := h.db.UsersExist(memberIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown user id in member list"})
		return
	}

	room, err := h.db.CreateRoom(req.Name, memberIDs)
	middleware.RecordChatOperation("create_room", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, formatRoomResponse(room))
}

// CreateDirectRoom resolves or creates the unique two-party room between the
// caller and the given user.
func (h *RoomHandler) CreateDirectRoom(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	var req dto.DirectRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot create direct room with yourself"})
		return
	}

	if _, err := h.db.GetUser(req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown user id"})
		return
	}

	room, isNew, err := h.db.GetOrCreateDirectRoom(userID, req.UserID)
	middleware.RecordChatOperation("direct_room", err)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := formatRoomResponse(room)
	response["is_new"] = isNew
	c.JSON(http.StatusOK, response)
}

// GetMyRooms lists the caller's rooms, each annotated with its most recent
// message. One extra query per room for the preview.
func (h *RoomHandler) GetMyRooms(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uint)

	rooms, err := h.db.GetUserRooms(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	roomsResponse := make([]gin.H, len(rooms))
	for i, room := range rooms {
		response := formatRoomResponse(&room)

		last, err := h.db.LastMessage(room.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if last != nil {
			response["last_message"] = formatMessageResponse(last)
		} else {
			response["last_message"] = nil
		}

		roomsResponse[i] = response
	}

	c.JSON(http.StatusOK, gin.H{"rooms": roomsResponse})
}

func formatRoomResponse(room *models.Room) gin.H {
	users := make([]gin.H, len(room.Users))
	for i, user := range room.Users {
		users[i] = formatUserProfile(&user)
	}

	return gin.H{
		"id":         room.ID,
		"name":       room.Name,
		"created_at": room.CreatedAt,
		"updated_at": room.UpdatedAt,
		"users":      users,
	}
}

func formatUserProfile(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"avatar_url": user.AvatarURL,
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
