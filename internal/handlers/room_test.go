package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/handlers"
	"github.com/outcamp/outcamp-backend/internal/middleware"
	"github.com/outcamp/outcamp-backend/internal/models"
)

// testAuth stands in for the JWT middleware: the acting user comes from the
// X-User-ID header.
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.GetHeader("X-User-ID"), 10, 64)
		if err != nil || id == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}
		c.Set(middleware.UserIDKey, uint(id))
		c.Next()
	}
}

func setupTestEnv(t *testing.T) (*database.Database, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	db := database.NewDatabase(gdb)
	require.NoError(t, db.Migrate())

	roomH := handlers.NewRoomHandler(db)
	messageH := handlers.NewMessageHandler(db)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(testAuth())
	{
		api.POST("/rooms", roomH.CreateRoom)
		api.GET("/rooms", roomH.GetMyRooms)
		api.POST("/rooms/direct", roomH.CreateDirectRoom)
		api.GET("/rooms/:id/messages", messageH.GetRoomMessages)
		api.POST("/messages", messageH.SendMessage)
		api.POST("/messages/:id/read", messageH.MarkRead)
		api.POST("/messages/:id/reaction", messageH.SetReaction)
	}
	return db, r
}

func seedTestUsers(t *testing.T, db *database.Database, n int) []models.User {
	t.Helper()
	users := make([]models.User, n)
	for i := 0; i < n; i++ {
		users[i] = models.User{
			Username:     fmt.Sprintf("camper%d", i+1),
			Email:        fmt.Sprintf("camper%d@example.com", i+1),
			PasswordHash: "x",
			FirstName:    fmt.Sprintf("First%d", i+1),
			LastName:     fmt.Sprintf("Last%d", i+1),
		}
		require.NoError(t, db.SaveUser(&users[i]))
	}
	return users
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, userID uint, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.FormatUint(uint64(userID), 10))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateDirectRoomEndpoint(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 2)

	w := doRequest(t, r, "POST", "/api/v1/rooms/direct", users[0].ID, gin.H{"user_id": users[1].ID})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_new"])
	assert.Len(t, body["users"], 2)
	roomID := body["id"]

	// second call from the other side resolves the same room
	w = doRequest(t, r, "POST", "/api/v1/rooms/direct", users[1].ID, gin.H{"user_id": users[0].ID})
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["is_new"])
	assert.Equal(t, roomID, body["id"])
}

func TestCreateDirectRoomSelf(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 1)

	w := doRequest(t, r, "POST", "/api/v1/rooms/direct", users[0].ID, gin.H{"user_id": users[0].ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w), "error")
}

func TestCreateDirectRoomUnknownUser(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 1)

	w := doRequest(t, r, "POST", "/api/v1/rooms/direct", users[0].ID, gin.H{"user_id": 9999})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRoomEndpoint(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 3)

	w := doRequest(t, r, "POST", "/api/v1/rooms", users[0].ID, gin.H{
		"name":     "Trip Planning",
		"user_ids": []uint{users[0].ID, users[1].ID, users[2].ID},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Trip Planning", body["name"])
	assert.Len(t, body["users"], 3)
}

func TestCreateRoomUnknownMember(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 1)

	w := doRequest(t, r, "POST", "/api/v1/rooms", users[0].ID, gin.H{
		"name":     "Ghost Trip",
		"user_ids": []uint{users[0].ID, 9999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyRoomsUnauthenticated(t *testing.T) {
	_, r := setupTestEnv(t)

	w := doRequest(t, r, "GET", "/api/v1/rooms", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// First-contact flow: resolve a direct room, send a message, then read it
// back from the other side via history and room listing.
func TestDirectMessageScenario(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 2)

	w := doRequest(t, r, "POST", "/api/v1/rooms/direct", users[0].ID, gin.H{"user_id": users[1].ID})
	require.Equal(t, http.StatusOK, w.Code)
	roomID := uint(decodeBody(t, w)["id"].(float64))

	w = doRequest(t, r, "POST", "/api/v1/messages", users[0].ID, gin.H{
		"room_id": roomID,
		"content": "hello",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(t, r, "GET", fmt.Sprintf("/api/v1/rooms/%d/messages", roomID), users[1].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decodeBody(t, w)["messages"].([]interface{})
	require.Len(t, messages, 1)
	first := messages[0].(map[string]interface{})
	assert.Equal(t, "hello", first["content"])
	assert.Equal(t, float64(users[0].ID), first["sender_id"])

	w = doRequest(t, r, "GET", "/api/v1/rooms", users[1].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeBody(t, w)["rooms"].([]interface{})
	require.Len(t, rooms, 1)
	room := rooms[0].(map[string]interface{})
	assert.Equal(t, float64(roomID), room["id"])
	last := room["last_message"].(map[string]interface{})
	assert.Equal(t, "hello", last["content"])
}

func TestGetMyRoomsEmptyRoomHasNullPreview(t *testing.T) {
	db, r := setupTestEnv(t)
	users := seedTestUsers(t, db, 2)

	w := doRequest(t, r, "POST", "/api/v1/rooms/direct", users[0].ID, gin.H{"user_id": users[1].ID})
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, r, "GET", "/api/v1/rooms", users[0].ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeBody(t, w)["rooms"].([]interface{})
	require.Len(t, rooms, 1)
	room := rooms[0].(map[string]interface{})
	assert.Nil(t, room["last_message"])
}
