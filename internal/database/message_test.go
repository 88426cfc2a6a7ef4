package database_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/models"
)

func TestSaveMessageWithMedia(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	msg := &models.Message{RoomID: room.ID, SenderID: users[0].ID, Content: "campsite photos"}
	urls := []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}
	require.NoError(t, d.SaveMessage(msg, urls))
	require.NotZero(t, msg.ID)
	require.Len(t, msg.Attachments, 2)

	loaded, err := d.GetMessage(msg.ID)
	require.NoError(t, err)
	assert.Equal(t, "campsite photos", loaded.Content)
	require.Len(t, loaded.Attachments, 2)
	assert.Equal(t, urls[0], loaded.Attachments[0].URL)
	assert.Equal(t, msg.ID, loaded.Attachments[0].MessageID)
}

func TestSaveMessageMediaOnly(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	msg := &models.Message{RoomID: room.ID, SenderID: users[0].ID}
	require.NoError(t, d.SaveMessage(msg, []string{"https://cdn.example.com/c.jpg"}))
	assert.Empty(t, msg.Content)
}

func TestSaveMessageEmptyRejected(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	msg := &models.Message{RoomID: room.ID, SenderID: users[0].ID}
	err = d.SaveMessage(msg, nil)
	assert.ErrorIs(t, err, database.ErrEmptyMessage)
}

func TestSaveMessageNonMemberRejected(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 3)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	msg := &models.Message{RoomID: room.ID, SenderID: users[2].ID, Content: "hi"}
	err = d.SaveMessage(msg, nil)
	assert.ErrorIs(t, err, database.ErrNotAMember)
}

func TestGetRoomMessagesOrder(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	const n = 5
	for i := 0; i < n; i++ {
		msg := &models.Message{
			RoomID:   room.ID,
			SenderID: users[i%2].ID,
			Content:  fmt.Sprintf("message %d", i),
		}
		require.NoError(t, d.SaveMessage(msg, nil))
	}

	messages, err := d.GetRoomMessages(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, n)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Content)
		assert.Equal(t, users[i%2].ID, msg.Sender.ID)
		if i > 0 {
			assert.False(t, msg.CreatedAt.Before(messages[i-1].CreatedAt))
		}
	}
}

func TestLastMessage(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	last, err := d.LastMessage(room.ID)
	require.NoError(t, err)
	assert.Nil(t, last)

	for i := 0; i < 3; i++ {
		msg := &models.Message{RoomID: room.ID, SenderID: users[0].ID, Content: fmt.Sprintf("m%d", i)}
		require.NoError(t, d.SaveMessage(msg, nil))
	}

	last, err = d.LastMessage(room.ID)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "m2", last.Content)
	assert.Equal(t, users[0].ID, last.Sender.ID)
}

func TestMarkReadAndReaction(t *testing.T) {
	d := newTestDB(t)
	users := seedUsers(t, d, 2)
	room, _, err := d.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	require.NoError(t, err)

	msg := &models.Message{RoomID: room.ID, SenderID: users[0].ID, Content: "hello"}
	require.NoError(t, d.SaveMessage(msg, nil))
	assert.False(t, msg.IsRead)

	require.NoError(t, d.MarkMessageRead(msg.ID))
	require.NoError(t, d.SetMessageReaction(msg.ID, "🔥"))

	loaded, err := d.GetMessage(msg.ID)
	require.NoError(t, err)
	assert.True(t, loaded.IsRead)
	require.NotNil(t, loaded.ReadAt)
	assert.Equal(t, "🔥", loaded.Reaction)
}
