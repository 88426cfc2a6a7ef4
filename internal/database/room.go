package database

import (
	"errors"
	"fmt"

	"github.com/outcamp/outcamp-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateRoom creates a room with exactly the given membership set. Room and
// membership rows go in one transaction so a failed membership insert never
// leaves an empty room behind. No dedup against existing rooms: this is a
// separate entry point from GetOrCreateDirectRoom.
func (d *Database) CreateRoom(name string, memberIDs []uint) (*models.Room, error) {
	if len(memberIDs) == 0 {
		return nil, errors.New("room needs at least one member")
	}

	room := models.Room{Name: name}
	err := d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&room).Error; err != nil {
			return err
		}
		memberships := make([]models.RoomUser, len(memberIDs))
		for i, id := range memberIDs {
			memberships[i] = models.RoomUser{RoomID: room.ID, UserID: id}
		}
		return tx.Create(&memberships).Error
	})
	if err != nil {
		return nil, err
	}

	if err := d.db.Preload("Users").First(&room, room.ID).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetOrCreateDirectRoom resolves the canonical two-party room for the pair.
// The reported flag is true when this call created the room.
//
// The whole read-check-create sequence runs in one transaction. On Postgres
// an advisory lock keyed on the sorted pair serializes concurrent first
// contact between the same two users, so the find-none/both-create race
// cannot produce duplicates. A match requires both users to be members AND
// total membership of exactly two: matching on either id alone can pick up
// an unrelated direct room with a third party.
func (d *Database) GetOrCreateDirectRoom(userID, otherID uint) (*models.Room, bool, error) {
	if userID == otherID {
		return nil, false, errors.New("cannot create direct room with yourself")
	}

	var room models.Room
	created := false

	err := d.db.Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", directPairKey(userID, otherID)).Error; err != nil {
				return err
			}
		}

		err := tx.
			Joins("JOIN room_users ru1 ON ru1.room_id = rooms.id AND ru1.user_id = ?", userID).
			Joins("JOIN room_users ru2 ON ru2.room_id = rooms.id AND ru2.user_id = ?", otherID).
			Where("(SELECT COUNT(*) FROM room_users ru WHERE ru.room_id = rooms.id) = 2").
			First(&room).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		lo, hi := sortPair(userID, otherID)
		room = models.Room{Name: fmt.Sprintf("Room_%d_%d", lo, hi)}
		if err := tx.Omit(clause.Associations).Create(&room).Error; err != nil {
			return err
		}

		memberships := []models.RoomUser{
			{RoomID: room.ID, UserID: userID},
			{RoomID: room.ID, UserID: otherID},
		}
		if err := tx.Create(&memberships).Error; err != nil {
			return err
		}

		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	if err := d.db.Preload("Users").First(&room, room.ID).Error; err != nil {
		return nil, false, err
	}
	return &room, created, nil
}

// GetRoom loads a room with its members.
func (d *Database) GetRoom(id uint) (*models.Room, error) {
	var room models.Room
	if err := d.db.Preload("Users").First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetUserRooms returns every room the user is a member of, members loaded.
// The membership filter is server-side: rooms the user does not belong to
// are never returned.
func (d *Database) GetUserRooms(userID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := d.db.
		Joins("JOIN room_users ru ON ru.room_id = rooms.id AND ru.user_id = ?", userID).
		Preload("Users").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// IsMember reports whether the user belongs to the room.
func (d *Database) IsMember(roomID, userID uint) (bool, error) {
	var n int64
	err := d.db.Model(&models.RoomUser{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&n).Error
	return n > 0, err
}

func sortPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// directPairKey packs the sorted pair into the int64 keyspace of
// pg_advisory_xact_lock.
func directPairKey(a, b uint) int64 {
	lo, hi := sortPair(a, b)
	return int64(lo)<<32 | int64(hi)
}
