package database

import (
	"time"

	"github.com/outcamp/outcamp-backend/internal/models"
)

func (d *Database) SaveUser(user *models.User) error {
	return d.db.Create(user).Error
}

func (d *Database) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := d.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := d.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsersExist reports whether every given id references an existing user.
func (d *Database) UsersExist(ids []uint) (bool, error) {
	if len(ids) == 0 {
		return true, nil
	}
	var n int64
	err := d.db.Model(&models.User{}).Where("id IN ?", ids).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == int64(len(ids)), nil
}

func (d *Database) UpdateLastSeen(id uint) error {
	return d.db.Model(&models.User{}).Where("id = ?", id).Update("last_seen_at", time.Now()).Error
}
