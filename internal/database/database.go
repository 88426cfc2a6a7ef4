package database

import (
	"errors"

	"github.com/outcamp/outcamp-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB
}

// NewDatabase wraps an already-open gorm connection. Used by tests to run
// the store against sqlite.
func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db}
}

// Open connects to Postgres and migrates the chat schema.
func Open(dsn string) (*Database, error) {
	if dsn == "" {
		return nil, errors.New("database DSN is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	d := &Database{db: db}
	if err := d.Migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Migrate registers the membership join model and auto-migrates all chat
// tables.
func (d *Database) Migrate() error {
	if err := d.db.SetupJoinTable(&models.Room{}, "Users", &models.RoomUser{}); err != nil {
		return err
	}
	if err := d.db.SetupJoinTable(&models.User{}, "Rooms", &models.RoomUser{}); err != nil {
		return err
	}
	return d.db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.RoomUser{},
		&models.Message{},
		&models.Media{},
	)
}

// Close releases the underlying connection pool. Called on server shutdown.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
