package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/outcamp/outcamp-backend/internal/config"
	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/models"
)

// Seeds development data: fake users, a direct conversation and a group
// room with a few messages.
func main() {
	userCount := flag.Int("users", 10, "number of users to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}

	users := make([]*models.User, 0, *userCount)
	for i := 0; i < *userCount; i++ {
		user := &models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			PasswordHash: string(hash),
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			AvatarURL:    gofakeit.ImageURL(128, 128),
			CreatedAt:    time.Now(),
		}
		if err := db.SaveUser(user); err != nil {
			log.Fatalf("Seed user failed: %v", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	if len(users) < 3 {
		return
	}

	room, _, err := db.GetOrCreateDirectRoom(users[0].ID, users[1].ID)
	if err != nil {
		log.Fatalf("Seed direct room failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		msg := &models.Message{
			RoomID:   room.ID,
			SenderID: users[i%2].ID,
			Content:  gofakeit.Sentence(8),
		}
		if err := db.SaveMessage(msg, nil); err != nil {
			log.Fatalf("Seed message failed: %v", err)
		}
	}

	group, err := db.CreateRoom("Trip Planning", []uint{users[0].ID, users[1].ID, users[2].ID})
	if err != nil {
		log.Fatalf("Seed group room failed: %v", err)
	}
	log.Printf("Created rooms %d and %d", room.ID, group.ID)
}
