package main

import (
	"log"

	"github.com/outcamp/outcamp-backend/internal/config"
	"github.com/outcamp/outcamp-backend/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config load failed: %v", err)
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("Server init failed: %v", err)
	}

	if err := srv.Run(); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
