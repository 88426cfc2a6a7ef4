package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/outcamp/outcamp-backend/internal/config"
	"github.com/outcamp/outcamp-backend/internal/database"
	"github.com/outcamp/outcamp-backend/internal/handlers"
	"github.com/outcamp/outcamp-backend/internal/middleware"
	"github.com/outcamp/outcamp-backend/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager

	cfg *config.Config
}

// New wires the whole service: database, Redis, JWT manager, handlers and
// router. Everything is constructed and injected here, nothing is ambient.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry)

	authH := handlers.NewAuthHandler(db, jwtMgr, rdb)
	roomH := handlers.NewRoomHandler(db)
	messageH := handlers.NewMessageHandler(db)

	router := gin.Default()
	router.Use(middleware.PrometheusMiddleware())
	router.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())

	APIEndpoints(router, authH, roomH, messageH, middleware.AuthMiddleware(jwtMgr, rdb))

	return &Server{
		Router:     router,
		DB:         db,
		Redis:      rdb,
		JWTManager: jwtMgr,
		cfg:        cfg,
	}, nil
}

// Run serves until SIGINT/SIGTERM, then drains in-flight requests and closes
// the database and Redis connections.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    ":" + s.cfg.Port,
		Handler: s.Router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on port %s", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-quit:
	}

	log.Println("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}

	return s.Close()
}

// Close releases the database and Redis connections.
func (s *Server) Close() error {
	if err := s.Redis.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
	return s.DB.Close()
}
