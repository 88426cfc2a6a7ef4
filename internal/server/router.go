package server

import (
	"github.com/gin-gonic/gin"
	"github.com/outcamp/outcamp-backend/internal/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func APIEndpoints(r *gin.Engine, authH *handlers.AuthHandler, roomH *handlers.RoomHandler, messageH *handlers.MessageHandler, authMW gin.HandlerFunc) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(authMW)
	{
		api.POST("/rooms", roomH.CreateRoom)
		api.GET("/rooms", roomH.GetMyRooms)
		api.POST("/rooms/direct", roomH.CreateDirectRoom)
		api.GET("/rooms/:id/messages", messageH.GetRoomMessages)

		api.POST("/messages", messageH.SendMessage)
		api.POST("/messages/:id/read", messageH.MarkRead)
		api.POST("/messages/:id/reaction", messageH.SetReaction)
	}
}
