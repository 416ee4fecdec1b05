package main

import (
	"codeberg.org/fitstack/server/api/rest/auth"
	"codeberg.org/fitstack/server/api/rest/health"
	"codeberg.org/fitstack/server/api/rest/onboarding"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware())

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.gateway, server.userRepo)
		onboarding.RegisterRoutes(v1, server.gateway, server.userRepo)
	}
}
