package main

import (
	"codeberg.org/fitstack/server/fitstack/users"
	"codeberg.org/fitstack/server/internal/config"
	"codeberg.org/fitstack/server/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db       *pgxpool.Pool
	config   *config.Config
	gateway  *identity.Gateway
	userRepo *users.Repository
	router   *gin.Engine
}
