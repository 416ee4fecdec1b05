package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/fitstack/server/api/rest/auth"
	"codeberg.org/fitstack/server/fitstack/users"
	"codeberg.org/fitstack/server/internal/config"
	"codeberg.org/fitstack/server/internal/identity"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// the auth path does at most two short queries per request; a small pool
	// keeps us well inside managed-Postgres connection limits
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)

	gateway, err := identity.NewGateway(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create identity gateway: %w", err)
	}

	if err := auth.RegisterValidators(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router := gin.Default()

	server := &Server{
		db:       db,
		config:   cfg,
		gateway:  gateway,
		userRepo: userRepo,
		router:   router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
