package auth

import (
	"context"
	"time"

	"codeberg.org/fitstack/server/fitstack/users"
	"codeberg.org/fitstack/server/internal/identity"
)

// the identity-provider operations the handlers orchestrate
type IdentityGateway interface {
	Register(ctx context.Context, p identity.RegisterParams) (*identity.Registration, error)
	Authenticate(ctx context.Context, email, password string) (*identity.AuthOutcome, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.TokenBundle, error)
	AuthenticateFederated(ctx context.Context, idToken string) (*identity.FederatedIdentity, error)
}

// the local-store operations the handlers orchestrate
type UserDirectory interface {
	Create(ctx context.Context, p users.CreateParams) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	UpdateLastLogin(ctx context.Context, email string) error
}

// RegisterRequest for creating a new account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Username  string `json:"username" binding:"required,min=3,max=50,username"`
	FirstName string `json:"first_name" binding:"omitempty,max=100"`
	LastName  string `json:"last_name" binding:"omitempty,max=100"`
}

// LoginRequest for password authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleAuthRequest carries the federated id token
type GoogleAuthRequest struct {
	GoogleIDToken string `json:"google_id_token" binding:"required"`
}

// RefreshRequest for exchanging a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RegisterResponse returned after successful registration
type RegisterResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
}

// ChallengeResponse returned when the provider demands a secondary step
// before issuing tokens
type ChallengeResponse struct {
	Challenge string `json:"challenge"`
	Session   string `json:"session"`
	Message   string `json:"message"`
}
