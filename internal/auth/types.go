package auth

import (
	"context"

	"codeberg.org/fitstack/server/internal/identity"
)

// introspects bearer tokens against the identity provider
type TokenVerifier interface {
	Verify(ctx context.Context, accessToken string) (*identity.TokenInfo, error)
}

// gin context keys populated by RequireAuth
const (
	ContextExternalID = "external_id"
	ContextUsername   = "token_username"
)
