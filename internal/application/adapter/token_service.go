// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenClaims represents the claims contained in a JWT token. The owner ID is
// an opaque scoping key issued by the external identity provider; nothing in
// the application treats it as a security boundary of its own.
type TokenClaims struct {
	OwnerID   uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// TokenService defines the interface for validating bearer tokens. Token
// issuance and refresh live with the external identity provider.
type TokenService interface {
	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
