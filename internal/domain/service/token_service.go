package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService issues and validates the access tokens from which the
// delivery layer derives the request principal. The lifecycle core itself
// never inspects credentials; it trusts the principal handed to it.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for a principal.
	GenerateAccessToken(subjectID uuid.UUID, role string) (string, error)

	// ValidateToken checks a token string and returns the parsed token.
	ValidateToken(tokenString string) (*jwt.Token, error)

	// AccessTokenTTL returns the configured access token lifetime.
	AccessTokenTTL() time.Duration
}
