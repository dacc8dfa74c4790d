package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims holds the registered claims of a JWT access token.
type TokenClaims struct {
	IssuedAt  time.Time
	ExpiresAt time.Time
	Subject   string
	Issuer    string
}

// InspectAccessToken decodes the claims of a JWT access token WITHOUT
// verifying its signature. The result is for display only; expiry decisions
// use the stored issuance time and ttl.
func InspectAccessToken(token string) (*TokenClaims, error) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to parse access token: %w", err)
	}

	result := &TokenClaims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.Time
	}
	return result, nil
}
