package auth

import (
	"context"

	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

// Refresher exchanges a refresh token for a new access token.
type Refresher interface {
	RefreshToken(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error)
}

//go:generate moq -out identity_mock.go . IdentityAPI

// IdentityAPI defines the identity endpoint calls used by the auth package.
// *api.Client implements it.
type IdentityAPI interface {
	Refresher

	// SendEmailVerification запрашивает одноразовый код на email
	SendEmailVerification(ctx context.Context, req pkgapi.VerifyEmailRequest) (*pkgapi.VerificationTicket, error)

	// Register регистрирует пользователя по коду из письма
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error)

	// Login выполняет аутентификацию пользователя
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)

	// Logout завершает сессию на сервере
	Logout(ctx context.Context, accessToken string) error
}

// Profile is the identity of the logged-in user, cached for display.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// DisplayName returns "First Last", falling back to the email.
func (p *Profile) DisplayName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return p.Email
	}
}
