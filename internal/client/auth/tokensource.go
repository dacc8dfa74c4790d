package auth

import (
	"context"

	"golang.org/x/oauth2"
)

// TokenSource adapts the manager to oauth2.TokenSource so HTTP clients can
// pull a fresh bearer token before every request. ctx bounds each refresh.
func (m *TokenManager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &tokenSource{ctx: ctx, manager: m}
}

type tokenSource struct {
	ctx     context.Context
	manager *TokenManager
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	accessToken, err := s.manager.EnsureAccessToken(s.ctx)
	if err != nil {
		return nil, err
	}

	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	if creds, err := s.manager.Snapshot(s.ctx); err == nil && creds.AccessToken == accessToken {
		token.Expiry = creds.ExpiresAt
	}
	return token, nil
}
