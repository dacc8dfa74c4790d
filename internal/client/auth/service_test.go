package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/mediafeed/internal/client/api"
	"github.com/iudanet/mediafeed/internal/client/storage"
	"github.com/iudanet/mediafeed/internal/client/storage/memory"
	"github.com/iudanet/mediafeed/internal/validation"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

func newTestService(t *testing.T, mock *IdentityAPIMock) (*Service, *TokenManager) {
	t.Helper()
	tokens, _, _ := newTestManager(t, mock)
	return NewService(mock, tokens, nil), tokens
}

func loggedIn(t *testing.T, s *Service) bool {
	t.Helper()
	ok, err := s.IsLoggedIn(context.Background())
	require.NoError(t, err)
	return ok
}

func TestService_Login(t *testing.T) {
	mock := &IdentityAPIMock{
		LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
			return &pkgapi.TokenResponse{Data: *loginData()}, nil
		},
	}
	s, tokens := newTestService(t, mock)

	profile, err := s.Login(context.Background(), "ann@example.com", "password123")

	require.NoError(t, err)
	assert.Equal(t, "Ann Lee", profile.DisplayName())
	assert.True(t, loggedIn(t, s))
	require.Len(t, mock.LoginCalls(), 1)
	assert.Equal(t, pkgapi.LoginRequest{Email: "ann@example.com", Password: "password123"}, mock.LoginCalls()[0].Req)

	token, ok, err := tokens.ValidAccessToken(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "A", token)
}

func TestService_Login_Errors(t *testing.T) {
	tests := []struct {
		apiErr    error
		resp      *pkgapi.TokenResponse
		name      string
		email     string
		password  string
		wantErrs  []error
		wantCalls int
	}{
		{
			name:      "invalid email",
			email:     "not-an-email",
			password:  "password123",
			wantErrs:  []error{api.ErrValidation, validation.ErrInvalidInput},
			wantCalls: 0,
		},
		{
			name:      "empty password",
			email:     "ann@example.com",
			wantErrs:  []error{api.ErrValidation},
			wantCalls: 0,
		},
		{
			name:      "wrong credentials",
			email:     "ann@example.com",
			password:  "password123",
			apiErr:    &api.Error{Kind: api.ErrUnauthorized, Status: http.StatusUnauthorized, Message: "invalid credentials"},
			wantErrs:  []error{ErrLoginFailed, api.ErrUnauthorized, api.ErrValidation},
			wantCalls: 1,
		},
		{
			name:      "server down",
			email:     "ann@example.com",
			password:  "password123",
			apiErr:    &api.Error{Kind: api.ErrNetwork, Err: errors.New("connection refused")},
			wantErrs:  []error{ErrLoginFailed, api.ErrNetwork},
			wantCalls: 1,
		},
		{
			name:      "response without tokens",
			email:     "ann@example.com",
			password:  "password123",
			resp:      &pkgapi.TokenResponse{Data: pkgapi.TokenData{ID: "user-1"}},
			wantErrs:  []error{ErrMalformedCredentials},
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &IdentityAPIMock{
				LoginFunc: func(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error) {
					return tt.resp, tt.apiErr
				},
			}
			s, _ := newTestService(t, mock)

			profile, err := s.Login(context.Background(), tt.email, tt.password)

			require.Error(t, err)
			assert.Nil(t, profile)
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
			assert.Len(t, mock.LoginCalls(), tt.wantCalls)
			assert.False(t, loggedIn(t, s))
		})
	}
}

func TestService_Register(t *testing.T) {
	mock := &IdentityAPIMock{
		RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error) {
			return &pkgapi.TokenResponse{Data: *loginData()}, nil
		},
	}
	s, _ := newTestService(t, mock)

	profile, err := s.Register(context.Background(), "ann@example.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "user-1", profile.ID)
	assert.True(t, loggedIn(t, s))
	require.Len(t, mock.RegisterCalls(), 1)
	assert.Equal(t, "123456", mock.RegisterCalls()[0].Req.OTP)
}

func TestService_Register_Errors(t *testing.T) {
	t.Run("bad otp", func(t *testing.T) {
		mock := &IdentityAPIMock{}
		s, _ := newTestService(t, mock)

		_, err := s.Register(context.Background(), "ann@example.com", "12ab")

		assert.ErrorIs(t, err, api.ErrValidation)
		assert.Empty(t, mock.RegisterCalls())
	})

	t.Run("server rejects otp", func(t *testing.T) {
		mock := &IdentityAPIMock{
			RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error) {
				return nil, &api.Error{Kind: api.ErrUnexpected, Status: http.StatusBadRequest, Message: "otp_invalid"}
			},
		}
		s, _ := newTestService(t, mock)

		_, err := s.Register(context.Background(), "ann@example.com", "123456")

		assert.ErrorIs(t, err, ErrRegistrationFailed)
		assert.ErrorIs(t, err, api.ErrValidation)
		assert.Equal(t, "otp_invalid", api.ServerMessage(err))
		assert.False(t, loggedIn(t, s))
	})

	t.Run("unparsable ttl", func(t *testing.T) {
		mock := &IdentityAPIMock{
			RegisterFunc: func(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.TokenResponse, error) {
				data := *loginData()
				data.TTL = "forever"
				return &pkgapi.TokenResponse{Data: data}, nil
			},
		}
		s, _ := newTestService(t, mock)

		_, err := s.Register(context.Background(), "ann@example.com", "123456")

		assert.ErrorIs(t, err, ErrInvalidDuration)
		assert.False(t, loggedIn(t, s))
	})
}

func TestService_RequestVerification(t *testing.T) {
	mock := &IdentityAPIMock{
		SendEmailVerificationFunc: func(ctx context.Context, req pkgapi.VerifyEmailRequest) (*pkgapi.VerificationTicket, error) {
			return &pkgapi.VerificationTicket{Message: "otp sent"}, nil
		},
	}
	s, _ := newTestService(t, mock)

	ticket, err := s.RequestVerification(context.Background(), "ann@example.com", "password123", "Ann", "Lee")

	require.NoError(t, err)
	assert.Equal(t, "otp sent", ticket.Message)
	require.Len(t, mock.SendEmailVerificationCalls(), 1)
	assert.Equal(t, "Lee", mock.SendEmailVerificationCalls()[0].Req.LastName)
	assert.False(t, loggedIn(t, s), "verification does not log in")

	_, err = s.RequestVerification(context.Background(), "ann@example.com", "short", "", "Lee")
	assert.ErrorIs(t, err, api.ErrValidation)
	assert.Len(t, mock.SendEmailVerificationCalls(), 1)
}

func TestService_Logout(t *testing.T) {
	tests := []struct {
		logoutErr error
		name      string
	}{
		{name: "server ok"},
		{name: "network error", logoutErr: &api.Error{Kind: api.ErrNetwork, Err: errors.New("connection refused")}},
		{name: "server error", logoutErr: &api.Error{Kind: api.ErrServerError, Status: http.StatusInternalServerError}},
		{name: "token already revoked", logoutErr: &api.Error{Kind: api.ErrUnauthorized, Status: http.StatusUnauthorized}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mock := &IdentityAPIMock{
				LogoutFunc: func(ctx context.Context, accessToken string) error {
					return tt.logoutErr
				},
			}
			s, tokens := newTestService(t, mock)
			require.NoError(t, tokens.Store(ctx, loginData()))

			err := s.Logout(ctx)

			require.NoError(t, err)
			assert.False(t, loggedIn(t, s))
			require.Len(t, mock.LogoutCalls(), 1)
			assert.Equal(t, "A", mock.LogoutCalls()[0].AccessToken)
		})
	}
}

func TestService_Logout_RefreshesExpiredToken(t *testing.T) {
	ctx := context.Background()
	mock := &IdentityAPIMock{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
			return &pkgapi.TokenResponse{Data: pkgapi.TokenData{AccessToken: "A2", TTL: "5m"}}, nil
		},
		LogoutFunc: func(ctx context.Context, accessToken string) error {
			return nil
		},
	}
	tokens, _, clock := newTestManager(t, mock)
	s := NewService(mock, tokens, nil)
	require.NoError(t, tokens.Store(ctx, loginData()))
	clock.Advance(time.Hour)

	require.NoError(t, s.Logout(ctx))

	require.Len(t, mock.LogoutCalls(), 1)
	assert.Equal(t, "A2", mock.LogoutCalls()[0].AccessToken)
	assert.False(t, loggedIn(t, s))
}

func TestService_Logout_RefreshFails(t *testing.T) {
	ctx := context.Background()
	mock := &IdentityAPIMock{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (*pkgapi.TokenResponse, error) {
			return nil, &api.Error{Kind: api.ErrNetwork, Err: errors.New("timeout")}
		},
	}
	tokens, _, clock := newTestManager(t, mock)
	s := NewService(mock, tokens, nil)
	require.NoError(t, tokens.Store(ctx, loginData()))
	clock.Advance(time.Hour)

	require.NoError(t, s.Logout(ctx))

	assert.Empty(t, mock.LogoutCalls(), "no token, no server logout")
	assert.False(t, loggedIn(t, s))
}

func TestService_Logout_NotLoggedIn(t *testing.T) {
	mock := &IdentityAPIMock{}
	s, _ := newTestService(t, mock)

	require.NoError(t, s.Logout(context.Background()))

	assert.Empty(t, mock.RefreshTokenCalls())
	assert.Empty(t, mock.LogoutCalls())
}

func TestService_Logout_ClearFails(t *testing.T) {
	ctx := context.Background()
	removeErr := errors.New("disk is read-only")

	backing := memory.New()
	store := &storage.CredentialStorageMock{
		GetFunc: backing.Get,
		SetFunc: backing.Set,
		RemoveFunc: func(ctx context.Context, keys ...storage.Key) error {
			return removeErr
		},
	}
	mock := &IdentityAPIMock{
		LogoutFunc: func(ctx context.Context, accessToken string) error {
			return nil
		},
	}
	tokens := NewTokenManager(store, mock, WithClock(clockwork.NewFakeClockAt(testNow)))
	s := NewService(mock, tokens, nil)
	require.NoError(t, tokens.Store(ctx, loginData()))

	err := s.Logout(ctx)

	assert.ErrorIs(t, err, removeErr)
	assert.Len(t, mock.LogoutCalls(), 1, "server is notified before the local clear")
	require.Len(t, store.RemoveCalls(), 1)
	assert.ElementsMatch(t, storage.CredentialKeys, store.RemoveCalls()[0].Keys)
}
