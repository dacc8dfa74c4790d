package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/mediafeed/internal/client/api"
	"github.com/iudanet/mediafeed/internal/validation"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

// Service предоставляет функции авторизации поверх identity API.
// Перед любым вызовом с access token обращается к TokenManager.
type Service struct {
	apiClient IdentityAPI
	tokens    *TokenManager
	logger    *slog.Logger
}

// NewService создает новый сервис авторизации
func NewService(apiClient IdentityAPI, tokens *TokenManager, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		apiClient: apiClient,
		tokens:    tokens,
		logger:    logger,
	}
}

// Tokens returns the token manager backing the service.
func (s *Service) Tokens() *TokenManager {
	return s.tokens
}

// RequestVerification просит сервер отправить одноразовый код на email.
// Токены не участвуют.
func (s *Service) RequestVerification(ctx context.Context, email, password, firstName, lastName string) (*pkgapi.VerificationTicket, error) {
	// Валидация входных данных
	if err := errors.Join(
		validation.ValidateEmail(email),
		validation.ValidatePassword(password),
		validation.ValidateName("first name", firstName),
		validation.ValidateName("last name", lastName),
	); err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrValidation, err)
	}

	ticket, err := s.apiClient.SendEmailVerification(ctx, pkgapi.VerifyEmailRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

// Register завершает регистрацию кодом из письма, сохраняет токены и профиль
func (s *Service) Register(ctx context.Context, email, otp string) (*Profile, error) {
	if err := errors.Join(validation.ValidateEmail(email), validation.ValidateOTP(otp)); err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrValidation, err)
	}

	resp, err := s.apiClient.Register(ctx, pkgapi.RegisterRequest{Email: email, OTP: otp})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRegistrationFailed, err)
	}

	return s.storeSession(ctx, resp)
}

// Login выполняет вход, сохраняет токены и профиль
func (s *Service) Login(ctx context.Context, email, password string) (*Profile, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, fmt.Errorf("%w: %w", api.ErrValidation, err)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password cannot be empty", api.ErrValidation)
	}

	resp, err := s.apiClient.Login(ctx, pkgapi.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	return s.storeSession(ctx, resp)
}

func (s *Service) storeSession(ctx context.Context, resp *pkgapi.TokenResponse) (*Profile, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrMalformedCredentials)
	}

	if err := s.tokens.Store(ctx, &resp.Data); err != nil {
		return nil, err
	}

	profile, err := s.tokens.Profile(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Info("session stored", "user_id", profile.ID)
	return profile, nil
}

// Logout выполняет выход из системы.
// Уведомление сервера - best effort, локальные данные удаляются всегда.
// Ошибку возвращает только сбой удаления локальных данных.
func (s *Service) Logout(ctx context.Context) error {
	// 1. Получаем access token, при необходимости обновляем его
	accessToken, err := s.tokens.EnsureAccessToken(ctx)
	switch {
	case errors.Is(err, ErrNoRefreshToken):
		s.logger.Debug("no credentials found during logout")
	case err != nil:
		// Не прерываем процесс: сервер мог уже забыть сессию
		s.logger.Warn("failed to obtain access token for logout", "error", err)
	default:
		// 2. Пытаемся уведомить сервер о logout
		if logoutErr := s.apiClient.Logout(ctx, accessToken); logoutErr != nil {
			s.logger.Warn("failed to logout on server", "error", logoutErr)
		}
	}

	// 3. Всегда удаляем локальные данные, даже если сервер недоступен
	if err := s.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("failed to delete local credentials: %w", err)
	}

	return nil
}

// IsLoggedIn reports whether a refresh token is stored, regardless of the
// access token's freshness.
func (s *Service) IsLoggedIn(ctx context.Context) (bool, error) {
	return s.tokens.HasRefreshToken(ctx)
}

// Profile returns the cached profile, or nil when logged out.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	return s.tokens.Profile(ctx)
}
