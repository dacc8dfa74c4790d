package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/iudanet/mediafeed/internal/client/api"
	"github.com/iudanet/mediafeed/internal/client/storage"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

// TokenManager owns the credential record: it decides whether the cached
// access token is still usable, refreshes it when it is not, and erases the
// record on logout or when the server rejects the refresh token.
//
// All authenticated calls must obtain their token through EnsureAccessToken.
type TokenManager struct {
	store     storage.CredentialStorage
	refresher Refresher
	clock     clockwork.Clock
	logger    *slog.Logger
	group     singleflight.Group
	// mu сериализует записи store/clear/refresh внутри процесса
	mu sync.Mutex
}

// ManagerOption configures a TokenManager.
type ManagerOption func(*TokenManager)

// WithClock replaces the wall clock, used by tests to simulate expiry.
func WithClock(clock clockwork.Clock) ManagerOption {
	return func(m *TokenManager) {
		m.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *TokenManager) {
		m.logger = logger
	}
}

// NewTokenManager создает менеджер токенов поверх хранилища
func NewTokenManager(store storage.CredentialStorage, refresher Refresher, opts ...ManagerOption) *TokenManager {
	m := &TokenManager{
		store:     store,
		refresher: refresher,
		clock:     clockwork.NewRealClock(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Credentials is a read-only view of the stored record.
type Credentials struct {
	IssuedAt        time.Time
	ExpiresAt       time.Time
	AccessToken     string
	TTL             time.Duration
	HasRefreshToken bool
}

// Valid reports whether the access token is usable at now.
func (c *Credentials) Valid(now time.Time) bool {
	return c.AccessToken != "" && !c.IssuedAt.IsZero() && now.Before(c.ExpiresAt)
}

// ValidAccessToken returns the cached access token if it was issued less than
// ttl ago. It never refreshes and never writes.
func (m *TokenManager) ValidAccessToken(ctx context.Context) (string, bool, error) {
	creds, err := m.Snapshot(ctx)
	if err != nil {
		return "", false, err
	}
	if !creds.Valid(m.clock.Now()) {
		return "", false, nil
	}
	return creds.AccessToken, true, nil
}

// EnsureAccessToken returns a usable access token, refreshing it when the
// cached one is missing or expired. Concurrent callers share one refresh.
func (m *TokenManager) EnsureAccessToken(ctx context.Context) (string, error) {
	if token, ok, err := m.ValidAccessToken(ctx); err != nil {
		return "", err
	} else if ok {
		return token, nil
	}

	return m.sharedRefresh(ctx, "")
}

// RefreshRejected is called after the server answered 401 to a token that
// still looked valid locally. It returns a token other than rejected,
// refreshing once for all concurrent callers reporting the same token.
func (m *TokenManager) RefreshRejected(ctx context.Context, rejected string) (string, error) {
	return m.sharedRefresh(ctx, rejected)
}

func (m *TokenManager) sharedRefresh(ctx context.Context, stale string) (string, error) {
	// Общий refresh не должен обрываться, если отменили контекст одного из ожидающих
	refreshCtx := context.WithoutCancel(ctx)
	ch := m.group.DoChan("refresh", func() (any, error) {
		// Пока мы ждали своей очереди, токен мог обновить предыдущий вызов
		if token, ok, err := m.ValidAccessToken(refreshCtx); err == nil && ok && token != stale {
			return token, nil
		}
		return m.Refresh(refreshCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Refresh exchanges the stored refresh token for a new access token.
//
// A server answer that the refresh token is unknown erases the whole record
// and yields ErrSessionExpired. Any other failure yields ErrRefreshFailed and
// keeps the refresh token for a later attempt.
func (m *TokenManager) Refresh(ctx context.Context) (string, error) {
	refreshToken, err := m.store.Get(ctx, storage.KeyRefreshToken)
	if errors.Is(err, storage.ErrKeyNotFound) || (err == nil && refreshToken == "") {
		return "", ErrNoRefreshToken
	}
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}

	resp, err := m.refresher.RefreshToken(ctx, refreshToken)
	if err != nil {
		if isRefreshTokenRevoked(err) {
			m.logger.Info("refresh token rejected by server, clearing credentials")
			if clearErr := m.Clear(ctx); clearErr != nil {
				return "", errors.Join(fmt.Errorf("%w: %w", ErrSessionExpired, err), clearErr)
			}
			return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
		}
		m.logger.Warn("refresh token error", "error", err)
		return "", fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	if resp == nil || resp.Data.AccessToken == "" {
		return "", fmt.Errorf("%w: refresh response has no access token", ErrMalformedCredentials)
	}
	ttl, err := TTLMillis(resp.Data.TTL)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Logout или новый login во время запроса: не воскрешаем чужую сессию
	current, err := m.store.Get(ctx, storage.KeyRefreshToken)
	if err != nil || current != refreshToken {
		return "", fmt.Errorf("%w: credentials changed during refresh", ErrRefreshFailed)
	}

	err = m.store.Set(ctx, map[storage.Key]string{
		storage.KeyAccessToken: resp.Data.AccessToken,
		storage.KeyIssuedAt:    strconv.FormatInt(m.clock.Now().UnixMilli(), 10),
		storage.KeyTTL:         strconv.FormatInt(ttl, 10),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save refreshed access token: %w", err)
	}

	m.logger.Debug("access token refreshed", "ttl", time.Duration(ttl)*time.Millisecond)

	return resp.Data.AccessToken, nil
}

// Store saves the tokens and profile of a successful login or registration.
func (m *TokenManager) Store(ctx context.Context, data *pkgapi.TokenData) error {
	if data == nil || data.AccessToken == "" || data.RefreshToken == "" {
		return fmt.Errorf("%w: access_token and refresh_token are required", ErrMalformedCredentials)
	}

	ttl, err := TTLMillis(data.TTL)
	if err != nil {
		return err
	}

	profile, err := json.Marshal(Profile{
		ID:        data.ID,
		Email:     data.Email,
		FirstName: data.FirstName,
		LastName:  data.LastName,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	err = m.store.Set(ctx, map[storage.Key]string{
		storage.KeyAccessToken:  data.AccessToken,
		storage.KeyRefreshToken: data.RefreshToken,
		storage.KeyIssuedAt:     strconv.FormatInt(m.clock.Now().UnixMilli(), 10),
		storage.KeyTTL:          strconv.FormatInt(ttl, 10),
		storage.KeyUser:         string(profile),
	})
	if err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Clear erases the whole credential record.
func (m *TokenManager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Remove(ctx, storage.CredentialKeys...); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// HasRefreshToken reports whether a refresh token is stored.
func (m *TokenManager) HasRefreshToken(ctx context.Context) (bool, error) {
	token, err := m.store.Get(ctx, storage.KeyRefreshToken)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read refresh token: %w", err)
	}
	return token != "", nil
}

// Profile returns the cached profile, or nil when none is stored.
func (m *TokenManager) Profile(ctx context.Context) (*Profile, error) {
	raw, err := m.store.Get(ctx, storage.KeyUser)
	if errors.Is(err, storage.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &profile, nil
}

// Snapshot reads the stored record. Missing or unparsable timestamps leave
// the corresponding fields zero, which makes the access token invalid.
func (m *TokenManager) Snapshot(ctx context.Context) (*Credentials, error) {
	creds := &Credentials{}

	values := make(map[storage.Key]string, 4)
	for _, key := range []storage.Key{storage.KeyAccessToken, storage.KeyRefreshToken, storage.KeyIssuedAt, storage.KeyTTL} {
		value, err := m.store.Get(ctx, key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		values[key] = value
	}

	creds.AccessToken = values[storage.KeyAccessToken]
	creds.HasRefreshToken = values[storage.KeyRefreshToken] != ""

	issuedAt, err := strconv.ParseInt(strings.TrimSpace(values[storage.KeyIssuedAt]), 10, 64)
	if err != nil {
		return creds, nil
	}
	ttl, err := strconv.ParseInt(strings.TrimSpace(values[storage.KeyTTL]), 10, 64)
	if err != nil || ttl <= 0 {
		return creds, nil
	}

	creds.IssuedAt = time.UnixMilli(issuedAt)
	creds.TTL = time.Duration(ttl) * time.Millisecond
	creds.ExpiresAt = creds.IssuedAt.Add(creds.TTL)

	return creds, nil
}

func isRefreshTokenRevoked(err error) bool {
	msg := api.ServerMessage(err)
	return msg == refreshTokenNotFound || msg == "msg_"+refreshTokenNotFound
}
