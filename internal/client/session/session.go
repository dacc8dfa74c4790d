// Package session tracks whether the user of the client is considered logged in.
//
// The state is derived from the credential store at startup and then follows
// the outcome of every identity operation. Views read it and subscribe to its
// transitions; they never touch the credential store directly.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/iudanet/mediafeed/internal/client/auth"
	pkgapi "github.com/iudanet/mediafeed/pkg/api"
)

// State описывает состояние сессии.
type State string

const (
	StateInitializing  State = "Initializing"
	StateAnonymous     State = "Anonymous"
	StateAuthenticated State = "Authenticated"
)

// ErrNotStarted возвращается операциями, вызванными до Start.
var ErrNotStarted = errors.New("session is not started")

// Identity is the part of auth.Service the session drives.
type Identity interface {
	IsLoggedIn(ctx context.Context) (bool, error)
	Profile(ctx context.Context) (*auth.Profile, error)
	RequestVerification(ctx context.Context, email, password, firstName, lastName string) (*pkgapi.VerificationTicket, error)
	Register(ctx context.Context, email, otp string) (*auth.Profile, error)
	Login(ctx context.Context, email, password string) (*auth.Profile, error)
	Logout(ctx context.Context) error
}

// Session is the in-memory reflection of the login state. Safe for concurrent use.
type Session struct {
	identity    Identity
	logger      *slog.Logger
	user        *auth.Profile
	state       State
	subscribers []func(State)
	mu          sync.RWMutex
}

// New создает сессию в состоянии Initializing
func New(identity Identity, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		identity: identity,
		logger:   logger,
		state:    StateInitializing,
	}
}

// Start resolves the startup check. Any failure resolves to Anonymous, so the
// session never stays in Initializing once Start returns.
func (s *Session) Start(ctx context.Context) State {
	loggedIn, err := s.identity.IsLoggedIn(ctx)
	if err != nil {
		s.logger.Warn("failed to check stored credentials", "error", err)
		return s.transition(StateAnonymous, nil)
	}
	if !loggedIn {
		return s.transition(StateAnonymous, nil)
	}

	// Профиль нужен только для отображения, его отсутствие не мешает входу
	profile, err := s.identity.Profile(ctx)
	if err != nil {
		s.logger.Warn("failed to load cached profile", "error", err)
	}
	return s.transition(StateAuthenticated, profile)
}

// Verify requests a one-time code. The state does not change.
func (s *Session) Verify(ctx context.Context, email, password, firstName, lastName string) (*pkgapi.VerificationTicket, error) {
	if s.State() == StateInitializing {
		return nil, ErrNotStarted
	}
	return s.identity.RequestVerification(ctx, email, password, firstName, lastName)
}

// Register completes registration and moves to Authenticated on success.
func (s *Session) Register(ctx context.Context, email, otp string) (*auth.Profile, error) {
	if s.State() == StateInitializing {
		return nil, ErrNotStarted
	}

	profile, err := s.identity.Register(ctx, email, otp)
	if err != nil {
		return nil, err
	}
	s.transition(StateAuthenticated, profile)
	return profile, nil
}

// Login moves to Authenticated on success. A failed login leaves the state unchanged.
func (s *Session) Login(ctx context.Context, email, password string) (*auth.Profile, error) {
	if s.State() == StateInitializing {
		return nil, ErrNotStarted
	}

	profile, err := s.identity.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	s.transition(StateAuthenticated, profile)
	return profile, nil
}

// Logout always ends in Anonymous. The returned error only reports that the
// local credentials could not be erased.
func (s *Session) Logout(ctx context.Context) error {
	err := s.identity.Logout(ctx)
	s.transition(StateAnonymous, nil)
	return err
}

// MarkExpired drops an authenticated session to Anonymous after a downstream
// call found the refresh token revoked.
func (s *Session) MarkExpired() {
	if s.State() == StateAuthenticated {
		s.logger.Info("session expired")
		s.transition(StateAnonymous, nil)
	}
}

// Observe inspects the error of an authenticated call and marks the session
// expired when the credentials were dropped. It returns err unchanged.
func (s *Session) Observe(err error) error {
	if errors.Is(err, auth.ErrSessionExpired) {
		s.MarkExpired()
	}
	return err
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the cached profile, nil when anonymous.
func (s *Session) User() *auth.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Loading is true only until Start resolves.
func (s *Session) Loading() bool {
	return s.State() == StateInitializing
}

// Authenticated reports whether the session is in StateAuthenticated.
func (s *Session) Authenticated() bool {
	return s.State() == StateAuthenticated
}

// Subscribe registers fn to be called after every state change.
func (s *Session) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Session) transition(next State, user *auth.Profile) State {
	s.mu.Lock()
	prev := s.state
	s.state = next
	if next == StateAuthenticated {
		s.user = user
	} else {
		s.user = nil
	}
	subscribers := append([]func(State){}, s.subscribers...)
	s.mu.Unlock()

	if prev != next {
		s.logger.Debug("session state changed", "from", prev, "to", next)
		// Подписчиков вызываем без блокировки: они могут читать состояние
		for _, fn := range subscribers {
			fn(next)
		}
	}
	return next
}
