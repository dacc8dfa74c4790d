// Package identitytest provides an in-process identity and media server for
// exercising the client end to end. It is not a token-issuing service: state
// lives in memory and access tokens are signed with a throwaway HMAC secret.
package identitytest

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/iudanet/mediafeed/pkg/api"
)

// RefreshTokenNotFound is the message the server sends for an unknown refresh token.
const RefreshTokenNotFound = "refresh_token_cache_not_found"

const (
	// DefaultOTP is the one-time code accepted for every registration.
	DefaultOTP = "123456"
	// PageSize - количество элементов на странице ленты
	PageSize = 2
)

type user struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type failure struct {
	message string
	status  int
	times   int
}

// Server is an httptest.Server speaking the identity and media API.
type Server struct {
	*httptest.Server

	// AccessTTL is the ttl string returned with every access token.
	AccessTTL string

	users    map[string]*user // по email
	pending  map[string]*user
	refresh  map[string]string // refresh token -> user id
	revoked  map[string]bool   // jti отозванных access token
	failures map[string]failure
	gate     chan struct{}
	media    []api.MediaItem
	secret   []byte

	refreshCalls atomic.Int32
	logoutCalls  atomic.Int32
	mediaCalls   atomic.Int32

	mu sync.Mutex
}

// Route names accepted by FailNext.
const (
	RouteVerify   = "verify"
	RouteRegister = "register"
	RouteLogin    = "login"
	RouteRefresh  = "refresh"
	RouteLogout   = "logout"
	RouteMedia    = "media"
)

// NewServer starts a server. Close it when done.
func NewServer() *Server {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		AccessTTL: "5m",
		users:     make(map[string]*user),
		pending:   make(map[string]*user),
		refresh:   make(map[string]string),
		revoked:   make(map[string]bool),
		failures:  make(map[string]failure),
		secret:    secret,
		media: []api.MediaItem{
			{ID: "m1", Type: api.MediaTypeImage, DownloadURL: "/uploads/m1.jpg", Media: "/share/m1", Likes: 3},
			{ID: "m2", Type: api.MediaTypeVideo, DownloadURL: "/uploads/m2.mp4", Media: "/share/m2", Likes: 7},
			{ID: "m3", Type: api.MediaTypeImage, DownloadURL: "https://cdn.example.com/m3.png", Likes: 0},
		},
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()

	auth := r.PathPrefix("/api/v1/auth").
		Methods(http.MethodPost).
		Subrouter()
	auth.HandleFunc("/emails/verify", s.handleVerify)
	auth.HandleFunc("/register", s.handleRegister)
	auth.HandleFunc("/login", s.handleLogin)
	auth.HandleFunc("/tokens/refresh", s.handleRefresh)
	auth.HandleFunc("/logout", s.handleLogout)

	r.HandleFunc("/api/v1/media/{page:[0-9]+}", s.handleMedia).Methods(http.MethodGet)

	return r
}

// AddUser registers a user directly, bypassing email verification.
func (s *Server) AddUser(email, password, firstName, lastName string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := &user{ID: uuid.NewString(), Email: email, Password: password, FirstName: firstName, LastName: lastName}
	s.users[email] = u
	return u.ID
}

// FailNext makes the next request to route answer with status and message.
func (s *Server) FailNext(route string, status int, message string) {
	s.FailTimes(route, 1, status, message)
}

// FailTimes makes the next n requests to route answer with status and message.
func (s *Server) FailTimes(route string, n, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = failure{status: status, message: message, times: n}
}

// RevokeRefreshTokens forgets every issued refresh token.
func (s *Server) RevokeRefreshTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh = make(map[string]string)
}

// RevokeAccessToken makes the server reject token although it has not expired.
func (s *Server) RevokeAccessToken(token string) {
	claims, err := s.parseAccess(token)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[claims.ID] = true
}

// HoldRefresh blocks refresh requests until the returned function is called.
func (s *Server) HoldRefresh() (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gate = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.gate = nil
			s.mu.Unlock()
			close(gate)
		})
	}
}

// RefreshCalls returns the number of refresh requests received.
func (s *Server) RefreshCalls() int { return int(s.refreshCalls.Load()) }

// LogoutCalls returns the number of logout requests received.
func (s *Server) LogoutCalls() int { return int(s.logoutCalls.Load()) }

// MediaCalls returns the number of media requests received.
func (s *Server) MediaCalls() int { return int(s.mediaCalls.Load()) }

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, RouteVerify) {
		return
	}

	var req api.VerifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Email]; exists {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	s.pending[req.Email] = &user{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	writeJSON(w, http.StatusOK, api.VerificationTicket{
		Data:    map[string]any{"email": req.Email},
		Message: "verification code sent",
	})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, RouteRegister) {
		return
	}

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.pending[req.Email]
	if !ok || req.OTP != DefaultOTP {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "otp_invalid")
		return
	}
	delete(s.pending, req.Email)
	u.ID = uuid.NewString()
	s.users[req.Email] = u
	s.mu.Unlock()

	s.writeSession(w, http.StatusCreated, u)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.injected(w, RouteLogin) {
		return
	}

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	u, ok := s.users[req.Email]
	s.mu.Unlock()
	if !ok || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s.writeSession(w, http.StatusOK, u)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.refreshCalls.Add(1)

	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-r.Context().Done():
			return
		}
	}

	if s.injected(w, RouteRefresh) {
		return
	}

	refreshToken := bearerToken(r)
	s.mu.Lock()
	userID, ok := s.refresh[refreshToken]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, RefreshTokenNotFound)
		return
	}

	accessToken, err := s.signAccess(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, api.TokenResponse{Data: api.TokenData{AccessToken: accessToken, TTL: s.AccessTTL}})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.logoutCalls.Add(1)
	if s.injected(w, RouteLogout) {
		return
	}

	claims, err := s.authorize(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	s.mu.Lock()
	s.revoked[claims.ID] = true
	for token, userID := range s.refresh {
		if userID == claims.Subject {
			delete(s.refresh, token)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (s *Server) handleMedia(w http.ResponseWriter, r *http.Request) {
	s.mediaCalls.Add(1)
	if s.injected(w, RouteMedia) {
		return
	}

	if _, err := s.authorize(r); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	page, err := strconv.Atoi(mux.Vars(r)["page"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}

	s.mu.Lock()
	items := s.media
	s.mu.Unlock()

	start := min(page*PageSize, len(items))
	end := min(start+PageSize, len(items))
	result := api.MediaPage{
		Media:   append([]api.MediaItem{}, items[start:end]...),
		Page:    page,
		HasMore: end < len(items),
	}
	if result.HasMore {
		result.NextPage = page + 1
	}

	writeJSON(w, http.StatusOK, api.MediaPageResponse{Data: result})
}

func (s *Server) writeSession(w http.ResponseWriter, status int, u *user) {
	accessToken, err := s.signAccess(u.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	refreshToken := uuid.NewString()

	s.mu.Lock()
	s.refresh[refreshToken] = u.ID
	s.mu.Unlock()

	writeJSON(w, status, api.TokenResponse{Data: api.TokenData{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TTL:          s.AccessTTL,
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
	}})
}

// signAccess создает JWT access token; jti делает каждый токен уникальным
func (s *Server) signAccess(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Issuer:    "identitytest",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *Server) parseAccess(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Server) authorize(r *http.Request) (*jwt.RegisteredClaims, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, errors.New("missing bearer token")
	}
	claims, err := s.parseAccess(token)
	if err != nil {
		return nil, errors.New("invalid access token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.revoked[claims.ID] {
		return nil, errors.New("access token revoked")
	}
	return claims, nil
}

func (s *Server) injected(w http.ResponseWriter, route string) bool {
	s.mu.Lock()
	f, ok := s.failures[route]
	if ok {
		f.times--
		if f.times <= 0 {
			delete(s.failures, route)
		} else {
			s.failures[route] = f
		}
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	writeError(w, f.status, f.message)
	return true
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, api.ErrorResponse{Error: &api.ErrorDetail{Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
