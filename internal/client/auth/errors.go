package auth

import "errors"

// Token lifecycle and identity errors
var (
	// ErrNoRefreshToken - refresh token отсутствует, нужен повторный вход
	ErrNoRefreshToken = errors.New("no refresh token found")

	// ErrRefreshFailed - временный сбой обновления, refresh token сохранен
	ErrRefreshFailed = errors.New("failed to refresh access token")

	// ErrSessionExpired - сервер больше не знает refresh token, локальные данные удалены
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrMalformedCredentials - в ответе сервера нет ожидаемых токенов
	ErrMalformedCredentials = errors.New("malformed credentials in server response")

	// ErrInvalidDuration - ttl не в формате <число><s|m|h|d>
	ErrInvalidDuration = errors.New(`invalid time format, use format like "10m", "5s", "2h", "1d"`)

	// ErrLoginFailed - сервер не подтвердил вход
	ErrLoginFailed = errors.New("login failed")

	// ErrRegistrationFailed - сервер не подтвердил регистрацию
	ErrRegistrationFailed = errors.New("registration failed")
)

// refreshTokenNotFound - сообщение сервера о том, что refresh token отозван или истек.
// Старые версии сервера присылают его с префиксом msg_.
const refreshTokenNotFound = "refresh_token_cache_not_found"
