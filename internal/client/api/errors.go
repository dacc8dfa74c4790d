package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds reported by every call of the identity and media endpoints.
var (
	// ErrUnauthorized - сервер ответил 401
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden - сервер ответил 403
	ErrForbidden = errors.New("you do not have permission to perform this action")

	// ErrNotFound - сервер ответил 404
	ErrNotFound = errors.New("requested resource not found")

	// ErrServerError - сервер ответил 500
	ErrServerError = errors.New("server error, please try again later")

	// ErrUnexpected - любой другой неуспешный статус
	ErrUnexpected = errors.New("an unexpected error occurred")

	// ErrNetwork - запрос отправлен, но ответа нет
	ErrNetwork = errors.New("no response from server, please check your internet connection")

	// ErrClient - запрос не удалось даже сформировать
	ErrClient = errors.New("failed to set up request")

	// ErrValidation - 4xx со структурированным сообщением сервера
	ErrValidation = errors.New("validation error")
)

// Error describes a failed call. errors.Is matches it against its Kind,
// and against ErrValidation when the server rejected the input with a message.
type Error struct {
	Kind      error
	Err       error // причина на стороне клиента (сеть, сериализация)
	Message   string
	RequestID string
	Status    int
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%v (%d): %s", e.Kind, e.Status, e.Message)
	default:
		return fmt.Sprintf("%v (%d)", e.Kind, e.Status)
	}
}

func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return target == ErrValidation && e.Message != "" &&
		e.Status >= http.StatusBadRequest && e.Status < http.StatusInternalServerError
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ServerMessage returns the message the server put in its error body, or "".
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// StatusCode returns the HTTP status of a failed call, or 0 when no response was received.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// statusError сопоставляет HTTP статус с видом ошибки.
// Вся классификация ответов сервера живет здесь.
func statusError(status int, message, requestID string) *Error {
	e := &Error{Status: status, Message: message, RequestID: requestID}

	switch status {
	case http.StatusUnauthorized:
		e.Kind = ErrUnauthorized
	case http.StatusForbidden:
		e.Kind = ErrForbidden
	case http.StatusNotFound:
		e.Kind = ErrNotFound
	case http.StatusInternalServerError:
		e.Kind = ErrServerError
	default:
		e.Kind = ErrUnexpected
	}

	return e
}
