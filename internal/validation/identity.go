package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

// ErrInvalidInput is wrapped by every validation failure
var ErrInvalidInput = errors.New("invalid input")

// EmailPattern - упрощенная проверка формата email: local@domain.tld
var EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// OTPPattern - одноразовый код из письма: 4-8 цифр
var OTPPattern = regexp.MustCompile(`^[0-9]{4,8}$`)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 8
	// MaxNameLen максимальная длина имени и фамилии
	MaxNameLen = 64
	// MaxEmailLen максимальная длина email
	MaxEmailLen = 254
)

// ValidateEmail проверяет формат email
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("%w: email must not exceed %d characters", ErrInvalidInput, MaxEmailLen)
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("%w: email has invalid format", ErrInvalidInput)
	}
	return nil
}

// ValidatePassword проверяет минимальные требования к паролю
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrInvalidInput)
	}
	if len(password) < MinPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrInvalidInput, MinPasswordLen)
	}
	return nil
}

// ValidateName проверяет имя или фамилию; field попадает в текст ошибки
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return fmt.Errorf("%w: %s must not exceed %d characters", ErrInvalidInput, field, MaxNameLen)
	}
	return nil
}

// ValidateOTP проверяет одноразовый код
func ValidateOTP(otp string) error {
	if !OTPPattern.MatchString(otp) {
		return fmt.Errorf("%w: verification code must be 4-8 digits", ErrInvalidInput)
	}
	return nil
}
