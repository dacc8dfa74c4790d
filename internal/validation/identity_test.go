package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		errMsg  string
		wantErr bool
	}{
		{name: "valid", email: "ann@example.com"},
		{name: "valid with plus", email: "ann+feed@mail.example.org"},
		{name: "empty", email: "", wantErr: true, errMsg: "email cannot be empty"},
		{name: "no at", email: "ann.example.com", wantErr: true, errMsg: "invalid format"},
		{name: "no domain dot", email: "ann@example", wantErr: true, errMsg: "invalid format"},
		{name: "spaces", email: "ann lee@example.com", wantErr: true, errMsg: "invalid format"},
		{name: "too long", email: strings.Repeat("a", 250) + "@b.cd", wantErr: true, errMsg: "must not exceed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("12345678"))
	assert.ErrorContains(t, ValidatePassword(""), "password cannot be empty")
	assert.ErrorContains(t, ValidatePassword("1234567"), "at least 8 characters")
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("first name", "Анна"))
	assert.ErrorContains(t, ValidateName("first name", ""), "first name cannot be empty")
	// Длина считается в символах, а не в байтах
	assert.NoError(t, ValidateName("last name", strings.Repeat("я", MaxNameLen)))
	assert.ErrorContains(t, ValidateName("last name", strings.Repeat("я", MaxNameLen+1)), "must not exceed")
}

func TestValidateOTP(t *testing.T) {
	for _, otp := range []string{"1234", "123456", "12345678"} {
		assert.NoError(t, ValidateOTP(otp), otp)
	}
	for _, otp := range []string{"", "123", "123456789", "12a456", " 123456"} {
		assert.ErrorIs(t, ValidateOTP(otp), ErrInvalidInput, otp)
	}
}
