package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/mediafeed/internal/client/iocli"
)

func writePasswordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "password.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newPasswordCli(passwords Passwords, input string) *Cli {
	return &Cli{
		io:        iocli.New(strings.NewReader(input), &bytes.Buffer{}),
		passwords: passwords,
	}
}

// TestGetPassword_Priority проверяет приоритет источников пароля
func TestGetPassword_Priority(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		file      string
		args      string
		input     string
		want      string
		wantError string
	}{
		{
			name: "env wins over everything",
			env:  "env_password",
			file: "file_password",
			args: "cli_password",
			want: "env_password",
		},
		{
			name: "file over cli",
			file: "file_password_priority",
			args: "cli_password_lower",
			want: "file_password_priority",
		},
		{
			name: "file whitespace is trimmed",
			file: "  password_with_spaces  \n\n",
			want: "password_with_spaces",
		},
		{
			name:      "empty file",
			file:      "\n",
			wantError: "password file is empty",
		},
		{
			name: "cli parameter",
			args: "test_cli_password_789",
			want: "test_cli_password_789",
		},
		{
			name:  "interactive prompt",
			input: "typed_password\n",
			want:  "typed_password",
		},
		{
			name:      "empty prompt",
			input:     "\n",
			wantError: "password cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(PasswordEnv, tt.env)

			passwords := Passwords{FromArgs: tt.args}
			if tt.file != "" {
				passwords.FromFile = writePasswordFile(t, tt.file)
			}

			password, err := newPasswordCli(passwords, tt.input).getPassword("Password: ")

			if tt.wantError != "" {
				require.Error(t, err)
				assert.Empty(t, password)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, password)
		})
	}
}

// TestGetPassword_FileNotFound проверяет обработку несуществующего файла
func TestGetPassword_FileNotFound(t *testing.T) {
	t.Setenv(PasswordEnv, "")

	password, err := newPasswordCli(Passwords{FromFile: "/nonexistent/file/path.txt"}, "").getPassword("Password: ")

	require.Error(t, err)
	assert.Empty(t, password)
	assert.Contains(t, err.Error(), "failed to read password file")
}
