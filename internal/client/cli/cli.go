package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/mediafeed/internal/client/auth"
	"github.com/iudanet/mediafeed/internal/client/iocli"
	"github.com/iudanet/mediafeed/internal/client/media"
	"github.com/iudanet/mediafeed/internal/client/session"
)

// PasswordEnv - переменная окружения с паролем для неинтерактивного входа
const PasswordEnv = "MEDIAFEED_PASSWORD"

var errEmptyPassword = errors.New("password cannot be empty")

// Passwords lists the non-interactive password sources given on the command line.
type Passwords struct {
	FromFile string
	FromArgs string
}

// Cli runs one command against the session.
type Cli struct {
	io        iocli.IO
	session   *session.Session
	tokens    *auth.TokenManager
	media     *media.Client
	passwords Passwords
}

// New создает CLI поверх готовой сессии
func New(io iocli.IO, sess *session.Session, tokens *auth.TokenManager, mediaClient *media.Client, passwords Passwords) *Cli {
	return &Cli{
		io:        io,
		session:   sess,
		tokens:    tokens,
		media:     mediaClient,
		passwords: passwords,
	}
}

// getPassword retrieves the account password from various sources with priority:
// 1. Environment variable MEDIAFEED_PASSWORD
// 2. File specified in --password-file
// 3. Command-line parameter --password
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", errEmptyPassword
	}

	return password, nil
}

// PrintUsage prints the command reference.
func PrintUsage(io iocli.IO) {
	io.Println("MediaFeed Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  mediafeed [OPTIONS] COMMAND")
	io.Println()
	io.Println("Options:")
	io.Println("  --version               Show version information")
	io.Println("  --server URL            Server URL (default: http://localhost:8000)")
	io.Println("  --db PATH               Path to local credential store (default: mediafeed-client.db)")
	io.Println("  --store KIND            Credential store: bolt, sqlite or memory (default: bolt)")
	io.Println("  --log-level LEVEL       debug, info, warn or error (default: warn)")
	io.Println("  --password PASSWORD     Account password (not recommended, use env var or file)")
	io.Println("  --password-file PATH    Path to file containing the account password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. MEDIAFEED_PASSWORD environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Commands:")
	io.Println("  verify                  Request a verification code for a new account")
	io.Println("  register                Complete registration with the emailed code")
	io.Println("  login                   Login to server")
	io.Println("  logout                  Logout and delete the local session")
	io.Println("  status                  Show session and token status")
	io.Println("  feed [page]             Show a page of the media feed")
	io.Println("  share <id> [page]       Print the share link of a media item")
	io.Println("  like <id> [page]        Like or unlike a media item")
	io.Println()
	io.Println("Examples:")
	io.Println("  mediafeed verify")
	io.Println("  mediafeed register")
	io.Println("  mediafeed login")
	io.Println("  mediafeed feed 1")
	io.Println("  MEDIAFEED_STORE_PASSPHRASE='...' mediafeed --store sqlite login")
	io.Println("  mediafeed --server https://example.com status")
}
