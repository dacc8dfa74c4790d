// Package config resolves the client settings from command-line flags,
// environment variables and an optional .env file, in that order of priority.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Store kinds accepted by --store.
const (
	StoreBolt   = "bolt"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Environment variables.
const (
	EnvServer     = "MEDIAFEED_SERVER"
	EnvDB         = "MEDIAFEED_DB"
	EnvStore      = "MEDIAFEED_STORE"
	EnvLogLevel   = "MEDIAFEED_LOG_LEVEL"
	EnvPassphrase = "MEDIAFEED_STORE_PASSPHRASE"
)

const (
	DefaultServerURL = "http://localhost:8000"
	DefaultDBPath    = "mediafeed-client.db"
	DefaultEnvFile   = ".env"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the resolved client settings.
type Config struct {
	ServerURL    string
	DBPath       string
	Store        string
	LogLevel     slog.Level
	Passphrase   string // пустая строка - хранилище без шифрования
	Password     string
	PasswordFile string
	Command      string
	Args         []string
	ShowVersion  bool
}

// Load reads envFiles (missing files are skipped), then parses args.
// Variables already set in the process environment win over the files.
func Load(args []string, envFiles ...string) (*Config, error) {
	fileEnv := make(map[string]string)
	for _, name := range envFiles {
		values, err := godotenv.Read(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		for k, v := range values {
			if _, ok := fileEnv[k]; !ok {
				fileEnv[k] = v
			}
		}
	}

	return Parse(args, func(key string) (string, bool) {
		if value, ok := os.LookupEnv(key); ok {
			return value, true
		}
		value, ok := fileEnv[key]
		return value, ok
	})
}

// Parse resolves flags in args over the variables returned by lookup.
func Parse(args []string, lookup func(string) (string, bool)) (*Config, error) {
	env := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := &Config{}
	var logLevel string

	fs := flag.NewFlagSet("mediafeed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	fs.StringVar(&cfg.ServerURL, "server", env(EnvServer, DefaultServerURL), "Server URL")
	fs.StringVar(&cfg.DBPath, "db", env(EnvDB, DefaultDBPath), "Path to local credential store")
	fs.StringVar(&cfg.Store, "store", env(EnvStore, StoreBolt), "Credential store: bolt, sqlite or memory")
	fs.StringVar(&logLevel, "log-level", env(EnvLogLevel, "warn"), "Log level")
	fs.StringVar(&cfg.Password, "password", "", "Account password")
	fs.StringVar(&cfg.PasswordFile, "password-file", "", "Path to file containing the account password")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	cfg.Passphrase = env(EnvPassphrase, "")

	if rest := fs.Args(); len(rest) > 0 {
		cfg.Command = rest[0]
		cfg.Args = rest[1:]
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalidConfig, logLevel)
	}

	cfg.Store = strings.ToLower(cfg.Store)
	switch cfg.Store {
	case StoreBolt, StoreSQLite, StoreMemory:
	default:
		return nil, fmt.Errorf("%w: unknown store %q", ErrInvalidConfig, cfg.Store)
	}

	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("%w: server url is empty", ErrInvalidConfig)
	}

	return cfg, nil
}
