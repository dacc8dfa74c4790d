package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/common-nighthawk/go-figure"

	"github.com/iudanet/mediafeed/internal/client/api"
	"github.com/iudanet/mediafeed/internal/client/auth"
	"github.com/iudanet/mediafeed/internal/client/cli"
	"github.com/iudanet/mediafeed/internal/client/iocli"
	"github.com/iudanet/mediafeed/internal/client/media"
	"github.com/iudanet/mediafeed/internal/client/session"
	"github.com/iudanet/mediafeed/internal/client/storage"
	"github.com/iudanet/mediafeed/internal/client/storage/boltdb"
	"github.com/iudanet/mediafeed/internal/client/storage/memory"
	"github.com/iudanet/mediafeed/internal/client/storage/sealed"
	"github.com/iudanet/mediafeed/internal/client/storage/sqlite"
	"github.com/iudanet/mediafeed/internal/config"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	io := iocli.NewStdio()

	cfg, err := config.Load(os.Args[1:], config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cli.PrintUsage(io)
		os.Exit(2)
	}

	// Show version and exit if requested
	if cfg.ShowVersion {
		printVersion()
		os.Exit(0)
	}

	if cfg.Command == "" {
		cli.PrintUsage(io)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, io, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, io iocli.IO, logger *slog.Logger) error {
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Error("failed to close credential store", "error", err)
		}
	}()

	// Создаем API клиент
	apiClient := api.NewClient(cfg.ServerURL, api.WithLogger(logger))

	tokens := auth.NewTokenManager(store, apiClient, auth.WithLogger(logger))
	sess := session.New(auth.NewService(apiClient, tokens, logger), logger)
	mediaClient, err := media.NewClient(apiClient, tokens, cfg.ServerURL, logger)
	if err != nil {
		return err
	}

	sess.Start(ctx)

	passwords := cli.Passwords{FromArgs: cfg.Password, FromFile: cfg.PasswordFile}
	err = cli.New(io, sess, tokens, mediaClient, passwords).Run(ctx, cfg.Command, cfg.Args)
	if errors.Is(err, auth.ErrSessionExpired) {
		return fmt.Errorf("%w. Run 'mediafeed login'", err)
	}
	return err
}

// openStore открывает хранилище учетных данных, выбранное в конфигурации.
// С парольной фразой значения шифруются на диске.
func openStore(ctx context.Context, cfg *config.Config) (storage.CredentialStorage, func() error, error) {
	var (
		store     storage.CredentialStorage
		closeFunc = func() error { return nil }
	)

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := sqlite.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store, closeFunc = db, db.Close
	case config.StoreMemory:
		store = memory.New()
	default:
		db, err := boltdb.New(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		store, closeFunc = db, db.Close
	}

	if cfg.Passphrase == "" {
		return store, closeFunc, nil
	}

	sealedStore, err := sealed.New(ctx, store, cfg.Passphrase)
	if err != nil {
		return nil, nil, errors.Join(fmt.Errorf("failed to unlock credential store: %w", err), closeFunc())
	}
	return sealedStore, closeFunc, nil
}

func printVersion() {
	figure.NewFigure("mediafeed", "cybermedium", true).Print()
	fmt.Println()
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
