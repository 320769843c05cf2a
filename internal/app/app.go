package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/remit/internal/apperror"
	"github.com/hance08/remit/internal/config"
	"github.com/hance08/remit/internal/logger"
	"github.com/hance08/remit/internal/service"
	"github.com/hance08/remit/internal/store"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Service *service.Service
	Store   store.Store
	Logger  *zap.Logger
}

// Open resolves default paths, builds the logger, opens the database and
// wires the services. Close releases what Open acquired.
func (a *App) Open(cfg *config.Config, migrationFS fs.FS) error {
	if err := ResolvePaths(cfg); err != nil {
		return err
	}

	log, _, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	dbStore, err := store.NewStore(store.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	}, migrationFS)
	if err != nil {
		_ = log.Sync()
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Debug("store opened", zap.String("driver", dbStore.Driver()))

	a.Config = cfg
	a.Logger = log
	a.Store = dbStore
	a.Service = service.NewService(cfg, log)
	return nil
}

func (a *App) Close() {
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			fmt.Printf("Error closing DB: %v\n", err)
		}
		a.Store = nil
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}

// Do runs fn in a new unit of work.
func (a *App) Do(ctx context.Context, fn func(store.Session) error) error {
	return store.InSession(ctx, a.Store, fn)
}

// Principal is the user the CLI acts as. The value is trusted as given.
func (a *App) Principal() (string, error) {
	username := strings.TrimSpace(a.Config.Session.Username)
	if username == "" {
		return "", apperror.Unauthorized(apperror.MsgNotLoggedIn)
	}
	return username, nil
}

// ResolvePaths fills in the database and log paths that were left empty
// and expands a leading ~ in them.
func ResolvePaths(cfg *config.Config) error {
	appDir, err := AppDataDir()
	if err != nil {
		return err
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(appDir, "remit.db")
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(appDir, "remit.log")
	}

	if cfg.Database.Path, err = ExpandPath(cfg.Database.Path); err != nil {
		return err
	}
	if cfg.Log.File, err = ExpandPath(cfg.Log.File); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return fmt.Errorf("can not create log directory: %w", err)
	}
	return nil
}

func AppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".remit"), nil
	}

	return filepath.Join(configDir, "remit"), nil
}

func ExpandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\") {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
