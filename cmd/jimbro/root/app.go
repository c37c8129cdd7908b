package root

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"jimbro/internal/config"
	"jimbro/internal/engine"
	"jimbro/internal/gateway"
	"jimbro/internal/storage"
)

// app holds everything a command needs, opened from config.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	profiles *storage.ProfileRepo
	sessions *storage.SessionRepo
	svc      *engine.Service
	storeErr error
}

// requireStore reports why profile and history commands cannot run.
func (a *app) requireStore() error {
	if a.storeErr != nil {
		return fmt.Errorf("storage unavailable: %w", a.storeErr)
	}
	return nil
}

func openLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	lvl, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.Log.Path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl}))
	return log, func() { _ = f.Close() }, nil
}

func openApp(ctx context.Context) (*app, func(), error) {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	log, closeLog, err := openLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	a := &app{cfg: cfg, log: log}
	cleanup := closeLog
	opts := engine.Options{Logger: log, Timeout: cfg.AI.Timeout.Std()}

	// Without a database the wizard still runs; it just starts at onboarding.
	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		a.storeErr = err
		log.Warn("storage unavailable, running without profile or history", "db", cfg.Database.Path, "error", &engine.PersistenceError{Op: "open", Err: err})
	} else {
		a.profiles = storage.NewProfileRepo(db)
		a.sessions = storage.NewSessionRepo(db)
		opts.Profiles = a.profiles
		opts.Sessions = a.sessions
		cleanup = func() {
			_ = db.Close()
			closeLog()
		}
	}

	gen, err := gateway.New(ctx, cfg.AI, log.With("component", "gateway"))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	opts.Generator = gen
	a.svc = engine.NewService(opts)
	log.Info("jimbro started", "version", Version, "db", cfg.Database.Path, "provider", cfg.AI.Provider, "model", cfg.AI.Model)
	return a, cleanup, nil
}
