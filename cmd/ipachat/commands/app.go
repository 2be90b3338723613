package commands

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jask/ipachat/internal/audio"
	"github.com/jask/ipachat/internal/config"
	"github.com/jask/ipachat/internal/database"
	"github.com/jask/ipachat/internal/logging"
	"github.com/jask/ipachat/internal/prefs"
	"github.com/jask/ipachat/internal/service"
	"github.com/jask/ipachat/internal/speech"
)

// appContext is the dependency graph shared by every subcommand.
type appContext struct {
	Config      config.Config
	ConfigPath  string
	Logger      *slog.Logger
	DB          *sql.DB
	Audio       *audio.Manager
	Speech      *speech.MemoryCache
	Settings    *service.SettingsService
	Maintenance *service.MaintenanceService

	logs  logging.Runtime
	pulse *audio.PulsePlayer
}

func bootstrap(ctx context.Context, configPath string) (*appContext, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logs, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	logger := logs.Logger

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db, cfg.Database.Migrations); err != nil {
		_ = db.Close()
		_ = logs.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		_ = logs.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	pulse := audio.NewPulsePlayer("ipachat")
	player := audio.NewManager(pulse, cfg.Audio.PlayTimeout, logger)
	player.SetMuted(cfg.Audio.Muted)
	cache := speech.NewMemoryCache(speech.NewToneSynthesizer(cfg.Speech.SampleRate), cfg.Speech.CacheSize)
	settings := service.NewSettingsService(db, cache, player, logger)

	// restore the phoneme order from the prefs file if present
	if symbols, err := prefs.LoadPhonemeOrder(); err != nil {
		logger.Warn("load phoneme order file", "error", err)
	} else if err := settings.RestorePhonemeOrder(ctx, symbols); err != nil {
		logger.Warn("restore phoneme order", "error", err)
	}

	logger.Info("ipachat started", "db", cfg.Database.Path, "locale", cfg.UI.Locale, "muted", cfg.Audio.Muted)
	return &appContext{
		Config:      cfg,
		ConfigPath:  configPath,
		Logger:      logger,
		DB:          db,
		Audio:       player,
		Speech:      cache,
		Settings:    settings,
		Maintenance: &service.MaintenanceService{DB: db, Speech: cache},
		logs:        logs,
		pulse:       pulse,
	}, nil
}

func (a *appContext) Close() error {
	if a == nil {
		return nil
	}
	var firstErr error
	if a.pulse != nil {
		_ = a.pulse.Close()
	}
	if a.DB != nil {
		firstErr = a.DB.Close()
	}
	if err := a.logs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
