package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Audio    AudioConfig
	Speech   SpeechConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings. An empty Migrations uses the
// migrations built into the binary.
type DatabaseConfig struct {
	Path       string
	Migrations string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Locale string
}

// AudioConfig holds playback settings for voice previews.
type AudioConfig struct {
	Muted       bool
	PlayTimeout time.Duration `mapstructure:"play_timeout"`
}

// SpeechConfig holds synthesis cache settings.
type SpeechConfig struct {
	CacheSize  int `mapstructure:"cache_size"`
	SampleRate int `mapstructure:"sample_rate"`
}

// LogConfig holds the JSONL log settings.
type LogConfig struct {
	Level string
	Path  string
}

// Path returns the config file location. IPACHAT_CONFIG wins over the default.
func Path() string {
	if p := os.Getenv("IPACHAT_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "ipachat", "config.toml")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "ipachat", "ipachat.db"))
	v.SetDefault("database.migrations", "")
	v.SetDefault("ui.locale", "en")
	v.SetDefault("audio.muted", false)
	v.SetDefault("audio.play_timeout", 4*time.Second)
	v.SetDefault("speech.cache_size", 256)
	v.SetDefault("speech.sample_rate", 16000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
}

// Load reads configuration from file and env. Env var overrides use prefix IPACHAT_.
func Load() (Config, error) {
	return LoadFile(os.Getenv("IPACHAT_CONFIG"))
}

// LoadFile is Load with an explicit config file. An empty path searches the default location.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ipachat"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("IPACHAT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing file means defaults; a broken one is an error
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the rest of the app cannot work with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is required")
	}
	if c.Speech.CacheSize < 0 {
		return fmt.Errorf("config: speech.cache_size must be >= 0, got %d", c.Speech.CacheSize)
	}
	if c.Speech.SampleRate <= 0 {
		return fmt.Errorf("config: speech.sample_rate must be > 0, got %d", c.Speech.SampleRate)
	}
	if c.Audio.PlayTimeout < 0 {
		return fmt.Errorf("config: audio.play_timeout must be >= 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// Save writes the provided config to Path, creating the config directory if needed.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile is Save to an explicit location. The locale command uses it to persist the UI locale.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("database.migrations", cfg.Database.Migrations)
	v.Set("ui.locale", cfg.UI.Locale)
	v.Set("audio.muted", cfg.Audio.Muted)
	v.Set("audio.play_timeout", cfg.Audio.PlayTimeout.String())
	v.Set("speech.cache_size", cfg.Speech.CacheSize)
	v.Set("speech.sample_rate", cfg.Speech.SampleRate)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.path", cfg.Log.Path)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
