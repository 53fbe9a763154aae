// Package config loads server settings from defaults, an optional YAML file,
// a .env file and GREENPITCH_ environment variables, in increasing priority.
//
// Every key maps to an environment variable by upper-casing it and replacing
// dots with underscores: server.port is GREENPITCH_SERVER_PORT. PORT,
// DATABASE_URL and REDIS_URL are honoured as well.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "GREENPITCH"

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Document DocumentConfig `mapstructure:"document"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Log      LogConfig      `mapstructure:"log"`
	Session  SessionConfig  `mapstructure:"session"`
	Timings  TimingsConfig  `mapstructure:"timings"`
	Client   ClientConfig   `mapstructure:"client"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	SecureCookies   bool          `mapstructure:"secure_cookies"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	RequestLog      bool          `mapstructure:"request_log"`
}

type DocumentConfig struct {
	Path     string        `mapstructure:"path"` // empty serves the embedded page
	Watch    bool          `mapstructure:"watch"`
	Debounce time.Duration `mapstructure:"debounce"`
}

type StorageConfig struct {
	Kind        string        `mapstructure:"kind"` // memory, redis, postgres or sqlite
	RedisURL    string        `mapstructure:"redis_url"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	RedisTTL    time.Duration `mapstructure:"redis_ttl"`
	DatabaseURL string        `mapstructure:"database_url"`
	Migrate     bool          `mapstructure:"migrate"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

type TimingsConfig struct {
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	AnnounceClear  time.Duration `mapstructure:"announce_clear"`
	MenuFocusDelay time.Duration `mapstructure:"menu_focus_delay"`
	SlowThreshold  time.Duration `mapstructure:"slow_threshold"`
}

// ClientConfig lists the optional browser observers the client script uses
type ClientConfig struct {
	IntersectionObserver bool `mapstructure:"intersection_observer"`
	PerformanceObserver  bool `mapstructure:"performance_observer"`
}

// Addr is the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SetDefaults registers every key with its default value
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_log", true)

	v.SetDefault("document.path", "")
	v.SetDefault("document.watch", false)
	v.SetDefault("document.debounce", 200*time.Millisecond)

	v.SetDefault("storage.kind", "memory")
	v.SetDefault("storage.redis_url", "")
	v.SetDefault("storage.redis_prefix", "greenpitch:pref")
	v.SetDefault("storage.redis_ttl", time.Duration(0))
	v.SetDefault("storage.database_url", "")
	v.SetDefault("storage.migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("session.ttl", 30*time.Minute)
	v.SetDefault("session.sweep_interval", time.Minute)

	v.SetDefault("timings.idle_timeout", 30*time.Second)
	v.SetDefault("timings.announce_clear", time.Second)
	v.SetDefault("timings.menu_focus_delay", 100*time.Millisecond)
	v.SetDefault("timings.slow_threshold", time.Second)

	v.SetDefault("client.intersection_observer", true)
	v.SetDefault("client.performance_observer", true)
}

// NewViper prepares a viper instance: defaults, .env, environment and the
// config file. cfgFile may be empty; a missing default file is not an error.
func NewViper(cfgFile string) (*viper.Viper, error) {
	// Load environment variables
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("storage.database_url", EnvPrefix+"_STORAGE_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("storage.redis_url", EnvPrefix+"_STORAGE_REDIS_URL", "REDIS_URL")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	v.AddConfigPath(".")
	v.SetConfigType("yaml")
	v.SetConfigName(".greenpitch")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// Load decodes and validates the settings held by v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Origins may arrive as one comma separated string from the environment
	cfg.Server.AllowedOrigins = splitList(strings.Join(cfg.Server.AllowedOrigins, ","))
	cfg.Storage.Kind = strings.ToLower(strings.TrimSpace(cfg.Storage.Kind))

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings are usable together
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", cfg.Server.Port)
	}

	switch cfg.Storage.Kind {
	case "memory":
	case "redis":
		if cfg.Storage.RedisURL == "" {
			return errors.New("storage.redis_url is required for redis storage")
		}
	case "postgres", "sqlite":
		if cfg.Storage.DatabaseURL == "" {
			return fmt.Errorf("storage.database_url is required for %s storage", cfg.Storage.Kind)
		}
	default:
		return fmt.Errorf("unknown storage kind %q (supported: memory, redis, postgres, sqlite)", cfg.Storage.Kind)
	}

	if cfg.Document.Watch && cfg.Document.Path == "" {
		return errors.New("document.watch needs document.path")
	}
	if cfg.Session.TTL <= 0 || cfg.Session.SweepInterval <= 0 {
		return errors.New("session ttl and sweep interval must be positive")
	}

	for name, d := range map[string]time.Duration{
		"idle_timeout":     cfg.Timings.IdleTimeout,
		"announce_clear":   cfg.Timings.AnnounceClear,
		"menu_focus_delay": cfg.Timings.MenuFocusDelay,
		"slow_threshold":   cfg.Timings.SlowThreshold,
	} {
		if d <= 0 {
			return fmt.Errorf("timings.%s must be positive", name)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
