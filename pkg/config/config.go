package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Session SessionConfig
	Storage StorageConfig
	Redis   RedisConfig
	Drafts  DraftsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MAISONVELA_APP_ENV" required:"true"`
	Port         string `envconfig:"MAISONVELA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"MAISONVELA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MAISONVELA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SessionConfig controls the shopper session cookie. The cookie carries only
// an opaque session id; the cart itself lives in the durable mirror.
type SessionConfig struct {
	CookieName string        `envconfig:"MAISONVELA_SESSION_COOKIE_NAME" default:"mv_session"`
	TTL        time.Duration `envconfig:"MAISONVELA_SESSION_TTL" default:"720h"`
	Secure     bool          `envconfig:"MAISONVELA_SESSION_SECURE" default:"true"`
}

// StorageConfig selects the durable key-value backend shared by the cart
// mirror and the draft store.
type StorageConfig struct {
	Backend  string        `envconfig:"MAISONVELA_STORAGE_BACKEND" default:"file"`
	FilePath string        `envconfig:"MAISONVELA_STORAGE_FILE_PATH" default:"storefront-state.json"`
	CartTTL  time.Duration `envconfig:"MAISONVELA_STORAGE_CART_TTL" default:"720h"`
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case StorageBackendFile, StorageBackendRedis, StorageBackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", s.Backend)
	}
	if s.Backend == StorageBackendFile && strings.TrimSpace(s.FilePath) == "" {
		return fmt.Errorf("%s is required for the file backend", EnvStorageFilePath)
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"MAISONVELA_REDIS_URL"`
	Address      string        `envconfig:"MAISONVELA_REDIS_ADDR"`
	Password     string        `envconfig:"MAISONVELA_REDIS_PASSWORD"`
	DB           int           `envconfig:"MAISONVELA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MAISONVELA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MAISONVELA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MAISONVELA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MAISONVELA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MAISONVELA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// DraftsConfig tunes the admin draft-autosave surface. Drafts never expire on
// their own; the debounce window is advisory for callers driving a Debouncer.
type DraftsConfig struct {
	DebounceWindow time.Duration `envconfig:"MAISONVELA_DRAFTS_DEBOUNCE_WINDOW" default:"2s"`
}
