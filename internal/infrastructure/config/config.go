package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const minSecretBytes = 32

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Auth      AuthConfig
	Signup    SignupConfig
	Store     StoreConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET, required"`
	JWTKeyID  string `env:"JWT_KEY_ID, default=primary"`
	// JWTPreviousKeys holds retired keys still accepted for verification,
	// formatted as kid:secret,kid:secret.
	JWTPreviousKeys map[string]string `env:"JWT_PREVIOUS_KEYS"`
	AccessTokenTTL  time.Duration     `env:"JWT_ACCESS_TTL,      default=15m"`
	RefreshTokenTTL time.Duration     `env:"JWT_REFRESH_TTL,     default=168h"`
	BcryptCost      int               `env:"BCRYPT_COST,         default=12"`
	EnforceActive   bool              `env:"AUTH_ENFORCE_ACTIVE, default=false"`
}

type SignupConfig struct {
	DefaultStaff   bool `env:"SIGNUP_DEFAULT_STAFF,    default=false"`
	DefaultActive  bool `env:"SIGNUP_DEFAULT_ACTIVE,   default=true"`
	AllowRoleFlags bool `env:"SIGNUP_ALLOW_ROLE_FLAGS, default=true"`
}

type StoreConfig struct {
	Driver          string        `env:"STORE_DRIVER,         default=sqlite"`
	DSN             string        `env:"DATABASE_URL,         default=file:pizza.db?cache=shared"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS,    default=25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS,    default=10"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pizza_delivery"`
}

// RedisConfig with an empty Addr keeps revoked tokens in process memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type RateLimitConfig struct {
	AuthPerMinute int `env:"RATE_LIMIT_AUTH_PER_MINUTE, default=20"`
}

// Load reads a .env file when present and then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// Variables already set in the environment win over .env.
	_ = godotenv.Load()
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom processes configuration from an arbitrary lookuper and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < minSecretBytes {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d bytes", minSecretBytes))
	}
	if c.Auth.AccessTokenTTL <= 0 || c.Auth.AccessTokenTTL >= c.Auth.RefreshTokenTTL {
		errs = append(errs, errors.New("JWT_ACCESS_TTL must be positive and shorter than JWT_REFRESH_TTL"))
	}
	for kid, secret := range c.Auth.JWTPreviousKeys {
		if kid == c.Auth.JWTKeyID {
			errs = append(errs, fmt.Errorf("JWT_PREVIOUS_KEYS reuses the active key id %q", kid))
		}
		if secret == "" {
			errs = append(errs, fmt.Errorf("JWT_PREVIOUS_KEYS entry %q has an empty secret", kid))
		}
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, errors.New("BCRYPT_COST must be between 4 and 31"))
	}
	switch c.Store.Driver {
	case "sqlite", "postgres", "mysql", "sqlserver", "mongo":
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver, mongo)", c.Store.Driver))
	}
	if c.RateLimit.AuthPerMinute < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_AUTH_PER_MINUTE must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsDevelopment enables human-readable logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
