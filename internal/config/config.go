// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env`
// file when present), loads them into structured Go types, and
// validates that required values are present so they can be reused
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional config blocks (pool sizes,
//     repository limits, observability).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

/*
	Env vars are read using the prefix LIGHTBNB_.

	Keys are normalised: the prefix is removed, the rest is lowercased and
	a double underscore separates nesting levels, so single underscores can
	stay inside key names:

		LIGHTBNB_DATABASE__SSL_MODE        -> database.ssl_mode
		LIGHTBNB_OBSERVABILITY__LOGGING__LEVEL -> observability.logging.level
*/

// EnvPrefix is the prefix shared by every configuration variable.
const EnvPrefix = "LIGHTBNB_"

// ServiceName tags logs and traces emitted by this application.
const ServiceName = "lightbnb"

// Config is the root configuration object for the application.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// The `validate:"..."` tags are enforced by go-playground/validator.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Redis         RedisConfig          `koanf:"redis"`
	Repository    RepositoryConfig     `koanf:"repository"`
	Integration   IntegrationConfig    `koanf:"integration"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool tuning.
//
// Lifetimes are expressed in seconds.
type DatabaseConfig struct {
	Host            string `koanf:"host" validate:"required"`
	Port            int    `koanf:"port" validate:"required,min=1,max=65535"`
	User            string `koanf:"user" validate:"required"`
	Password        string `koanf:"password" validate:"required"`
	Name            string `koanf:"name" validate:"required"`
	SSLMode         string `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns        int    `koanf:"max_conns" validate:"gte=0"`
	MinConns        int    `koanf:"min_conns" validate:"gte=0"`
	ConnMaxLifetime int    `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int    `koanf:"conn_max_idle_time" validate:"gte=0"`
}

// RedisConfig contains Redis connection details.
// Address is "host:port"; an empty address disables the search cache
// and the background job queue.
type RedisConfig struct {
	Address        string        `koanf:"address" validate:"omitempty,hostname_port"`
	SearchCacheTTL time.Duration `koanf:"search_cache_ttl" validate:"gte=0"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return r.Address != ""
}

// RepositoryConfig tunes the data-access layer.
type RepositoryConfig struct {
	// DefaultLimit is used when a caller does not ask for a result count.
	DefaultLimit int `koanf:"default_limit" validate:"gte=0"`

	// MaxLimit caps the number of rows a single listing call returns.
	MaxLimit int `koanf:"max_limit" validate:"gte=0"`

	// LegacyReadErrors makes reservation listing and property search log
	// query failures and return an empty result instead of an error.
	LegacyReadErrors bool `koanf:"legacy_read_errors"`
}

// IntegrationConfig stores third-party credentials.
type IntegrationConfig struct {
	ResendAPIKey string `koanf:"resend_api_key"`
	EmailFrom    string `koanf:"email_from"`
}

// Defaults applied to optional fields left at their zero value.
const (
	DefaultMaxConns        = 10
	DefaultMinConns        = 2
	DefaultConnMaxLifetime = 30 * 60
	DefaultConnMaxIdleTime = 5 * 60
	DefaultSearchLimit     = 10
	DefaultMaxSearchLimit  = 100
	DefaultEmailFrom       = "LightBnB <onboarding@resend.dev>"
)

// keyFromEnv turns LIGHTBNB_DATABASE__SSL_MODE into database.ssl_mode.
func keyFromEnv(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// Load reads configuration from the environment, unmarshals it into Config,
// validates it, applies defaults and returns the result.
//
// Behavior summary:
//   - Loads env vars with prefix LIGHTBNB_
//   - Unmarshals into Config
//   - Fills defaults for pool tuning, repository limits and observability
//   - Validates required config blocks/fields
//   - Forces observability service name + environment
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(env.Provider(EnvPrefix, ".", keyFromEnv), nil); err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config: %w", err)
	}

	cfg.applyDefaults()

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The service name is not configurable; the environment always follows
	// primary.env so logs and traces agree.
	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.Primary.Env

	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}
	if c.Database.MinConns > c.Database.MaxConns {
		c.Database.MinConns = c.Database.MaxConns
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = DefaultConnMaxLifetime
	}
	if c.Database.ConnMaxIdleTime == 0 {
		c.Database.ConnMaxIdleTime = DefaultConnMaxIdleTime
	}

	if c.Repository.DefaultLimit == 0 {
		c.Repository.DefaultLimit = DefaultSearchLimit
	}
	if c.Repository.MaxLimit == 0 {
		c.Repository.MaxLimit = DefaultMaxSearchLimit
	}
	if c.Repository.DefaultLimit > c.Repository.MaxLimit {
		c.Repository.DefaultLimit = c.Repository.MaxLimit
	}

	if c.Integration.EmailFrom == "" {
		c.Integration.EmailFrom = DefaultEmailFrom
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	} else {
		c.Observability.fillDefaults()
	}
}

// IsLocal reports whether the application runs in the local environment,
// where SQL statements are traced to the console.
func (c *Config) IsLocal() bool {
	return c.Primary.Env == "local"
}
