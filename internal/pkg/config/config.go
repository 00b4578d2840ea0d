package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	StoreDriver     string        `env:"STORE_DRIVER,     default=postgres"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	DayOff   DayOffConfig
}

type AuthConfig struct {
	JWTSecret            string `env:"JWT_SECRET, required"`
	AccessTokenTTLMinute int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=30"`
}

// AccessTokenTTL converts the configured minutes to a duration.
func (a AuthConfig) AccessTokenTTL() time.Duration {
	return time.Duration(a.AccessTokenTTLMinute) * time.Minute
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST,     default=localhost"`
	Port     int    `env:"POSTGRES_PORT,     default=5432"`
	User     string `env:"POSTGRES_USER,     default=postgres"`
	Password string `env:"POSTGRES_PASSWORD, default=postgres"`
	Database string `env:"POSTGRES_DB,       default=taskman"`
	SSLMode  string `env:"POSTGRES_SSLMODE,  default=disable"`
}

// DSN renders the connection string understood by the pgx driver.
func (p PostgresConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     fmt.Sprintf("%s:%d", p.Host, p.Port),
		Path:     "/" + p.Database,
		RawQuery: url.Values{"sslmode": []string{p.SSLMode}}.Encode(),
	}
	return u.String()
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskman"`
}

// RedisConfig configures the day-off cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,         default=0"`
	CacheTTL time.Duration `env:"DAYOFF_CACHE_TTL, default=24h"`
}

type DayOffConfig struct {
	BaseURL string        `env:"DAYOFF_BASE_URL, default=https://isdayoff.ru"`
	Timeout time.Duration `env:"DAYOFF_TIMEOUT,  default=10s"`
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through l. Tests pass a MapLookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Auth.AccessTokenTTLMinute <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.Auth.AccessTokenTTLMinute)
	}
	return nil
}

// IsProduction reports whether ENV is set to production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
