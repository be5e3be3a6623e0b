package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/caffeineveins/pkg/enums"
	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "CAFFEINEVEINS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv        = "CAFFEINEVEINS_APP_ENV"
	EnvPort          = "CAFFEINEVEINS_APP_PORT"
	EnvLogLevel      = "CAFFEINEVEINS_LOG_LEVEL"
	EnvStorageDriver = "CAFFEINEVEINS_STORAGE_DRIVER"
	EnvStorageNS     = "CAFFEINEVEINS_STORAGE_NAMESPACE"
	EnvDBDSN         = "CAFFEINEVEINS_DB_DSN"
	EnvRedisURL      = "CAFFEINEVEINS_REDIS_URL"
	EnvRedisAddr     = "CAFFEINEVEINS_REDIS_ADDR"
	EnvJWTSecret     = "CAFFEINEVEINS_JWT_SECRET"
	EnvJWTIssuer     = "CAFFEINEVEINS_JWT_ISSUER"
	EnvJWTExpMins    = "CAFFEINEVEINS_JWT_EXPIRATION_MINUTES"
	EnvAutoMigrate   = "CAFFEINEVEINS_AUTO_MIGRATE"

	defaultSQLiteDSN = "caffeineveins.db"
)

type Config struct {
	App          AppConfig
	Storage      StorageConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Housekeeping HousekeepingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAFFEINEVEINS_APP_ENV" default:"dev"`
	Port         string `envconfig:"CAFFEINEVEINS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CAFFEINEVEINS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAFFEINEVEINS_LOG_WARN_STACK" default:"false"`

	// CORSOrigins lists web origins allowed to call the API; empty disables CORS.
	CORSOrigins []string `envconfig:"CAFFEINEVEINS_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the substrate holding the products/orders blobs.
type StorageConfig struct {
	Driver    string `envconfig:"CAFFEINEVEINS_STORAGE_DRIVER" default:"sqlite"`
	Namespace string `envconfig:"CAFFEINEVEINS_STORAGE_NAMESPACE" default:"cv"`
	// WriterLeaseTTL bounds how long a crashed process keeps the single-writer lease on shared substrates.
	WriterLeaseTTL time.Duration `envconfig:"CAFFEINEVEINS_STORAGE_WRITER_LEASE_TTL" default:"10m"`
}

// DriverKind returns the parsed driver; Load guarantees it is valid.
func (s StorageConfig) DriverKind() enums.StorageDriver {
	driver, err := enums.ParseStorageDriver(s.Driver)
	if err != nil {
		return enums.StorageDriverSQLite
	}
	return driver
}

type DBConfig struct {
	DSN string `envconfig:"CAFFEINEVEINS_DB_DSN"`
	// Driver mirrors Storage.Driver for SQL substrates; set by Load.
	Driver string `ignored:"true"`

	MaxOpenConns    int           `envconfig:"CAFFEINEVEINS_DB_MAX_OPEN_CONNS" default:"4"`
	MaxIdleConns    int           `envconfig:"CAFFEINEVEINS_DB_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime time.Duration `envconfig:"CAFFEINEVEINS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAFFEINEVEINS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CAFFEINEVEINS_REDIS_URL"`
	Address      string        `envconfig:"CAFFEINEVEINS_REDIS_ADDR"`
	Password     string        `envconfig:"CAFFEINEVEINS_REDIS_PASSWORD"`
	DB           int           `envconfig:"CAFFEINEVEINS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CAFFEINEVEINS_REDIS_POOL_SIZE" default:"4"`
	MinIdleConns int           `envconfig:"CAFFEINEVEINS_REDIS_MIN_IDLE_CONNS" default:"1"`
	DialTimeout  time.Duration `envconfig:"CAFFEINEVEINS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CAFFEINEVEINS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CAFFEINEVEINS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies the identity token that carries the current user.
type JWTConfig struct {
	Secret            string `envconfig:"CAFFEINEVEINS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CAFFEINEVEINS_JWT_ISSUER" default:"caffeineveins"`
	ExpirationMinutes int    `envconfig:"CAFFEINEVEINS_JWT_EXPIRATION_MINUTES" default:"720"`
}

// TTL returns the token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// HousekeepingConfig drives the in-process job loop (lease renewal, gauges).
type HousekeepingConfig struct {
	Enabled  bool          `envconfig:"CAFFEINEVEINS_HOUSEKEEPING_ENABLED" default:"true"`
	Interval time.Duration `envconfig:"CAFFEINEVEINS_HOUSEKEEPING_INTERVAL" default:"1m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CAFFEINEVEINS_AUTO_MIGRATE" default:"true"`
}

func (c *Config) normalize() error {
	driver, err := enums.ParseStorageDriver(c.Storage.Driver)
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStorageDriver, err)
	}
	c.Storage.Driver = driver.String()

	switch driver {
	case enums.StorageDriverSQLite:
		c.DB.Driver = driver.String()
		if c.DB.DSN == "" {
			c.DB.DSN = defaultSQLiteDSN
		}
	case enums.StorageDriverPostgres:
		c.DB.Driver = driver.String()
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the postgres storage driver", EnvDBDSN)
		}
	case enums.StorageDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis storage driver", EnvRedisURL, EnvRedisAddr)
		}
	}
	if c.Housekeeping.Interval <= 0 {
		return fmt.Errorf("CAFFEINEVEINS_HOUSEKEEPING_INTERVAL must be positive")
	}
	// a lease renewed less often than it expires would lapse between ticks
	if driver == enums.StorageDriverRedis && c.Housekeeping.Enabled && c.Housekeeping.Interval >= c.Storage.WriterLeaseTTL {
		return fmt.Errorf("CAFFEINEVEINS_HOUSEKEEPING_INTERVAL must be shorter than the writer lease ttl")
	}
	return nil
}
