package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Catalog    CatalogConfig
	Favorites  FavoritesConfig
	Storefront StorefrontConfig
	DB         DBConfig
	Redis      RedisConfig
	CORS       CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOBI_APP_ENV" default:"dev"`
	Port         string `envconfig:"SHOBI_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SHOBI_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOBI_LOG_WARN_STACK" default:"false"`
	AutoMigrate  bool   `envconfig:"SHOBI_AUTO_MIGRATE" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

// CatalogConfig points at the catalog document and controls reloads.
type CatalogConfig struct {
	Source       string        `envconfig:"SHOBI_CATALOG_SOURCE" required:"true"`
	Format       string        `envconfig:"SHOBI_CATALOG_FORMAT"`
	Watch        bool          `envconfig:"SHOBI_CATALOG_WATCH" default:"false"`
	Debounce     time.Duration `envconfig:"SHOBI_CATALOG_WATCH_DEBOUNCE" default:"500ms"`
	FetchTimeout time.Duration `envconfig:"SHOBI_CATALOG_FETCH_TIMEOUT" default:"10s"`
}

type FavoritesConfig struct {
	Backend string `envconfig:"SHOBI_FAVORITES_BACKEND" default:"file"`
	Slot    string `envconfig:"SHOBI_FAVORITES_SLOT" default:"shobi-favorites"`
	Dir     string `envconfig:"SHOBI_FAVORITES_DIR" default:".shobi"`
}

// StorefrontConfig drives the purchase links rendered next to each item.
type StorefrontConfig struct {
	PurchaseBaseURL  string `envconfig:"SHOBI_PURCHASE_BASE_URL" default:"https://leparfum.com.gr/en/module/iqitsearch"`
	PurchaseTemplate string `envconfig:"SHOBI_PURCHASE_TEMPLATE" default:"{base}/search?s={code}"`
}

type DBConfig struct {
	DSN    string `envconfig:"SHOBI_DB_DSN"`
	Driver string `envconfig:"SHOBI_DB_DRIVER" default:"sqlite"`

	MaxOpenConns    int           `envconfig:"SHOBI_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"SHOBI_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"SHOBI_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOBI_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOBI_REDIS_URL"`
	Address      string        `envconfig:"SHOBI_REDIS_ADDR"`
	Password     string        `envconfig:"SHOBI_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOBI_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOBI_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOBI_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOBI_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOBI_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOBI_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"SHOBI_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// FavoritesBackend returns the normalized favorites backend name.
func (f FavoritesConfig) FavoritesBackend() string {
	backend := strings.TrimSpace(strings.ToLower(f.Backend))
	if backend == "" {
		return FavoritesBackendFile
	}
	return backend
}

func (c *Config) validate() error {
	switch c.Favorites.FavoritesBackend() {
	case FavoritesBackendFile, FavoritesBackendMemory:
	case FavoritesBackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("%s=redis requires %s or %s", EnvFavoritesBackend, EnvRedisURL, EnvRedisAddr)
		}
	case FavoritesBackendSQL:
		if err := c.DB.ensureDSN(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvFavoritesBackend, c.Favorites.Backend)
	}

	if strings.TrimSpace(c.Favorites.Slot) == "" {
		return fmt.Errorf("%s must not be blank", EnvFavoritesSlot)
	}

	switch strings.ToLower(strings.TrimSpace(c.Catalog.Format)) {
	case "", "json", "yaml", "yml":
	default:
		return fmt.Errorf("unsupported %s %q", EnvCatalogFormat, c.Catalog.Format)
	}
	return nil
}

func (db *DBConfig) ensureDSN() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case "", DBDriverSQLite:
		db.Driver = DBDriverSQLite
		if db.DSN == "" {
			db.DSN = "file:shobi.db?_busy_timeout=5000"
		}
		return nil
	case DBDriverPostgres:
		db.Driver = DBDriverPostgres
		if db.DSN == "" {
			return fmt.Errorf("%s is required for the postgres driver", EnvDBDSN)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvDBDriver, db.Driver)
	}
}

// RequireDB applies the database defaults for commands that need a database
// regardless of the favorites backend.
func (c *Config) RequireDB() error {
	return c.DB.ensureDSN()
}
