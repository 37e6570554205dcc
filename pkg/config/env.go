package config

const EnvPrefix = "SHOBI"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv            = "SHOBI_APP_ENV"
	EnvPort              = "SHOBI_APP_PORT"
	EnvLogLevel          = "SHOBI_LOG_LEVEL"
	EnvCatalogSource     = "SHOBI_CATALOG_SOURCE"
	EnvCatalogFormat     = "SHOBI_CATALOG_FORMAT"
	EnvCatalogWatch      = "SHOBI_CATALOG_WATCH"
	EnvFavoritesBackend  = "SHOBI_FAVORITES_BACKEND"
	EnvFavoritesSlot     = "SHOBI_FAVORITES_SLOT"
	EnvFavoritesDir      = "SHOBI_FAVORITES_DIR"
	EnvPurchaseBaseURL   = "SHOBI_PURCHASE_BASE_URL"
	EnvDBDSN             = "SHOBI_DB_DSN"
	EnvDBDriver          = "SHOBI_DB_DRIVER"
	EnvRedisURL          = "SHOBI_REDIS_URL"
	EnvRedisAddr         = "SHOBI_REDIS_ADDR"
	EnvCORSAllowedOrigin = "SHOBI_CORS_ALLOWED_ORIGINS"
)

const (
	FavoritesBackendFile   = "file"
	FavoritesBackendMemory = "memory"
	FavoritesBackendRedis  = "redis"
	FavoritesBackendSQL    = "sql"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)
