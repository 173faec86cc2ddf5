package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Blob     BlobConfig     `yaml:"blob"`
	Auth     AuthConfig     `yaml:"auth"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
	CORS     CORSConfig     `yaml:"cors"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"false"`
}

// BlobConfig holds asset store (S3-compatible) settings.
type BlobConfig struct {
	Bucket        string `yaml:"bucket"          env:"BLOB_S3_BUCKET"      env-required:"true"`
	Region        string `yaml:"region"          env:"BLOB_S3_REGION"      env-default:"us-east-1"`
	Endpoint      string `yaml:"endpoint"        env:"BLOB_S3_ENDPOINT"`
	PathStyle     bool   `yaml:"path_style"      env:"BLOB_S3_PATH_STYLE"  env-default:"false"`
	PublicBaseURL string `yaml:"public_base_url" env:"BLOB_PUBLIC_BASE_URL"`
}

// AuthConfig holds admin token validation settings. Token issuance is an
// external concern; the server only validates.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	JWTIssuer string `yaml:"jwt_issuer" env:"AUTH_JWT_ISSUER" env-default:"aicatalog"`
}

// CatalogConfig holds catalog view settings.
type CatalogConfig struct {
	SummaryLimit int    `yaml:"summary_limit" env:"CATALOG_SUMMARY_LIMIT" env-default:"180"`
	DefaultSort  string `yaml:"default_sort"  env:"CATALOG_DEFAULT_SORT"  env-default:"updated"`
}

// ReportConfig holds report generator settings.
type ReportConfig struct {
	MaxRecords    int           `yaml:"max_records"     env:"REPORT_MAX_RECORDS"     env-default:"200"`
	ImageTimeout  time.Duration `yaml:"image_timeout"   env:"REPORT_IMAGE_TIMEOUT"   env-default:"30s"`
	RatePerMinute int           `yaml:"rate_per_minute" env:"REPORT_RATE_PER_MINUTE" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
