package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	LogLevel            string
	DatabaseURL         string
	RedisURL            string // optional; financing cache and health stats are disabled without it
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string

	UploadDir        string // local directory for images when no object storage is configured
	UploadPublicPath string // URL prefix the upload dir is served under
	MaxUploadBytes   int64
	StorageURL       string // object storage base URL, e.g. https://xyz.supabase.co
	StorageSecretKey string
	StorageBucket    string

	FinancingCacheTTL time.Duration
}

const (
	defaultPort              = "8080"
	defaultUploadDir         = "public/uploads"
	defaultUploadPublicPath  = "/uploads"
	defaultMaxUploadBytes    = 5 << 20
	defaultStorageBucket     = "property-images"
	defaultFinancingCacheTTL = 10 * time.Minute
)

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("UPLOAD_DIR", defaultUploadDir)
	viper.SetDefault("UPLOAD_PUBLIC_PATH", defaultUploadPublicPath)
	viper.SetDefault("MAX_UPLOAD_BYTES", defaultMaxUploadBytes)
	viper.SetDefault("STORAGE_BUCKET", defaultStorageBucket)
	viper.SetDefault("FINANCING_CACHE_TTL", defaultFinancingCacheTTL)

	env := viper.GetString("NODE_ENV")
	if env == "" {
		env = viper.GetString("APP_ENV")
	}
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL_DEV")
	if env == "production" {
		dbURL = viper.GetString("DATABASE_URL_PROD")
	} else if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL_DEV")
	}

	port := viper.GetString("PORT")
	if port == "" {
		port = defaultPort
	}
	maxUpload := viper.GetInt64("MAX_UPLOAD_BYTES")
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	ttl := viper.GetDuration("FINANCING_CACHE_TTL")
	if ttl <= 0 {
		ttl = defaultFinancingCacheTTL
	}

	return &Config{
		Env:                 env,
		Port:                port,
		LogLevel:            viper.GetString("LOG_LEVEL"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		UploadDir:           viper.GetString("UPLOAD_DIR"),
		UploadPublicPath:    strings.TrimRight(viper.GetString("UPLOAD_PUBLIC_PATH"), "/"),
		MaxUploadBytes:      maxUpload,
		StorageURL:          strings.TrimRight(viper.GetString("STORAGE_URL"), "/"),
		StorageSecretKey:    viper.GetString("STORAGE_SECRET_KEY"),
		StorageBucket:       viper.GetString("STORAGE_BUCKET"),
		FinancingCacheTTL:   ttl,
	}, nil
}

// IsProduction reports whether the app runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ObjectStorageEnabled is true when uploads should go to the storage API
// instead of the local upload dir.
func (c *Config) ObjectStorageEnabled() bool {
	return c.StorageURL != "" && c.StorageSecretKey != ""
}
