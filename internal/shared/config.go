package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// Database: DATABASE_URL wins; otherwise assembled from parts.
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	CacheTTL  time.Duration

	// Remote blob store. An incomplete credentials triple means local-only.
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	UseLocalOnly   bool
	UploadDir      string

	FrontendOrigins []string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":"+env("PORT", "4000")),
		MetricsAddr: env("METRICS_ADDR", ""),

		DatabaseURL: env("DATABASE_URL", ""),
		DBHost:      env("DB_HOST", "localhost"),
		DBPort:      env("DB_PORT", "5432"),
		DBUser:      env("DB_USER", "postgres"),
		DBPassword:  env("DB_PASSWORD", "postgres"),
		DBName:      env("DB_NAME", "realestate"),

		RedisAddr: env("REDIS_ADDR", "localhost:6379"),
		RedisPass: env("REDIS_PASSWORD", ""),
		RedisDB:   atoi("REDIS_DB", 0),
		CacheTTL:  time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,

		MinioEndpoint:  env("MINIO_ENDPOINT", ""),
		MinioAccessKey: env("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: env("MINIO_SECRET_KEY", ""),
		MinioBucket:    env("MINIO_BUCKET", "real-estate"),
		MinioUseSSL:    env("MINIO_USE_SSL", "false") == "true",
		UseLocalOnly:   env("USE_LOCAL_STORAGE", "") == "true",
		UploadDir:      env("UPLOAD_DIR", "uploads"),

		FrontendOrigins: splitOrigins(env("FRONTEND_URL", "")),
	}
	if !c.RemoteStorageConfigured() && !c.UseLocalOnly {
		log.Warn().Msg("remote storage credentials incomplete; uploads go to local disk")
	}
	return c
}

// DSN returns the lib/pq connection string. TLS is required in prod, as
// the hosted database rejects plaintext there.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	ssl := "disable"
	if c.AppEnv == "prod" || c.AppEnv == "production" {
		ssl = "require"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, ssl)
}

func (c Config) RemoteStorageConfigured() bool {
	return c.MinioEndpoint != "" && c.MinioAccessKey != "" && c.MinioSecretKey != ""
}

func splitOrigins(v string) []string {
	out := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	for _, o := range strings.Split(v, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
