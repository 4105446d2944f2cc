package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "HTTP_ADDR", "PORT", "METRICS_ADDR",
		"DATABASE_URL", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "CACHE_TTL_SECONDS",
		"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY", "MINIO_BUCKET",
		"MINIO_USE_SSL", "USE_LOCAL_STORAGE", "UPLOAD_DIR", "FRONTEND_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	c := Load()
	assert.Equal(t, "prod", c.AppEnv)
	assert.Equal(t, ":4000", c.HTTPAddr)
	assert.Equal(t, "real-estate", c.MinioBucket)
	assert.Equal(t, "uploads", c.UploadDir)
	assert.False(t, c.UseLocalOnly)
	assert.False(t, c.RemoteStorageConfigured())
	assert.Contains(t, c.FrontendOrigins, "http://localhost:3000")
}

func TestLoad_PortShorthand(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")

	c := Load()
	assert.Equal(t, ":8080", c.HTTPAddr)
}

func TestDSN_AssembledFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("DB_NAME", "listings")

	c := Load()
	require.Equal(t,
		"host=db.internal port=5433 user=app password=s3cret dbname=listings sslmode=require",
		c.DSN())

	t.Setenv("APP_ENV", "dev")
	c = Load()
	assert.Equal(t,
		"host=db.internal port=5433 user=app password=s3cret dbname=listings sslmode=disable",
		c.DSN())
}

func TestDSN_DatabaseURLWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@host:5432/db?sslmode=require")
	t.Setenv("DB_HOST", "ignored")

	c := Load()
	assert.Equal(t, "postgres://u:p@host:5432/db?sslmode=require", c.DSN())
}

func TestRemoteStorageConfigured(t *testing.T) {
	clearEnv(t)
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("MINIO_ACCESS_KEY", "key")

	c := Load()
	assert.False(t, c.RemoteStorageConfigured(), "secret missing")

	t.Setenv("MINIO_SECRET_KEY", "secret")
	c = Load()
	assert.True(t, c.RemoteStorageConfigured())
}

func TestFrontendOrigins_Extended(t *testing.T) {
	clearEnv(t)
	t.Setenv("FRONTEND_URL", "https://app.example.com, https://admin.example.com")

	c := Load()
	assert.Contains(t, c.FrontendOrigins, "https://app.example.com")
	assert.Contains(t, c.FrontendOrigins, "https://admin.example.com")
	assert.Contains(t, c.FrontendOrigins, "http://localhost:3000")
}
