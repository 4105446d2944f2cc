package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	server "github.com/jatinm79/Real-Estate-App/internal/adapters/http_server"
	"github.com/jatinm79/Real-Estate-App/internal/adapters/observability"
	redisad "github.com/jatinm79/Real-Estate-App/internal/adapters/redis"
	"github.com/jatinm79/Real-Estate-App/internal/app"
	"github.com/jatinm79/Real-Estate-App/internal/blob"
	"github.com/jatinm79/Real-Estate-App/internal/shared"
	"github.com/jatinm79/Real-Estate-App/internal/storage/postgres"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("schema setup failed")
	}
	cancel()
	log.Info().Msg("database schema ready")

	// blob storage (remote with local fallback, or local-only)
	blobs, err := blob.New(blob.Options{
		Endpoint:   cfg.MinioEndpoint,
		AccessKey:  cfg.MinioAccessKey,
		SecretKey:  cfg.MinioSecretKey,
		Bucket:     cfg.MinioBucket,
		UseSSL:     cfg.MinioUseSSL,
		LocalDir:   cfg.UploadDir,
		ForceLocal: cfg.UseLocalOnly,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("blob store setup failed")
	}

	// deps
	props := postgres.NewPropertyRepo(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	svc := app.NewPropertyService(props, blobs, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.FrontendOrigins, cfg.UploadDir)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(server.NewHandlers(
		svc,
		postgres.NewFavoritesRepo(db),
		postgres.NewInquiryRepo(db),
		cfg.AppEnv,
	))

	log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
