package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/i32sevit/analiza-tu-pc/internal/application"
	appanalyses "github.com/i32sevit/analiza-tu-pc/internal/application/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/config"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/advice"
	domain "github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
	openaiClient "github.com/i32sevit/analiza-tu-pc/internal/infra/ai/openai"
	mysqlp "github.com/i32sevit/analiza-tu-pc/internal/infra/db/mysql"
	postgresp "github.com/i32sevit/analiza-tu-pc/internal/infra/db/postgres"
	sqlitep "github.com/i32sevit/analiza-tu-pc/internal/infra/db/sqlite"
	"github.com/i32sevit/analiza-tu-pc/internal/infra/httpserver"
	"github.com/i32sevit/analiza-tu-pc/internal/infra/report"
	minioStore "github.com/i32sevit/analiza-tu-pc/internal/infra/storage"
	"github.com/i32sevit/analiza-tu-pc/internal/middleware"
)

// schemaRepo is what every db adapter provides: the record store
// contract plus one-time schema bootstrap.
type schemaRepo interface {
	domain.Repository
	EnsureSchema(ctx context.Context) error
}

func openRepository(ctx context.Context, cfg *config.Config) (schemaRepo, *sql.DB, error) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("mysql connect: %w", err)
		}
		return mysqlp.NewAnalysisRepository(db), db, nil
	case "postgres":
		db, err := postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, nil, fmt.Errorf("postgres connect: %w", err)
		}
		return postgresp.NewAnalysisRepository(db), db, nil
	case "sqlite":
		db, err := sqlitep.Connect(ctx, cfg.Database.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		return sqlitep.NewAnalysisRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %s", cfg.Database.Driver)
	}
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	repo, db, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer db.Close()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema error: %v", err)
	}

	healthChecks := map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}

	// external storage is optional: without it artifact URLs are null
	var artifacts domain.ArtifactStore
	if cfg.MinioConfigured() {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		artifacts = store
		healthChecks["storage"] = &middleware.ArtifactStoreHealthChecker{Probe: store.Healthy}
	} else {
		log.Println("minio not configured, reports will not be uploaded")
	}

	// AI advisor is optional too
	var advisor advice.Client
	if cfg.OpenAI.APIKey != "" {
		advisor = openaiClient.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	}

	svc := &appanalyses.Service{
		Repo:      repo,
		Artifacts: artifacts,
		Synth:     report.NewSynthesizer(),
		Engine:    scoring.NewEngine(scoring.DefaultConfig()),
		Advisor:   advisor,
		Clock:     application.SystemClock{},
	}

	health := middleware.HealthHandler(healthChecks)

	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(middleware.OptionalAPIKeyAuth(cfg.Auth.Keys))
	mux.Use(middleware.RateLimitMiddleware(cfg.RateLimit.Capacity, cfg.RateLimit.RefillRate))
	mux.Mount("/", httpserver.NewRouter(svc, artifacts != nil, health))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
