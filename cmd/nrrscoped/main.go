// Command nrrscoped is the nrrscope API service. It serves the points table
// and scenario endpoints from an in-process table, persisted to the
// configured backends.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrrscope/nrrscope/internal/api"
	"github.com/nrrscope/nrrscope/internal/ingestion"
	"github.com/nrrscope/nrrscope/internal/logging"
	"github.com/nrrscope/nrrscope/internal/platform"
	"github.com/nrrscope/nrrscope/internal/tablestore"
	"github.com/nrrscope/nrrscope/pkg/config"
	"github.com/nrrscope/nrrscope/pkg/standings"
)

// loadConfig reads the config file (NRRSCOPE_CONFIG, or the nearest
// .nrrscope/config.yaml) and applies environment overrides on top.
func loadConfig() (*config.Config, error) {
	path := os.Getenv("NRRSCOPE_CONFIG")
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *config.Config) {
	cfg.Server.Port = envOrDefault("PORT", cfg.Server.Port)
	cfg.Server.APIKey = envOrDefault("API_KEY", cfg.Server.APIKey)
	cfg.Server.AllowedOrigin = envOrDefault("ALLOWED_ORIGIN", cfg.Server.AllowedOrigin)

	cfg.Storage.Backend = envOrDefault("STORAGE_BACKEND", cfg.Storage.Backend)
	cfg.Storage.LocalPath = envOrDefault("LOCAL_STORAGE_PATH", cfg.Storage.LocalPath)
	cfg.Storage.Bucket = envOrDefault("STORAGE_BUCKET", cfg.Storage.Bucket)
	cfg.Storage.Region = envOrDefault("AWS_REGION", cfg.Storage.Region)
	cfg.Storage.Endpoint = envOrDefault("S3_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.DatabaseURL = envOrDefault("DATABASE_URL", cfg.Storage.DatabaseURL)
	cfg.Storage.SeedFile = envOrDefault("SEED_TABLE", cfg.Storage.SeedFile)

	cfg.Cache.RedisURL = envOrDefault("REDIS_URL", cfg.Cache.RedisURL)
	cfg.Cache.Size = envIntOrDefault("RESULT_CACHE_SIZE", cfg.Cache.Size)
	cfg.Cache.TTL = envIntOrDefault("RESULT_CACHE_TTL", cfg.Cache.TTL)

	cfg.Scenario.MaxPosition = envIntOrDefault("MAX_POSITION", cfg.Scenario.MaxPosition)

	cfg.Logging.Level = envOrDefault("LOG_LEVEL", cfg.Logging.Level)
	if v, err := strconv.ParseBool(os.Getenv("LOG_JSON")); err == nil {
		cfg.Logging.JSON = v
	}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.Log.WithError(err).Fatal("load config")
	}
	if err := logging.SetLevel(cfg.Logging.Level); err != nil {
		logging.Log.WithError(err).Fatal("configure logging")
	}
	logging.SetJSON(cfg.Logging.JSON)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		db   *sql.DB
		repo ingestion.TableRepository
	)
	if cfg.Storage.DatabaseURL != "" {
		db, err = platform.OpenPostgres(ctx, cfg.Storage.DatabaseURL)
		if err != nil {
			logging.Log.WithError(err).Fatal("connect database")
		}
		defer db.Close()

		if err := platform.AutoMigrate(db); err != nil {
			logging.Log.WithError(err).Fatal("migrate database")
		}
		repo = tablestore.NewRepository(db)
	}

	blob, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		logging.Log.WithError(err).Fatal("configure storage")
	}

	seed := standings.DefaultTable()
	if cfg.Storage.SeedFile != "" {
		if seed, err = standings.LoadFile(cfg.Storage.SeedFile); err != nil {
			logging.Log.WithError(err).Fatal("load seed table")
		}
	}

	store, err := standings.NewStore(seed)
	if err != nil {
		logging.Log.WithError(err).Fatal("create store")
	}
	svc := ingestion.NewService(store, blob, repo, ingestion.NewFetcher(3, 30*time.Second))
	src, err := svc.Bootstrap(ctx, seed)
	if err != nil {
		logging.Log.WithError(err).Fatal("bootstrap points table")
	}

	cache, closeCache := newResultCache(ctx, cfg.Cache)
	defer closeCache()

	handler := api.NewHandler(svc, api.Options{
		Cache:       cache,
		MaxPosition: cfg.Scenario.MaxPosition,
		APIKey:      cfg.Server.APIKey,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", healthHandler(db))
	mux.Handle("/", handler.Routes(cfg.Server.AllowedOrigin))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Log.WithFields(logrus.Fields{
			"port":    cfg.Server.Port,
			"storage": cfg.Storage.Backend,
			"table":   src,
			"version": store.Current().Version,
		}).Info("starting nrrscoped")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.WithError(err).Fatal("listen")
		}
	}()

	<-ctx.Done()
	logging.Log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.WithError(err).Error("shutdown error")
	}
}

// newStorage builds the blob backend named by cfg.Backend. "none" returns nil.
func newStorage(ctx context.Context, cfg config.StorageConfig) (ingestion.StorageClient, error) {
	switch cfg.Backend {
	case "", "local":
		return ingestion.NewLocalStorage(cfg.LocalPath), nil
	case "s3":
		s, err := ingestion.NewS3Storage(ctx, ingestion.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case "gcs":
		s, err := ingestion.NewGCSStorage(ctx, cfg.Bucket)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "none":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// newResultCache prefers Redis when configured and falls back to the
// in-memory LRU if Redis is unreachable.
func newResultCache(ctx context.Context, cfg config.CacheConfig) (api.ResultCache, func()) {
	if cfg.RedisURL != "" {
		rc, err := api.NewRedisResultCache(ctx, cfg.RedisURL, time.Duration(cfg.TTL)*time.Second)
		if err == nil {
			return rc, func() { rc.Close() }
		}
		logging.Log.WithError(err).Warn("redis unavailable, using in-memory result cache")
	}
	return api.NewLRUResultCache(cfg.Size), func() {}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}
