package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"

	"Perch/internal/api/middleware"
	"Perch/internal/api/routes"
	"Perch/internal/config"
	"Perch/internal/core/accounts"
	"Perch/internal/core/posts"
	"Perch/internal/core/scheduler"
	"Perch/internal/db/memory"
	"Perch/internal/db/migrations"
	postgresRepo "Perch/internal/db/postgres"
	"Perch/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger, err := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal("Invalid logging configuration: ", err)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed := config.DefaultSeed()
	if cfg.SeedFile != "" {
		if seed, err = config.LoadSeed(cfg.SeedFile, cfg.Location); err != nil {
			log.Fatal("Failed to load seed file: ", err)
		}
		logger.Info("seed file loaded", "path", cfg.SeedFile, "accounts", len(seed.Accounts), "posts", len(seed.Posts))
	}

	postRepo, accountRepo, closeStore, err := openStores(ctx, cfg, seed, logger)
	if err != nil {
		log.Fatal("Failed to open storage: ", err)
	}
	defer closeStore()

	service := scheduler.NewService(postRepo, accountRepo, scheduler.Config{
		Location:            cfg.Location,
		RequireFuture:       cfg.RequireFuture,
		ImportRequireFuture: cfg.ImportRequireFuture,
	}, logger)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	// Rate limiting: PERCH_RATE_LIMIT requests per minute per IP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, 1*time.Minute)
	r.Use(rateLimiter.Middleware)
	r.Use(routes.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterAccountRoutes(r, service)
	routes.RegisterPostRoutes(r, service, cfg.Location)

	if err := routes.RegisterWebRoutes(r, service, cfg.Location); err != nil {
		log.Fatal(err)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
		}
	}()

	logger.Info("Perch starting",
		"port", cfg.Port,
		"storage", cfg.StorageBackend,
		"timezone", cfg.Location.String(),
		"require_future", cfg.RequireFuture)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	logger.Info("Perch stopped")
}

// openStores builds the repositories for the configured backend and seeds them
func openStores(ctx context.Context, cfg *config.Config, seed *config.Seed, logger *slog.Logger) (posts.Repository, accounts.Repository, func(), error) {
	if cfg.StorageBackend == config.BackendMemory {
		return memory.NewPostStore(seed.Posts), memory.NewAccountStore(seed.Accounts), func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() { _ = db.Close() }

	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	logger.Info("connected to database")

	if err := migrations.Up(db); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	logger.Info("migrations completed")

	accountRepo := postgresRepo.NewAccountRepository(db)
	for i := range seed.Accounts {
		if err := accountRepo.Upsert(ctx, &seed.Accounts[i]); err != nil {
			closeDB()
			return nil, nil, nil, err
		}
	}
	// Seed posts would be re-inserted on every restart
	if len(seed.Posts) > 0 {
		logger.Warn("seed posts are only loaded into the memory backend", "posts", len(seed.Posts))
	}

	return postgresRepo.NewPostRepository(db, cfg.ClockID), accountRepo, closeDB, nil
}
