package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/floroz/gavel-auctions/internal/adapters/api"
	"github.com/floroz/gavel-auctions/internal/adapters/blobstore"
	"github.com/floroz/gavel-auctions/internal/adapters/database"
	"github.com/floroz/gavel-auctions/internal/config"
	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/bids"
	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/internal/domain/users"
	"github.com/floroz/gavel-auctions/migrations"
	pkgdb "github.com/floroz/gavel-auctions/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("API stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Initialize Postgres Connection Pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return err
	}
	logger.Info("Postgres Connected")

	if cfg.RunMigrations {
		if err := pkgdb.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return err
		}
	}

	// 2. Image storage
	imageStore, closeStore, err := newImageStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// 3. Initialize Repositories (Infrastructure Layer)
	txManager := pkgdb.NewPostgresTransactionManager(pool, cfg.LockTimeout)
	auctionRepo := database.NewPostgresAuctionRepository(pool)
	outboxRepo := database.NewPostgresOutboxRepository(pool)

	// 4. Initialize Services (Domain Layer)
	services := api.Services{
		Auctions: auctions.NewService(txManager, auctionRepo, database.NewPostgresCategoryRepository(pool),
			outboxRepo, imageStore, logger),
		Bids:  bids.NewService(txManager, database.NewPostgresBidRepository(pool), auctionRepo, outboxRepo, logger),
		Users: users.NewService(database.NewPostgresUserRepository(pool), outboxRepo, txManager, imageStore, logger),
	}

	// 5. HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(cfg.APIRoot, services, pool, logger)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting Auction API", "addr", cfg.HTTPAddr, "api_root", cfg.APIRoot)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newImageStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (images.Store, func(), error) {
	switch cfg.BlobBackend {
	case config.BlobBackendFilesystem:
		store, err := blobstore.NewFilesystemStore(cfg.ImageDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Image store ready", "backend", cfg.BlobBackend, "dir", cfg.ImageDir)
		return store, func() {}, nil
	default:
		client, err := blobstore.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Redis Connected", "addr", cfg.RedisAddr)
		return blobstore.NewRedisStore(client, "images:"), func() { _ = client.Close() }, nil
	}
}
