package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/floroz/gavel-auctions/internal/adapters/database"
	"github.com/floroz/gavel-auctions/internal/adapters/events"
	"github.com/floroz/gavel-auctions/internal/config"
	pkgdb "github.com/floroz/gavel-auctions/pkg/database"
	pkgevents "github.com/floroz/gavel-auctions/pkg/events"
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

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Initialize Postgres Connection Pool
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Unable to create connection pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Unable to ping database", "error", err)
		os.Exit(1)
	}
	logger.Info("Postgres Connected")

	// 2. Initialize RabbitMQ Publisher
	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	publisher, err := events.NewRabbitMQPublisher(conn, cfg.EventsExchange)
	if err != nil {
		logger.Error("Failed to create RabbitMQ publisher", "error", err)
		os.Exit(1)
	}
	defer publisher.Close()
	logger.Info("RabbitMQ Connected", "exchange", cfg.EventsExchange)

	// 3. Relay
	relay := pkgevents.NewOutboxRelay(
		database.NewPostgresOutboxRepository(pool),
		publisher,
		pkgdb.NewPostgresTransactionManager(pool, cfg.LockTimeout),
		cfg.RelayBatchSize,
		cfg.RelayInterval,
		cfg.EventsExchange,
		logger,
	)

	logger.Info("Starting Outbox Relay...", "batch_size", cfg.RelayBatchSize, "interval", cfg.RelayInterval)
	if err := relay.Run(ctx); err != nil {
		logger.Error("Relay failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Relay stopped")
}
