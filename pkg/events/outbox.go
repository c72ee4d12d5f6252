package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/floroz/gavel-auctions/pkg/database"
	"github.com/floroz/gavel-auctions/pkg/metrics"
)

// OutboxStatus defines the status of an event in the outbox
type OutboxStatus string

const (
	OutboxStatusPending    OutboxStatus = "pending"
	OutboxStatusProcessing OutboxStatus = "processing"
	OutboxStatusPublished  OutboxStatus = "published"
	OutboxStatusFailed     OutboxStatus = "failed"
)

// OutboxEvent is a domain event persisted in the same transaction as the
// state change that produced it.
type OutboxEvent struct {
	ID          uuid.UUID    `db:"id"`
	EventType   EventType    `db:"event_type"`
	Payload     []byte       `db:"payload"`
	Status      OutboxStatus `db:"status"`
	CreatedAt   time.Time    `db:"created_at"`
	ProcessedAt *time.Time   `db:"processed_at"`
}

// NewOutboxEvent serializes payload as JSON and wraps it in a pending outbox event.
func NewOutboxEvent(eventType EventType, payload any) (*OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return &OutboxEvent{
		ID:        uuid.New(),
		EventType: eventType,
		Payload:   body,
		Status:    OutboxStatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// OutboxWriter stores events inside the caller's transaction.
type OutboxWriter interface {
	SaveEvent(ctx context.Context, tx pgx.Tx, event *OutboxEvent) error
}

// OutboxRepository is what the relay needs to drain the outbox.
type OutboxRepository interface {
	GetPendingEvents(ctx context.Context, tx pgx.Tx, limit int) ([]*OutboxEvent, error)
	UpdateEventStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status OutboxStatus) error
}

// EventPublisher defines the interface for publishing events to a broker
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

// OutboxRelay polls the outbox for pending events and publishes them
type OutboxRelay struct {
	outboxRepo OutboxRepository
	publisher  EventPublisher
	txManager  database.TransactionManager
	batchSize  int
	interval   time.Duration
	exchange   string
	logger     *slog.Logger
}

// NewOutboxRelay creates a new outbox relay
func NewOutboxRelay(
	outboxRepo OutboxRepository,
	publisher EventPublisher,
	txManager database.TransactionManager,
	batchSize int,
	interval time.Duration,
	exchange string,
	logger *slog.Logger,
) *OutboxRelay {
	return &OutboxRelay{
		outboxRepo: outboxRepo,
		publisher:  publisher,
		txManager:  txManager,
		batchSize:  batchSize,
		interval:   interval,
		exchange:   exchange,
		logger:     logger,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.ProcessBatch(ctx); err != nil {
			r.logger.Error("Error processing outbox batch", "error", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// ProcessBatch publishes up to batchSize pending events and returns how many were published.
// A publish failure rolls the whole batch back so the events stay pending.
func (r *OutboxRelay) ProcessBatch(ctx context.Context) (int, error) {
	tx, err := r.txManager.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	// FOR UPDATE SKIP LOCKED lets several relays run side by side
	pending, err := r.outboxRepo.GetPendingEvents(ctx, tx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pending events: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	for _, event := range pending {
		if err := r.publisher.Publish(ctx, r.exchange, event.EventType.String(), event.Payload); err != nil {
			metrics.RecordOutboxEvent(event.EventType.String(), false)
			return 0, fmt.Errorf("failed to publish event %s: %w", event.ID, err)
		}
		if err := r.outboxRepo.UpdateEventStatus(ctx, tx, event.ID, OutboxStatusPublished); err != nil {
			return 0, fmt.Errorf("failed to update event status %s: %w", event.ID, err)
		}
		metrics.RecordOutboxEvent(event.EventType.String(), true)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.logger.Info("Published outbox events", "count", len(pending))
	return len(pending), nil
}
