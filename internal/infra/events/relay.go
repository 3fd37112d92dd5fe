package events

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"furnish-admin/internal/infra/writestore"
	"furnish-admin/internal/pkg/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// relayMaxAttempts is how many deliveries are tried before a row is parked as
// failed for operator inspection.
const relayMaxAttempts = 3

type EventPublisher interface {
	Publish(ctx context.Context, topic string, body []byte) error
}

// Relay drains the outbox: committed event rows are published to the broker
// after the fact, so command transactions never block on broker availability.
// Delivery is at-least-once; consumers must tolerate duplicates.
type Relay struct {
	outbox    *writestore.OutboxStore
	publisher EventPublisher
	db        *pgxpool.Pool
	interval  time.Duration
	batchSize int32

	stop chan struct{}
	done chan struct{}
}

func NewRelay(outbox *writestore.OutboxStore, publisher EventPublisher, db *pgxpool.Pool, cfg config.BrokerConfig) *Relay {
	return &Relay{
		outbox:    outbox,
		publisher: publisher,
		db:        db,
		interval:  cfg.PollInterval,
		batchSize: int32(cfg.BatchSize),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (r *Relay) Start() {
	go r.run()
}

func (r *Relay) Stop() {
	close(r.stop)
	<-r.done
}

func (r *Relay) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			if err := r.drainOnce(ctx); err != nil {
				slog.Error("outbox relay pass failed", "error", err)
			}
			cancel()
		}
	}
}

// drainOnce claims one batch under a row lock, publishes each event, and
// records the outcome in the same transaction.
func (r *Relay) drainOnce(ctx context.Context) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			slog.Warn("failed to rollback relay transaction", "error", rollbackErr)
		}
	}()

	pending, err := r.outbox.FetchPending(ctx, tx, r.batchSize)
	if err != nil {
		return err
	}

	for _, row := range pending {
		if publishErr := r.publisher.Publish(ctx, row.Topic, row.Payload); publishErr != nil {
			slog.Warn("failed to publish outbox event",
				"eventId", row.ID,
				"topic", row.Topic,
				"attempts", row.Attempts+1,
				"error", publishErr,
			)
			if err := r.outbox.RecordFailure(ctx, tx, row.ID, publishErr, relayMaxAttempts); err != nil {
				return err
			}
			continue
		}
		if err := r.outbox.MarkPublished(ctx, tx, row.ID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
