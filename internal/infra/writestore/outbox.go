package writestore

import (
	"context"
	"encoding/json"
	"time"

	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

const (
	OutboxStatusQueued    = "queued"
	OutboxStatusPublished = "published"
	OutboxStatusFailed    = "failed"
)

// OutboxRow is one pending event awaiting relay to the broker.
type OutboxRow struct {
	ID        uuid.UUID
	Topic     string
	Payload   []byte
	Attempts  int32
	LastError *string
	CreatedAt time.Time
}

type OutboxStore struct {
	db db.DBTX
}

func NewOutboxStore(pool db.DBTX) *OutboxStore {
	return &OutboxStore{db: pool}
}

var _ commands.OutboxStore = (*OutboxStore)(nil)

const insertOutboxSQL = `
INSERT INTO outbox_events (id, topic, payload, status, attempts, created_at, updated_at)
VALUES ($1, $2, $3, $4, 0, now(), now())`

func (s *OutboxStore) Enqueue(ctx context.Context, tx db.DBTX, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal outbox payload", err)
	}

	if _, err := tx.Exec(ctx, insertOutboxSQL, uuid.New(), topic, body, OutboxStatusQueued); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox event", err)
	}
	return nil
}

// FetchPending claims up to limit queued rows for publishing. SKIP LOCKED
// keeps concurrent relay instances from claiming the same rows.
const fetchPendingSQL = `
SELECT id, topic, payload, attempts, last_error, created_at
FROM outbox_events
WHERE status = $1
ORDER BY created_at
LIMIT $2
FOR UPDATE SKIP LOCKED`

func (s *OutboxStore) FetchPending(ctx context.Context, tx db.DBTX, limit int32) ([]OutboxRow, error) {
	rows, err := tx.Query(ctx, fetchPendingSQL, OutboxStatusQueued, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to fetch pending outbox events", err)
	}
	defer rows.Close()

	var pending []OutboxRow
	for rows.Next() {
		var row OutboxRow
		if err := rows.Scan(&row.ID, &row.Topic, &row.Payload, &row.Attempts, &row.LastError, &row.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox event", err)
		}
		pending = append(pending, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read pending outbox events", err)
	}
	return pending, nil
}

const markPublishedSQL = `
UPDATE outbox_events
SET status = $2, attempts = attempts + 1, last_error = NULL,
    published_at = now(), updated_at = now()
WHERE id = $1`

func (s *OutboxStore) MarkPublished(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	if _, err := tx.Exec(ctx, markPublishedSQL, id, OutboxStatusPublished); err != nil {
		return infra.WrapRepoErr("failed to mark outbox event published", err)
	}
	return nil
}

const recordFailureSQL = `
UPDATE outbox_events
SET status = CASE WHEN attempts + 1 >= $3 THEN $4 ELSE status END,
    attempts = attempts + 1, last_error = $2, updated_at = now()
WHERE id = $1`

// RecordFailure bumps the attempt count and parks the row as failed once
// maxAttempts is reached.
func (s *OutboxStore) RecordFailure(ctx context.Context, tx db.DBTX, id uuid.UUID, publishErr error, maxAttempts int32) error {
	lastError := pgconv.StringToPgtype(publishErr.Error())
	if _, err := tx.Exec(ctx, recordFailureSQL, id, lastError, maxAttempts, OutboxStatusFailed); err != nil {
		return infra.WrapRepoErr("failed to record outbox failure", err)
	}
	return nil
}
