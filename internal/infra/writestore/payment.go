package writestore

import (
	"context"
	"time"

	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentStore struct {
	db db.DBTX
}

func NewPaymentStore(pool db.DBTX) *PaymentStore {
	return &PaymentStore{db: pool}
}

var _ commands.PaymentStore = (*PaymentStore)(nil)

const insertPaymentSQL = `
INSERT INTO payments (
    id, order_id, amount, currency, method, status,
    gateway_intent_id, gateway_client_secret, refunded_amount,
    receipt_url, paid_at, failure_reason, failed_at,
    cancellation_reason, cancelled_by, cancelled_at,
    last_refund_reason, refund_requested_by, refunded_at,
    retry_count, created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
    $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
)`

func (s *PaymentStore) Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	_, err := tx.Exec(ctx, insertPaymentSQL,
		p.ID(),
		p.OrderID(),
		p.Amount(),
		p.Currency(),
		p.Method(),
		p.Status().String(),
		p.GatewayIntentID(),
		p.GatewayClientSecret(),
		p.RefundedAmount(),
		pgconv.StringPtrToPgtype(p.ReceiptURL()),
		pgconv.TimePtrToPgtype(p.PaidAt()),
		pgconv.StringPtrToPgtype(p.FailureReason()),
		pgconv.TimePtrToPgtype(p.FailedAt()),
		pgconv.StringPtrToPgtype(p.CancellationReason()),
		pgconv.StringPtrToPgtype(p.CancelledBy()),
		pgconv.TimePtrToPgtype(p.CancelledAt()),
		pgconv.StringPtrToPgtype(p.LastRefundReason()),
		pgconv.StringPtrToPgtype(p.RefundRequestedBy()),
		pgconv.TimePtrToPgtype(p.RefundedAt()),
		p.RetryCount(),
		p.CreatedAt(),
		p.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("duplicate payment", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create payment", err)
	}
	return nil
}

const updatePaymentSQL = `
UPDATE payments SET
    status = $2,
    gateway_intent_id = $3,
    gateway_client_secret = $4,
    refunded_amount = $5,
    receipt_url = $6,
    paid_at = $7,
    failure_reason = $8,
    failed_at = $9,
    cancellation_reason = $10,
    cancelled_by = $11,
    cancelled_at = $12,
    last_refund_reason = $13,
    refund_requested_by = $14,
    refunded_at = $15,
    retry_count = $16,
    updated_at = $17
WHERE id = $1`

func (s *PaymentStore) Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error {
	tag, err := tx.Exec(ctx, updatePaymentSQL,
		p.ID(),
		p.Status().String(),
		p.GatewayIntentID(),
		p.GatewayClientSecret(),
		p.RefundedAmount(),
		pgconv.StringPtrToPgtype(p.ReceiptURL()),
		pgconv.TimePtrToPgtype(p.PaidAt()),
		pgconv.StringPtrToPgtype(p.FailureReason()),
		pgconv.TimePtrToPgtype(p.FailedAt()),
		pgconv.StringPtrToPgtype(p.CancellationReason()),
		pgconv.StringPtrToPgtype(p.CancelledBy()),
		pgconv.TimePtrToPgtype(p.CancelledAt()),
		pgconv.StringPtrToPgtype(p.LastRefundReason()),
		pgconv.StringPtrToPgtype(p.RefundRequestedBy()),
		pgconv.TimePtrToPgtype(p.RefundedAt()),
		p.RetryCount(),
		p.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

const selectPaymentSQL = `
SELECT id, order_id, amount, currency, method, status,
       gateway_intent_id, gateway_client_secret, refunded_amount,
       receipt_url, paid_at, failure_reason, failed_at,
       cancellation_reason, cancelled_by, cancelled_at,
       last_refund_reason, refund_requested_by, refunded_at,
       retry_count, created_at, updated_at
FROM payments
WHERE `

func (s *PaymentStore) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	row := s.db.QueryRow(ctx, selectPaymentSQL+"id = $1", id)
	entity, err := scanPayment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return entity, nil
}

func (s *PaymentStore) FindByGatewayIntentID(ctx context.Context, gatewayIntentID string) (*payment.Payment, error) {
	row := s.db.QueryRow(ctx, selectPaymentSQL+"gateway_intent_id = $1", gatewayIntentID)
	entity, err := scanPayment(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found by intent", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by intent", err)
	}
	return entity, nil
}

func scanPayment(row rowScanner) (*payment.Payment, error) {
	var (
		id, orderID                           uuid.UUID
		amount, refundedAmount                float64
		currency, method, status              string
		gatewayIntentID, gatewayClientSecret  string
		receiptURL                            pgtype.Text
		paidAt                                pgtype.Timestamptz
		failureReason                         pgtype.Text
		failedAt                              pgtype.Timestamptz
		cancellationReason, cancelledBy       pgtype.Text
		cancelledAt                           pgtype.Timestamptz
		lastRefundReason, refundRequestedBy   pgtype.Text
		refundedAt                            pgtype.Timestamptz
		retryCount                            int
		createdAt, updatedAt                  time.Time
	)

	err := row.Scan(
		&id, &orderID, &amount, &currency, &method, &status,
		&gatewayIntentID, &gatewayClientSecret, &refundedAmount,
		&receiptURL, &paidAt, &failureReason, &failedAt,
		&cancellationReason, &cancelledBy, &cancelledAt,
		&lastRefundReason, &refundRequestedBy, &refundedAt,
		&retryCount, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	return payment.Reconstruct(
		id, orderID,
		amount,
		currency, method,
		payment.Status(status),
		gatewayIntentID, gatewayClientSecret,
		refundedAmount,
		pgconv.StringPtrFromPgtype(receiptURL),
		pgconv.TimePtrFromPgtype(paidAt),
		pgconv.StringPtrFromPgtype(failureReason),
		pgconv.TimePtrFromPgtype(failedAt),
		pgconv.StringPtrFromPgtype(cancellationReason),
		pgconv.StringPtrFromPgtype(cancelledBy),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.StringPtrFromPgtype(lastRefundReason),
		pgconv.StringPtrFromPgtype(refundRequestedBy),
		pgconv.TimePtrFromPgtype(refundedAt),
		retryCount,
		createdAt, updatedAt,
	), nil
}
