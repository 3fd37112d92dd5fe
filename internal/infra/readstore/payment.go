package readstore

import (
	"context"

	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(pool db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: pool}
}

var _ queries.PaymentViewRepo = (*PaymentReadStore)(nil)

const selectPaymentViewSQL = `
SELECT id, order_id, amount, currency, method, status,
       gateway_intent_id, refunded_amount,
       receipt_url, paid_at, failure_reason, failed_at, refunded_at,
       retry_count, created_at, updated_at
FROM payments
WHERE `

func (s *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	row := s.db.QueryRow(ctx, selectPaymentViewSQL+"id = $1", id)
	view, err := scanPaymentView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return view, nil
}

func (s *PaymentReadStore) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*queries.PaymentView, error) {
	rows, err := s.db.Query(ctx, selectPaymentViewSQL+"order_id = $1 ORDER BY created_at", orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments by order", err)
	}
	defer rows.Close()

	var views []*queries.PaymentView
	for rows.Next() {
		view, err := scanPaymentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read payment rows", err)
	}
	return views, nil
}

func scanPaymentView(row pgx.Row) (*queries.PaymentView, error) {
	var (
		view          queries.PaymentView
		receiptURL    pgtype.Text
		paidAt        pgtype.Timestamptz
		failureReason pgtype.Text
		failedAt      pgtype.Timestamptz
		refundedAt    pgtype.Timestamptz
	)

	err := row.Scan(
		&view.ID, &view.OrderID, &view.Amount, &view.Currency, &view.Method, &view.Status,
		&view.GatewayIntentID, &view.RefundedAmount,
		&receiptURL, &paidAt, &failureReason, &failedAt, &refundedAt,
		&view.RetryCount, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.ReceiptURL = pgconv.StringPtrFromPgtype(receiptURL)
	view.PaidAt = pgconv.TimePtrFromPgtype(paidAt)
	view.FailureReason = pgconv.StringPtrFromPgtype(failureReason)
	view.FailedAt = pgconv.TimePtrFromPgtype(failedAt)
	view.RefundedAt = pgconv.TimePtrFromPgtype(refundedAt)
	return &view, nil
}
