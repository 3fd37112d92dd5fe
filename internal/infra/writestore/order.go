package writestore

import (
	"context"

	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

// OrderStore touches only the payment outcome slice of the orders table; the
// rest of the order lifecycle is managed elsewhere.
type OrderStore struct {
	db db.DBTX
}

func NewOrderStore(pool db.DBTX) *OrderStore {
	return &OrderStore{db: pool}
}

var _ commands.OrderStore = (*OrderStore)(nil)

const selectOrderSQL = `
SELECT id, total, currency, status, payment_status
FROM orders
WHERE id = $1`

func (s *OrderStore) FindByID(ctx context.Context, id uuid.UUID) (*commands.OrderSnapshot, error) {
	var snap commands.OrderSnapshot
	err := s.db.QueryRow(ctx, selectOrderSQL, id).Scan(
		&snap.ID, &snap.Total, &snap.Currency, &snap.Status, &snap.PaymentStatus,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return &snap, nil
}

const updateOrderPaymentResultSQL = `
UPDATE orders SET status = $2, payment_status = $3, updated_at = now()
WHERE id = $1`

func (s *OrderStore) UpdatePaymentResult(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status, paymentStatus string) error {
	tag, err := tx.Exec(ctx, updateOrderPaymentResultSQL, orderID, status, paymentStatus)
	if err != nil {
		return infra.WrapRepoErr("failed to update order payment result", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return nil
}
