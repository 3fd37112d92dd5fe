package queries

import (
	"context"

	"github.com/google/uuid"
)

type PaymentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]*PaymentView, error)
}

type PaymentQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	repo PaymentViewRepo
}

func NewPaymentQueries(repo PaymentViewRepo) PaymentQueries {
	return &paymentQueriesImpl{repo: repo}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PaymentView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *paymentQueriesImpl) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*PaymentView, error) {
	return q.repo.FindByOrderID(ctx, orderID)
}
