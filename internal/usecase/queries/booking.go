package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type BookingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*BookingListItem, error)
	FindScheduledBetween(ctx context.Context, from, to time.Time, limit, offset int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*BookingListItem, error)
	ListScheduledBetween(ctx context.Context, from, to time.Time, limit int) ([]*BookingListItem, error)
}

type bookingQueriesImpl struct {
	repo BookingViewRepo
}

func NewBookingQueries(repo BookingViewRepo) BookingQueries {
	return &bookingQueriesImpl{repo: repo}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *bookingQueriesImpl) ListByCustomer(ctx context.Context, customerID uuid.UUID, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindByCustomerID(ctx, customerID, int32(limit), 0)
}

func (q *bookingQueriesImpl) ListScheduledBetween(ctx context.Context, from, to time.Time, limit int) ([]*BookingListItem, error) {
	if limit <= 0 {
		limit = 50
	}
	return q.repo.FindScheduledBetween(ctx, from, to, int32(limit), 0)
}
