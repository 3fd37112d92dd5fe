package commands

import (
	"context"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/infra/db"

	"github.com/google/uuid"
)

type BookingStore interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	// ExistsActiveAtSlot reports whether an active booking occupies the exact
	// (scheduledDate, type, showroomID) tuple, optionally excluding one
	// booking id (self-exclusion during reschedule).
	ExistsActiveAtSlot(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) (bool, error)
}

type PaymentStore interface {
	Create(ctx context.Context, tx db.DBTX, p *payment.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error)
	// FindByGatewayIntentID is the webhook lookup path: the gateway only
	// knows its own intent id, never ours.
	FindByGatewayIntentID(ctx context.Context, gatewayIntentID string) (*payment.Payment, error)
	Update(ctx context.Context, tx db.DBTX, p *payment.Payment) error
}

// Order lifecycle lives outside this core; the coordinator only reads the
// total and flips the payment outcome fields.
type OrderSnapshot struct {
	ID            uuid.UUID
	Total         float64
	Currency      string
	Status        string
	PaymentStatus string
}

const (
	OrderStatusConfirmed   = "confirmed"
	OrderPaymentStatusPaid = "paid"
)

type OrderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderSnapshot, error)
	UpdatePaymentResult(ctx context.Context, tx db.DBTX, orderID uuid.UUID, status, paymentStatus string) error
}

// TxManager runs fn inside a single database transaction. Rollback on error,
// commit on nil.
type TxManager interface {
	Within(ctx context.Context, fn func(tx db.DBTX) error) error
}

// OutboxStore enqueues an event row inside the caller's transaction; the
// relay publishes it afterwards. Commands never talk to the broker directly.
type OutboxStore interface {
	Enqueue(ctx context.Context, tx db.DBTX, topic string, payload any) error
}

type IntentStatus string

const (
	IntentStatusSucceeded      IntentStatus = "succeeded"
	IntentStatusProcessing     IntentStatus = "processing"
	IntentStatusFailed         IntentStatus = "failed"
	IntentStatusRequiresAction IntentStatus = "requires_action"
)

type IntentSnapshot struct {
	ID             string
	ClientSecret   string
	Status         IntentStatus
	ReceiptURL     string
	FailureMessage string
}

type CreateIntentRequest struct {
	AmountMinor int64
	Currency    string
	Method      string
	OrderID     uuid.UUID
}

type RefundRequest struct {
	GatewayIntentID string
	AmountMinor     int64
	Reason          string
}

type RefundSnapshot struct {
	ID          string
	AmountMinor int64
}

type PaymentGateway interface {
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*IntentSnapshot, error)
	RetrieveIntent(ctx context.Context, gatewayIntentID string) (*IntentSnapshot, error)
	CancelIntent(ctx context.Context, gatewayIntentID string) error
	CreateRefund(ctx context.Context, req RefundRequest) (*RefundSnapshot, error)
}
