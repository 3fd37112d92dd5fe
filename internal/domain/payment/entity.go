package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount          = errors.New("payment amount must be positive")
	ErrAlreadyCompleted       = errors.New("payment has already been completed")
	ErrCancelCompleted        = errors.New("cannot cancel a completed payment")
	ErrNotRefundable          = errors.New("can only refund paid payments")
	ErrInvalidRefundAmount    = errors.New("refund amount must be positive")
	ErrRefundExceedsAvailable = errors.New("Refund amount exceeds available amount")
	ErrRetryNotAllowed        = errors.New("only failed payments can be retried")
	ErrIllegalTransition      = errors.New("illegal payment status transition")
)

type Payment struct {
	id                  uuid.UUID
	orderID             uuid.UUID
	amount              float64
	currency            string
	method              string
	status              Status
	gatewayIntentID     string
	gatewayClientSecret string

	refundedAmount float64

	receiptURL    *string
	paidAt        *time.Time
	failureReason *string
	failedAt      *time.Time

	cancellationReason *string
	cancelledBy        *string
	cancelledAt        *time.Time

	lastRefundReason  *string
	refundRequestedBy *string
	refundedAt        *time.Time

	retryCount int

	createdAt time.Time
	updatedAt time.Time
}

// NewPayment records a freshly created gateway intent. The caller has
// already validated the amount against the order total; a Payment row never
// exists without a confirmed gateway intent behind it.
func NewPayment(
	orderID uuid.UUID,
	amount float64,
	currency, method string,
	gatewayIntentID, gatewayClientSecret string,
	now time.Time,
) (*Payment, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Payment{
		id:                  uuid.New(),
		orderID:             orderID,
		amount:              amount,
		currency:            currency,
		method:              method,
		status:              StatusPending,
		gatewayIntentID:     gatewayIntentID,
		gatewayClientSecret: gatewayClientSecret,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func Reconstruct(
	id, orderID uuid.UUID,
	amount float64,
	currency, method string,
	status Status,
	gatewayIntentID, gatewayClientSecret string,
	refundedAmount float64,
	receiptURL *string,
	paidAt *time.Time,
	failureReason *string,
	failedAt *time.Time,
	cancellationReason, cancelledBy *string,
	cancelledAt *time.Time,
	lastRefundReason, refundRequestedBy *string,
	refundedAt *time.Time,
	retryCount int,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:                  id,
		orderID:             orderID,
		amount:              amount,
		currency:            currency,
		method:              method,
		status:              status,
		gatewayIntentID:     gatewayIntentID,
		gatewayClientSecret: gatewayClientSecret,
		refundedAmount:      refundedAmount,
		receiptURL:          receiptURL,
		paidAt:              paidAt,
		failureReason:       failureReason,
		failedAt:            failedAt,
		cancellationReason:  cancellationReason,
		cancelledBy:         cancelledBy,
		cancelledAt:         cancelledAt,
		lastRefundReason:    lastRefundReason,
		refundRequestedBy:   refundRequestedBy,
		refundedAt:          refundedAt,
		retryCount:          retryCount,
		createdAt:           createdAt,
		updatedAt:           updatedAt,
	}
}

func (p *Payment) MarkProcessing(now time.Time) error {
	if !p.status.CanTransitionTo(StatusProcessing) {
		return ErrIllegalTransition
	}
	p.status = StatusProcessing
	p.updatedAt = now
	return nil
}

func (p *Payment) MarkPaid(receiptURL string, now time.Time) error {
	if !p.status.CanTransitionTo(StatusPaid) {
		return ErrIllegalTransition
	}
	p.status = StatusPaid
	if receiptURL != "" {
		p.receiptURL = &receiptURL
	}
	p.paidAt = &now
	p.updatedAt = now
	return nil
}

func (p *Payment) MarkFailed(reason string, now time.Time) error {
	if !p.status.CanTransitionTo(StatusFailed) {
		return ErrIllegalTransition
	}
	p.status = StatusFailed
	p.failureReason = &reason
	p.failedAt = &now
	p.updatedAt = now
	return nil
}

func (p *Payment) Cancel(reason, cancelledBy string, now time.Time) error {
	if !p.status.CanTransitionTo(StatusCancelled) {
		return ErrCancelCompleted
	}
	p.status = StatusCancelled
	p.cancellationReason = &reason
	p.cancelledBy = &cancelledBy
	p.cancelledAt = &now
	p.updatedAt = now
	return nil
}

// ApplyRefund accumulates a partial or full refund. The refunded total never
// exceeds the original amount.
func (p *Payment) ApplyRefund(amount float64, reason, requestedBy string, now time.Time) error {
	if p.status != StatusPaid && p.status != StatusPartiallyRefunded {
		return ErrNotRefundable
	}
	if amount <= 0 {
		return ErrInvalidRefundAmount
	}
	if amount > p.RemainingRefundable() {
		return ErrRefundExceedsAvailable
	}

	p.refundedAmount += amount
	if p.refundedAmount >= p.amount {
		p.status = StatusRefunded
	} else {
		p.status = StatusPartiallyRefunded
	}
	p.lastRefundReason = &reason
	p.refundRequestedBy = &requestedBy
	p.refundedAt = &now
	p.updatedAt = now
	return nil
}

// SetRefundedTotal reconciles the gateway's reported refunded total, as
// delivered by a charge.refunded webhook. Only a payment that has been paid
// can carry a refund; setting the same total twice is a no-op, which keeps
// replayed events harmless.
func (p *Payment) SetRefundedTotal(total float64, now time.Time) error {
	if p.status != StatusPaid && p.status != StatusPartiallyRefunded && p.status != StatusRefunded {
		return ErrNotRefundable
	}
	if total < 0 || total > p.amount {
		return ErrInvalidRefundAmount
	}
	if total == p.refundedAmount {
		return nil
	}

	p.refundedAmount = total
	if p.refundedAmount >= p.amount {
		p.status = StatusRefunded
	} else if p.refundedAmount > 0 {
		p.status = StatusPartiallyRefunded
	}
	p.refundedAt = &now
	p.updatedAt = now
	return nil
}

// ResetForRetry swaps in a fresh gateway intent after a failure.
func (p *Payment) ResetForRetry(gatewayIntentID, gatewayClientSecret string, now time.Time) error {
	if p.status != StatusFailed {
		return ErrRetryNotAllowed
	}
	p.status = StatusPending
	p.gatewayIntentID = gatewayIntentID
	p.gatewayClientSecret = gatewayClientSecret
	p.failureReason = nil
	p.failedAt = nil
	p.retryCount++
	p.updatedAt = now
	return nil
}

func (p *Payment) RemainingRefundable() float64 {
	return p.amount - p.refundedAmount
}

func (p *Payment) ID() uuid.UUID              { return p.id }
func (p *Payment) OrderID() uuid.UUID         { return p.orderID }
func (p *Payment) Amount() float64            { return p.amount }
func (p *Payment) Currency() string           { return p.currency }
func (p *Payment) Method() string             { return p.method }
func (p *Payment) Status() Status             { return p.status }
func (p *Payment) GatewayIntentID() string    { return p.gatewayIntentID }
func (p *Payment) GatewayClientSecret() string {
	return p.gatewayClientSecret
}
func (p *Payment) RefundedAmount() float64     { return p.refundedAmount }
func (p *Payment) ReceiptURL() *string         { return p.receiptURL }
func (p *Payment) PaidAt() *time.Time          { return p.paidAt }
func (p *Payment) FailureReason() *string      { return p.failureReason }
func (p *Payment) FailedAt() *time.Time        { return p.failedAt }
func (p *Payment) CancellationReason() *string { return p.cancellationReason }
func (p *Payment) CancelledBy() *string        { return p.cancelledBy }
func (p *Payment) CancelledAt() *time.Time     { return p.cancelledAt }
func (p *Payment) LastRefundReason() *string   { return p.lastRefundReason }
func (p *Payment) RefundRequestedBy() *string  { return p.refundRequestedBy }
func (p *Payment) RefundedAt() *time.Time      { return p.refundedAt }
func (p *Payment) RetryCount() int             { return p.retryCount }
func (p *Payment) CreatedAt() time.Time        { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time        { return p.updatedAt }
