package queries

import (
	"time"

	"github.com/google/uuid"
)

// BookingView represents read-optimized booking data
type BookingView struct {
	ID                    uuid.UUID  `json:"id"`
	CustomerID            uuid.UUID  `json:"customer_id"`
	BookingType           string     `json:"booking_type"`
	Categories            []string   `json:"categories"`
	Status                string     `json:"status"`
	CustomerName          string     `json:"customer_name"`
	CustomerEmail         string     `json:"customer_email"`
	CustomerPhone         *string    `json:"customer_phone,omitempty"`
	ScheduledDate         time.Time  `json:"scheduled_date"`
	ShowroomID            *uuid.UUID `json:"showroom_id,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	PreviousScheduledDate *time.Time `json:"previous_scheduled_date,omitempty"`
	RescheduledAt         *time.Time `json:"rescheduled_at,omitempty"`
	CancellationReason    *string    `json:"cancellation_reason,omitempty"`
	CancelledBy           *string    `json:"cancelled_by,omitempty"`
	CancelledAt           *time.Time `json:"cancelled_at,omitempty"`
	ConfirmedAt           *time.Time `json:"confirmed_at,omitempty"`
	CompletedAt           *time.Time `json:"completed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID            uuid.UUID `json:"id"`
	BookingType   string    `json:"booking_type"`
	Status        string    `json:"status"`
	CustomerName  string    `json:"customer_name"`
	ScheduledDate time.Time `json:"scheduled_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// PaymentView represents read-optimized payment data
type PaymentView struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"order_id"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	GatewayIntentID string     `json:"gateway_intent_id"`
	RefundedAmount  float64    `json:"refunded_amount"`
	ReceiptURL      *string    `json:"receipt_url,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	FailureReason   *string    `json:"failure_reason,omitempty"`
	FailedAt        *time.Time `json:"failed_at,omitempty"`
	RefundedAt      *time.Time `json:"refunded_at,omitempty"`
	RetryCount      int32      `json:"retry_count"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SlotView is one candidate time in a day's availability listing.
type SlotView struct {
	Time         time.Time  `json:"time"`
	Available    bool       `json:"available"`
	BookingID    *uuid.UUID `json:"booking_id,omitempty"`
	ShowroomID   *uuid.UUID `json:"showroom_id,omitempty"`
	ConsultantID *uuid.UUID `json:"consultant_id,omitempty"`
}
