package commands

import (
	"time"

	"github.com/google/uuid"
)

// Event topics published through the outbox. Payload fields mirror what the
// notification and analytics consumers read.
const (
	TopicBookingCreated       = "booking.created"
	TopicBookingStatusUpdated = "booking.status.updated"
	TopicBookingCancelled     = "booking.cancelled"
	TopicBookingRescheduled   = "booking.rescheduled"
	TopicBookingReminderSent  = "booking.reminder.sent"

	TopicPaymentIntentCreated = "payment.intent.created"
	TopicPaymentSucceeded     = "payment.succeeded"
	TopicPaymentFailed        = "payment.failed"
	TopicPaymentCancelled     = "payment.cancelled"
	TopicPaymentRefunded      = "payment.refunded"
)

type BookingCreatedEvent struct {
	BookingID                     uuid.UUID `json:"bookingId"`
	BookingType                   string    `json:"type"`
	Categories                    []string  `json:"categories"`
	ScheduledDate                 time.Time `json:"scheduledDate"`
	CustomerEmail                 string    `json:"customerEmail"`
	RequiresMultiTeamNotification bool      `json:"requiresMultiTeamNotification"`
}

type BookingStatusUpdatedEvent struct {
	BookingID      uuid.UUID `json:"bookingId"`
	PreviousStatus string    `json:"previousStatus"`
	NewStatus      string    `json:"newStatus"`
}

type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"bookingId"`
	Reason      string    `json:"reason"`
	CancelledBy string    `json:"cancelledBy"`
}

type BookingRescheduledEvent struct {
	BookingID    uuid.UUID `json:"bookingId"`
	PreviousDate time.Time `json:"previousDate"`
	NewDate      time.Time `json:"newDate"`
}

type BookingReminderEvent struct {
	BookingID     uuid.UUID `json:"bookingId"`
	CustomerEmail string    `json:"customerEmail"`
	ScheduledDate time.Time `json:"scheduledDate"`
}

type PaymentIntentCreatedEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   uuid.UUID `json:"orderId"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
}

type PaymentSucceededEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   uuid.UUID `json:"orderId"`
	Amount    float64   `json:"amount"`
}

type PaymentFailedEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   uuid.UUID `json:"orderId"`
	Reason    string    `json:"reason"`
}

type PaymentCancelledEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   uuid.UUID `json:"orderId"`
	Reason    string    `json:"reason"`
}

type PaymentRefundedEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	OrderID   uuid.UUID `json:"orderId"`
	Amount    float64   `json:"amount"`
}
