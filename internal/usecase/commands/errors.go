package commands

import (
	"furnish-admin/internal/pkg/errs"
)

// Error markers for categorization. Concrete causes stay on the chain so
// handlers can match both the marker (status code) and the domain sentinel
// (message).
var (
	ErrValidation              = errs.New("validation error")
	ErrConflict                = errs.New("conflict")
	ErrNotFound                = errs.New("not found")
	ErrGatewayUnavailable      = errs.New("payment gateway unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrOrderNotFound   = errs.New("order not found")
	ErrPaymentNotFound = errs.New("payment not found")

	// ErrSlotUnavailable is the pre-check rejection; ErrSlotConflict is the
	// same condition detected by the store's uniqueness constraint at write
	// time, after a concurrent insert won the slot.
	ErrSlotUnavailable = errs.New("Selected time slot is not available")
	ErrSlotConflict    = errs.New("Selected time slot is not available")

	ErrAmountMismatch   = errs.New("Payment amount does not match order total")
	ErrOrderAlreadyPaid = errs.New("order has already been paid")

	// updateStatus only moves bookings forward to confirmed/completed;
	// cancellation carries metadata and goes through its own operation.
	ErrCancelViaStatus = errs.New("cancellation requires a reason; use the cancel operation")
)
