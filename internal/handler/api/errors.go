package api

import (
	"errors"
	"net/http"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/handler/httperr"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/pkg/errs"
	"furnish-admin/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// notFoundToSentinel normalizes read-side repository errors to the command
// sentinel so both paths map to the same response.
func notFoundToSentinel(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(sentinel, commands.ErrNotFound)
	}
	return err
}

// commandErrorMap resolves known sentinels to HTTP statuses. Order matters:
// specific sentinels come before the broad markers, and the sentinel message
// is the response message.
var commandErrorMap = []struct {
	target error
	status int
}{
	{commands.ErrSlotConflict, http.StatusConflict},
	{commands.ErrSlotUnavailable, http.StatusBadRequest},
	{commands.ErrOrderAlreadyPaid, http.StatusConflict},
	{commands.ErrAmountMismatch, http.StatusBadRequest},
	{commands.ErrCancelViaStatus, http.StatusBadRequest},
	{commands.ErrBookingNotFound, http.StatusNotFound},
	{commands.ErrOrderNotFound, http.StatusNotFound},
	{commands.ErrPaymentNotFound, http.StatusNotFound},

	{booking.ErrNoCategories, http.StatusBadRequest},
	{booking.ErrInvalidCategory, http.StatusBadRequest},
	{booking.ErrInvalidType, http.StatusBadRequest},
	{booking.ErrShowroomRequired, http.StatusBadRequest},
	{booking.ErrShowroomNotAllowed, http.StatusBadRequest},
	{booking.ErrPastScheduledDate, http.StatusBadRequest},
	{booking.ErrMissingCancelReason, http.StatusBadRequest},
	{booking.ErrCancellationWindow, http.StatusBadRequest},
	{booking.ErrPastBookingReminder, http.StatusBadRequest},
	{booking.ErrMissingCustomerName, http.StatusBadRequest},
	{booking.ErrMissingCustomerEmail, http.StatusBadRequest},
	{booking.ErrIllegalTransition, http.StatusConflict},

	{payment.ErrAlreadyCompleted, http.StatusConflict},
	{payment.ErrCancelCompleted, http.StatusConflict},
	{payment.ErrNotRefundable, http.StatusConflict},
	{payment.ErrRefundExceedsAvailable, http.StatusBadRequest},
	{payment.ErrInvalidRefundAmount, http.StatusBadRequest},
	{payment.ErrInvalidAmount, http.StatusBadRequest},
	{payment.ErrRetryNotAllowed, http.StatusConflict},
	{payment.ErrIllegalTransition, http.StatusConflict},
}

func respondCommandError(c *gin.Context, err error) {
	for _, entry := range commandErrorMap {
		if errors.Is(err, entry.target) {
			httperr.AbortWithError(c, entry.status, err, entry.target.Error(), nil)
			return
		}
	}

	switch {
	case errors.Is(err, commands.ErrNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Resource not found", nil)
	case errors.Is(err, commands.ErrValidation):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
	case errors.Is(err, commands.ErrConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Conflict", nil)
	case errors.Is(err, commands.ErrGatewayUnavailable):
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
