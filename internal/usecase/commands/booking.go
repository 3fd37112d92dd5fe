package commands

import (
	"context"
	"errors"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	CustomerID    uuid.UUID
	BookingType   booking.Type
	Categories    []booking.Category
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ScheduledDate time.Time
	ShowroomID    *uuid.UUID
	Notes         string
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus booking.Status) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID uuid.UUID, reason, cancelledBy string) (*booking.Booking, error)
	RescheduleBooking(ctx context.Context, bookingID uuid.UUID, newDate time.Time) (*booking.Booking, error)
	SendReminder(ctx context.Context, bookingID uuid.UUID) error
}

type bookingCommandsImpl struct {
	bookingStore BookingStore
	outbox       OutboxStore
	txm          TxManager
	clock        clock.Clock
}

func NewBookingCommands(
	bookingStore BookingStore,
	outbox OutboxStore,
	txm TxManager,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookingStore: bookingStore,
		outbox:       outbox,
		txm:          txm,
		clock:        clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*booking.Booking, error) {
	customer, err := booking.NewCustomerDetails(params.CustomerName, params.CustomerEmail, params.CustomerPhone)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	entity, err := booking.NewBooking(
		params.CustomerID,
		params.BookingType,
		params.Categories,
		customer,
		params.ScheduledDate,
		params.ShowroomID,
		params.Notes,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	occupied, err := c.bookingStore.ExistsActiveAtSlot(ctx, entity.ScheduledDate(), entity.BookingType(), entity.ShowroomID(), nil)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if occupied {
		return nil, errs.Mark(ErrSlotUnavailable, ErrConflict)
	}

	err = c.withinTx(ctx, func(tx db.DBTX) error {
		if createErr := c.bookingStore.Create(ctx, tx, entity); createErr != nil {
			// The partial unique index over active slots is the real
			// arbiter; a concurrent create can win between our check and
			// this insert.
			if infra.IsKind(createErr, infra.KindConflict) {
				return errs.Mark(ErrSlotConflict, ErrConflict)
			}
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}

		return c.outbox.Enqueue(ctx, tx, TopicBookingCreated, BookingCreatedEvent{
			BookingID:                     entity.ID(),
			BookingType:                   entity.BookingType().String(),
			Categories:                    categoryStrings(entity.Categories()),
			ScheduledDate:                 entity.ScheduledDate(),
			CustomerEmail:                 entity.Customer().Email(),
			RequiresMultiTeamNotification: entity.RequiresMultiTeamNotification(),
		})
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *bookingCommandsImpl) UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus booking.Status) (*booking.Booking, error) {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if newStatus == booking.StatusCancelled {
		return nil, errs.Mark(ErrCancelViaStatus, ErrValidation)
	}

	previous := entity.Status()
	if err := entity.TransitionTo(newStatus, c.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrConflict)
	}

	err = c.withinTx(ctx, func(tx db.DBTX) error {
		if updateErr := c.bookingStore.Update(ctx, tx, entity); updateErr != nil {
			return errs.Mark(updateErr, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicBookingStatusUpdated, BookingStatusUpdatedEvent{
			BookingID:      entity.ID(),
			PreviousStatus: previous.String(),
			NewStatus:      entity.Status().String(),
		})
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID uuid.UUID, reason, cancelledBy string) (*booking.Booking, error) {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := entity.Cancel(reason, cancelledBy, c.clock.Now()); err != nil {
		return nil, classifyBookingErr(err)
	}

	err = c.withinTx(ctx, func(tx db.DBTX) error {
		if updateErr := c.bookingStore.Update(ctx, tx, entity); updateErr != nil {
			return errs.Mark(updateErr, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicBookingCancelled, BookingCancelledEvent{
			BookingID:   entity.ID(),
			Reason:      reason,
			CancelledBy: cancelledBy,
		})
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *bookingCommandsImpl) RescheduleBooking(ctx context.Context, bookingID uuid.UUID, newDate time.Time) (*booking.Booking, error) {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !newDate.After(c.clock.Now()) {
		return nil, errs.Mark(booking.ErrPastScheduledDate, ErrValidation)
	}

	// Self-exclusion: keeping the same slot is not a conflict.
	selfID := entity.ID()
	occupied, err := c.bookingStore.ExistsActiveAtSlot(ctx, newDate, entity.BookingType(), entity.ShowroomID(), &selfID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if occupied {
		return nil, errs.Mark(ErrSlotUnavailable, ErrConflict)
	}

	previousDate := entity.ScheduledDate()
	if err := entity.Reschedule(newDate, c.clock.Now()); err != nil {
		return nil, classifyBookingErr(err)
	}

	err = c.withinTx(ctx, func(tx db.DBTX) error {
		if updateErr := c.bookingStore.Update(ctx, tx, entity); updateErr != nil {
			if infra.IsKind(updateErr, infra.KindConflict) {
				return errs.Mark(ErrSlotConflict, ErrConflict)
			}
			return errs.Mark(updateErr, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicBookingRescheduled, BookingRescheduledEvent{
			BookingID:    entity.ID(),
			PreviousDate: previousDate,
			NewDate:      newDate,
		})
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *bookingCommandsImpl) SendReminder(ctx context.Context, bookingID uuid.UUID) error {
	entity, err := c.findBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := entity.ValidateReminder(c.clock.Now()); err != nil {
		return errs.Mark(err, ErrValidation)
	}

	// Reminder is pure event emission; the booking row is untouched.
	return c.withinTx(ctx, func(tx db.DBTX) error {
		return c.outbox.Enqueue(ctx, tx, TopicBookingReminderSent, BookingReminderEvent{
			BookingID:     entity.ID(),
			CustomerEmail: entity.Customer().Email(),
			ScheduledDate: entity.ScheduledDate(),
		})
	})
}

func (c *bookingCommandsImpl) findBooking(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	entity, err := c.bookingStore.FindByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrBookingNotFound, ErrNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func classifyBookingErr(err error) error {
	if errors.Is(err, booking.ErrIllegalTransition) {
		return errs.Mark(err, ErrConflict)
	}
	return errs.Mark(err, ErrValidation)
}

func categoryStrings(categories []booking.Category) []string {
	out := make([]string, len(categories))
	for i, c := range categories {
		out[i] = c.String()
	}
	return out
}

func (c *bookingCommandsImpl) withinTx(ctx context.Context, fn func(tx db.DBTX) error) error {
	return c.txm.Within(ctx, fn)
}
