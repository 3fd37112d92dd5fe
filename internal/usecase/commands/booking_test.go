//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingFixture struct {
	store  *fakeBookingStore
	outbox *fakeOutbox
	txm    *fakeTxManager
	clock  *clock.MockClock
	cmds   commands.BookingCommands
}

func newBookingFixture(existing ...*booking.Booking) *bookingFixture {
	f := &bookingFixture{
		store:  newFakeBookingStore(existing...),
		outbox: &fakeOutbox{},
		txm:    &fakeTxManager{},
		clock:  clock.NewMockClock(builder.BaseTime),
	}
	f.cmds = commands.NewBookingCommands(f.store, f.outbox, f.txm, f.clock)
	return f
}

func validCreateParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		CustomerID:    uuid.New(),
		BookingType:   booking.TypeHomeMeasurement,
		Categories:    []booking.Category{booking.CategoryKitchen},
		CustomerName:  "Alice Archer",
		CustomerEmail: "alice@example.com",
		ScheduledDate: builder.BaseTime.Add(72 * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the booking and enqueues the created event", func(t *testing.T) {
		f := newBookingFixture()

		actual, err := f.cmds.CreateBooking(ctx, validCreateParams())
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, 1, f.store.creates)
		require.Len(t, f.outbox.events, 1)
		assert.Equal(t, commands.TopicBookingCreated, f.outbox.events[0].topic)

		event, ok := f.outbox.events[0].payload.(commands.BookingCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, actual.ID(), event.BookingID)
		assert.Equal(t, "alice@example.com", event.CustomerEmail)
		assert.False(t, event.RequiresMultiTeamNotification)
	})

	t.Run("validation failure never reaches the store", func(t *testing.T) {
		f := newBookingFixture()

		params := validCreateParams()
		params.Categories = nil

		_, err := f.cmds.CreateBooking(ctx, params)
		require.ErrorIs(t, err, booking.ErrNoCategories)
		require.ErrorIs(t, err, commands.ErrValidation)
		assert.Zero(t, f.store.creates)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("occupied slot is rejected before the insert", func(t *testing.T) {
		f := newBookingFixture()
		f.store.occupied = true

		_, err := f.cmds.CreateBooking(ctx, validCreateParams())
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Zero(t, f.store.creates)
	})

	t.Run("unique index violation during insert maps to slot conflict", func(t *testing.T) {
		f := newBookingFixture()
		f.store.createErr = wrapConflict("active slot taken")

		_, err := f.cmds.CreateBooking(ctx, validCreateParams())
		require.ErrorIs(t, err, commands.ErrSlotConflict)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Empty(t, f.outbox.events)
	})
}

func TestUpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("valid transition persists and emits", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		actual, err := f.cmds.UpdateStatus(ctx, existing.ID(), booking.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, actual.Status())
		assert.Equal(t, 1, f.store.updates)
		assert.Equal(t, []string{commands.TopicBookingStatusUpdated}, f.outbox.topics())
	})

	t.Run("cancellation must go through the cancel operation", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		_, err := f.cmds.UpdateStatus(ctx, existing.ID(), booking.StatusCancelled)
		require.ErrorIs(t, err, commands.ErrCancelViaStatus)
		assert.Zero(t, f.store.updates)
	})

	t.Run("illegal transition surfaces as conflict", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		_, err := f.cmds.UpdateStatus(ctx, existing.ID(), booking.StatusCompleted)
		require.ErrorIs(t, err, booking.ErrIllegalTransition)
		require.ErrorIs(t, err, commands.ErrConflict)
	})

	t.Run("unknown booking id", func(t *testing.T) {
		f := newBookingFixture()

		_, err := f.cmds.UpdateStatus(ctx, uuid.New(), booking.StatusConfirmed)
		require.ErrorIs(t, err, commands.ErrBookingNotFound)
		require.ErrorIs(t, err, commands.ErrNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels and emits with reason", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		actual, err := f.cmds.CancelBooking(ctx, existing.ID(), "customer request", "operator-1")
		require.NoError(t, err)
		assert.Equal(t, booking.StatusCancelled, actual.Status())

		require.Len(t, f.outbox.events, 1)
		event, ok := f.outbox.events[0].payload.(commands.BookingCancelledEvent)
		require.True(t, ok)
		assert.Equal(t, "customer request", event.Reason)
		assert.Equal(t, "operator-1", event.CancelledBy)
	})

	t.Run("window violation is a validation error", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)
		f.clock.Set(existing.ScheduledDate().Add(-time.Hour))

		_, err := f.cmds.CancelBooking(ctx, existing.ID(), "too late", "operator-1")
		require.ErrorIs(t, err, booking.ErrCancellationWindow)
		require.ErrorIs(t, err, commands.ErrValidation)
		assert.Zero(t, f.store.updates)
	})
}

func TestRescheduleBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedules with self-exclusion on the slot check", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		newDate := existing.ScheduledDate().Add(48 * time.Hour)
		actual, err := f.cmds.RescheduleBooking(ctx, existing.ID(), newDate)
		require.NoError(t, err)

		assert.Equal(t, newDate, actual.ScheduledDate())
		require.NotNil(t, f.store.lastExclude)
		assert.Equal(t, existing.ID(), *f.store.lastExclude)
		assert.Equal(t, []string{commands.TopicBookingRescheduled}, f.outbox.topics())
	})

	t.Run("past target date rejected", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		_, err := f.cmds.RescheduleBooking(ctx, existing.ID(), builder.BaseTime.Add(-time.Hour))
		require.ErrorIs(t, err, booking.ErrPastScheduledDate)
		require.ErrorIs(t, err, commands.ErrValidation)
	})

	t.Run("occupied target slot rejected", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)
		f.store.occupied = true

		_, err := f.cmds.RescheduleBooking(ctx, existing.ID(), existing.ScheduledDate().Add(24*time.Hour))
		require.ErrorIs(t, err, commands.ErrSlotUnavailable)
		assert.Zero(t, f.store.updates)
	})

	t.Run("write-time conflict maps to slot conflict", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)
		f.store.updateErr = wrapConflict("active slot taken")

		_, err := f.cmds.RescheduleBooking(ctx, existing.ID(), existing.ScheduledDate().Add(24*time.Hour))
		require.ErrorIs(t, err, commands.ErrSlotConflict)
	})
}

func TestSendReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues the reminder without touching the row", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)

		require.NoError(t, f.cmds.SendReminder(ctx, existing.ID()))
		assert.Zero(t, f.store.updates)
		require.Len(t, f.outbox.events, 1)
		assert.Equal(t, commands.TopicBookingReminderSent, f.outbox.events[0].topic)
	})

	t.Run("past booking rejected", func(t *testing.T) {
		existing := mustBooking(t, builder.NewBookingBuilder())
		f := newBookingFixture(existing)
		f.clock.Set(existing.ScheduledDate().Add(time.Minute))

		err := f.cmds.SendReminder(ctx, existing.ID())
		require.ErrorIs(t, err, booking.ErrPastBookingReminder)
		assert.Empty(t, f.outbox.events)
	})
}

func mustBooking(t *testing.T, b *builder.BookingBuilder) *booking.Booking {
	t.Helper()
	entity, err := b.BuildDomain()
	require.NoError(t, err)
	return entity
}
