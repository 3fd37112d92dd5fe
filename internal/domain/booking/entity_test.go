//go:build unit

package booking_test

import (
	"testing"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, booking.TypeHomeMeasurement, actual.BookingType())
		assert.True(t, actual.IsActive())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	t.Run("category validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "empty categories rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithCategories() },
				errIs:  booking.ErrNoCategories,
			},
			{
				name:   "unknown category rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithCategories(booking.Category("garage")) },
				errIs:  booking.ErrInvalidCategory,
			},
			{
				name: "multiple categories accepted",
				mutate: func(b *builder.BookingBuilder) {
					b.WithCategories(booking.CategoryKitchen, booking.CategoryBedroom)
				},
			},
		})
	})

	t.Run("duplicate categories are deduplicated", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().
			WithCategories(booking.CategoryKitchen, booking.CategoryKitchen, booking.CategoryOffice).
			BuildDomain()
		require.NoError(t, err)

		assert.Equal(t, []booking.Category{booking.CategoryKitchen, booking.CategoryOffice}, actual.Categories())
	})

	t.Run("showroom rules", func(t *testing.T) {
		showroomID := uuid.New()
		runCases(t, []testCase{
			{
				name: "showroom booking without showroom id rejected",
				mutate: func(b *builder.BookingBuilder) {
					b.WithType(booking.TypeShowroom)
				},
				errIs: booking.ErrShowroomRequired,
			},
			{
				name: "showroom booking with showroom id accepted",
				mutate: func(b *builder.BookingBuilder) {
					b.WithType(booking.TypeShowroom).WithShowroomID(&showroomID)
				},
			},
			{
				name: "showroom id on home measurement rejected",
				mutate: func(b *builder.BookingBuilder) {
					b.WithShowroomID(&showroomID)
				},
				errIs: booking.ErrShowroomNotAllowed,
			},
		})
	})

	t.Run("scheduled date must be in the future", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name: "past date rejected",
				mutate: func(b *builder.BookingBuilder) {
					b.WithScheduledDate(builder.BaseTime.Add(-time.Hour))
				},
				errIs: booking.ErrPastScheduledDate,
			},
			{
				name: "exact now rejected",
				mutate: func(b *builder.BookingBuilder) {
					b.WithScheduledDate(builder.BaseTime)
				},
				errIs: booking.ErrPastScheduledDate,
			},
		})
	})

	t.Run("customer details validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing name rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithCustomer("  ", "a@example.com", "") },
				errIs:  booking.ErrMissingCustomerName,
			},
			{
				name:   "missing email rejected",
				mutate: func(b *builder.BookingBuilder) { b.WithCustomer("Alice", "", "") },
				errIs:  booking.ErrMissingCustomerEmail,
			},
		})
	})

	t.Run("auto-confirm policy", func(t *testing.T) {
		showroomID := uuid.New()

		online, err := builder.NewBookingBuilder().WithType(booking.TypeOnline).BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, online.Status())
		require.NotNil(t, online.ConfirmedAt())
		assert.Equal(t, online.CreatedAt(), *online.ConfirmedAt())

		showroom, err := builder.NewBookingBuilder().
			WithType(booking.TypeShowroom).WithShowroomID(&showroomID).
			BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusConfirmed, showroom.Status())
		require.NotNil(t, showroom.ConfirmedAt())

		home, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, home.Status())
		assert.Nil(t, home.ConfirmedAt())
	})
}

func TestBookingTransitions(t *testing.T) {
	now := builder.BaseTime.Add(time.Hour)

	t.Run("pending to confirmed stamps confirmed_at", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.TransitionTo(booking.StatusConfirmed, now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		require.NotNil(t, b.ConfirmedAt())
		assert.Equal(t, now, *b.ConfirmedAt())
	})

	t.Run("confirmed to completed stamps completed_at", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithType(booking.TypeOnline).BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.TransitionTo(booking.StatusCompleted, now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		require.NotNil(t, b.CompletedAt())
		assert.False(t, b.IsActive())
	})

	t.Run("pending cannot skip to completed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = b.TransitionTo(booking.StatusCompleted, now)
		require.ErrorIs(t, err, booking.ErrIllegalTransition)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("terminal states accept no transition", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().WithType(booking.TypeOnline).BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.TransitionTo(booking.StatusCompleted, now))

		err = b.TransitionTo(booking.StatusConfirmed, now)
		require.ErrorIs(t, err, booking.ErrIllegalTransition)
	})
}

func TestBookingCancel(t *testing.T) {
	t.Run("records reason, actor and timestamp", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		now := builder.BaseTime.Add(time.Hour)
		require.NoError(t, b.Cancel("customer request", "operator-1", now))

		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.Cancellation())
		assert.Equal(t, "customer request", b.Cancellation().Reason())
		assert.Equal(t, "operator-1", b.Cancellation().CancelledBy())
		require.NotNil(t, b.CancelledAt())
		assert.Equal(t, now, *b.CancelledAt())
	})

	t.Run("reason is required", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = b.Cancel("", "operator-1", builder.BaseTime.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrMissingCancelReason)
	})

	t.Run("rejects cancellation within 24 hours of the slot", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		tooLate := b.ScheduledDate().Add(-23 * time.Hour)
		err = b.Cancel("customer request", "operator-1", tooLate)
		require.ErrorIs(t, err, booking.ErrCancellationWindow)
		assert.Equal(t, booking.StatusPending, b.Status())
	})

	t.Run("exactly 24 hours before the slot is allowed", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		onTheLine := b.ScheduledDate().Add(-booking.CancellationWindow)
		require.NoError(t, b.Cancel("customer request", "operator-1", onTheLine))
	})

	t.Run("cancelling a cancelled booking is rejected", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Cancel("first", "operator-1", builder.BaseTime.Add(time.Hour)))

		err = b.Cancel("second", "operator-1", builder.BaseTime.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrIllegalTransition)
	})
}

func TestBookingReschedule(t *testing.T) {
	t.Run("records previous date and reschedule time", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		original := b.ScheduledDate()
		now := builder.BaseTime.Add(time.Hour)
		newDate := original.Add(48 * time.Hour)

		require.NoError(t, b.Reschedule(newDate, now))
		assert.Equal(t, newDate, b.ScheduledDate())
		require.NotNil(t, b.PreviousScheduledDate())
		assert.Equal(t, original, *b.PreviousScheduledDate())
		require.NotNil(t, b.RescheduledAt())
	})

	t.Run("rejects past target date", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		now := builder.BaseTime.Add(time.Hour)
		err = b.Reschedule(now.Add(-time.Minute), now)
		require.ErrorIs(t, err, booking.ErrPastScheduledDate)
	})

	t.Run("rejects terminal booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NoError(t, b.Cancel("done", "operator-1", builder.BaseTime.Add(time.Hour)))

		err = b.Reschedule(builder.BaseTime.Add(100*time.Hour), builder.BaseTime.Add(time.Hour))
		require.ErrorIs(t, err, booking.ErrIllegalTransition)
	})
}

func TestBookingReminder(t *testing.T) {
	t.Run("rejects reminder for past booking", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		err = b.ValidateReminder(b.ScheduledDate().Add(time.Minute))
		require.ErrorIs(t, err, booking.ErrPastBookingReminder)
	})

	t.Run("allows reminder before the slot", func(t *testing.T) {
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, b.ValidateReminder(b.ScheduledDate().Add(-time.Hour)))
	})
}

func TestMultiTeamNotification(t *testing.T) {
	single, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	assert.False(t, single.RequiresMultiTeamNotification())

	multi, err := builder.NewBookingBuilder().
		WithCategories(booking.CategoryKitchen, booking.CategoryWardrobe).
		BuildDomain()
	require.NoError(t, err)
	assert.True(t, multi.RequiresMultiTeamNotification())
}
