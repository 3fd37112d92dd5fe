package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoCategories        = errors.New("at least one category must be selected")
	ErrInvalidCategory     = errors.New("invalid booking category")
	ErrInvalidType         = errors.New("invalid booking type")
	ErrShowroomRequired    = errors.New("Showroom ID is required for showroom bookings")
	ErrShowroomNotAllowed  = errors.New("showroom ID is only valid for showroom bookings")
	ErrPastScheduledDate   = errors.New("scheduled date cannot be in the past")
	ErrIllegalTransition   = errors.New("illegal booking status transition")
	ErrMissingCancelReason = errors.New("cancellation reason is required")
	ErrCancellationWindow  = errors.New("bookings can only be cancelled at least 24 hours in advance")
	ErrPastBookingReminder = errors.New("cannot send reminder for past booking")
)

// CancellationWindow is the minimum notice for cancelling a booking.
const CancellationWindow = 24 * time.Hour

type Booking struct {
	id            uuid.UUID
	customerID    uuid.UUID
	bookingType   Type
	categories    []Category
	status        Status
	scheduledDate time.Time
	showroomID    *uuid.UUID
	consultantID  *uuid.UUID
	customer      CustomerDetails
	notes         string

	confirmedAt *time.Time
	completedAt *time.Time

	cancellation *Cancellation
	cancelledAt  *time.Time

	previousScheduledDate *time.Time
	rescheduledAt         *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewBooking runs every creation-time validation before any persistence can
// happen. Slot availability is checked by the caller against the store.
func NewBooking(
	customerID uuid.UUID,
	bookingType Type,
	categories []Category,
	customer CustomerDetails,
	scheduledDate time.Time,
	showroomID *uuid.UUID,
	notes string,
	now time.Time,
) (*Booking, error) {
	if !bookingType.IsValid() {
		return nil, ErrInvalidType
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}
	seen := make(map[Category]struct{}, len(categories))
	deduped := make([]Category, 0, len(categories))
	for _, c := range categories {
		if !c.IsValid() {
			return nil, ErrInvalidCategory
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		deduped = append(deduped, c)
	}
	if bookingType == TypeShowroom && showroomID == nil {
		return nil, ErrShowroomRequired
	}
	if bookingType != TypeShowroom && showroomID != nil {
		return nil, ErrShowroomNotAllowed
	}
	if !scheduledDate.After(now) {
		return nil, ErrPastScheduledDate
	}

	b := &Booking{
		id:            uuid.New(),
		customerID:    customerID,
		bookingType:   bookingType,
		categories:    deduped,
		status:        bookingType.InitialStatus(),
		scheduledDate: scheduledDate,
		showroomID:    showroomID,
		customer:      customer,
		notes:         notes,
		createdAt:     now,
		updatedAt:     now,
	}
	if b.status == StatusConfirmed {
		b.confirmedAt = &now
	}
	return b, nil
}

func Reconstruct(
	id, customerID uuid.UUID,
	bookingType Type,
	categories []Category,
	status Status,
	scheduledDate time.Time,
	showroomID, consultantID *uuid.UUID,
	customer CustomerDetails,
	notes string,
	confirmedAt, completedAt *time.Time,
	cancellationReason, cancelledBy *string,
	cancelledAt *time.Time,
	previousScheduledDate, rescheduledAt *time.Time,
	createdAt, updatedAt time.Time,
) *Booking {
	b := &Booking{
		id:                    id,
		customerID:            customerID,
		bookingType:           bookingType,
		categories:            categories,
		status:                status,
		scheduledDate:         scheduledDate,
		showroomID:            showroomID,
		consultantID:          consultantID,
		customer:              customer,
		notes:                 notes,
		confirmedAt:           confirmedAt,
		completedAt:           completedAt,
		cancelledAt:           cancelledAt,
		previousScheduledDate: previousScheduledDate,
		rescheduledAt:         rescheduledAt,
		createdAt:             createdAt,
		updatedAt:             updatedAt,
	}
	if cancellationReason != nil {
		by := ""
		if cancelledBy != nil {
			by = *cancelledBy
		}
		b.cancellation = &Cancellation{reason: *cancellationReason, cancelledBy: by}
	}
	return b
}

// TransitionTo moves the booking forward through the state machine and stamps
// the status-specific timestamp. Cancellation goes through Cancel, which
// also records its metadata.
func (b *Booking) TransitionTo(next Status, now time.Time) error {
	if !next.IsValid() || !b.status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}

	switch next {
	case StatusConfirmed:
		b.confirmedAt = &now
	case StatusCompleted:
		b.completedAt = &now
	case StatusCancelled:
		b.cancelledAt = &now
	}

	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(reason, cancelledBy string, now time.Time) error {
	if reason == "" {
		return ErrMissingCancelReason
	}
	if !b.status.CanTransitionTo(StatusCancelled) {
		return ErrIllegalTransition
	}
	if b.scheduledDate.Sub(now) < CancellationWindow {
		return ErrCancellationWindow
	}

	b.cancellation = &Cancellation{reason: reason, cancelledBy: cancelledBy}
	return b.TransitionTo(StatusCancelled, now)
}

func (b *Booking) Reschedule(newDate time.Time, now time.Time) error {
	if b.status.IsTerminal() {
		return ErrIllegalTransition
	}
	if !newDate.After(now) {
		return ErrPastScheduledDate
	}

	prev := b.scheduledDate
	b.previousScheduledDate = &prev
	b.scheduledDate = newDate
	b.rescheduledAt = &now
	b.updatedAt = now
	return nil
}

// ValidateReminder rejects reminders for bookings whose slot already passed.
// Reminders never mutate the booking.
func (b *Booking) ValidateReminder(now time.Time) error {
	if b.scheduledDate.Before(now) {
		return ErrPastBookingReminder
	}
	return nil
}

func (b *Booking) AssignConsultant(consultantID uuid.UUID, now time.Time) {
	b.consultantID = &consultantID
	b.updatedAt = now
}

// IsActive reports whether the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return !b.status.IsTerminal()
}

// RequiresMultiTeamNotification flags bookings spanning multiple product
// categories, which downstream notification fan-out cares about.
func (b *Booking) RequiresMultiTeamNotification() bool {
	return len(b.categories) > 1
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) CustomerID() uuid.UUID  { return b.customerID }
func (b *Booking) BookingType() Type      { return b.bookingType }
func (b *Booking) Categories() []Category { return b.categories }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) ScheduledDate() time.Time {
	return b.scheduledDate
}
func (b *Booking) ShowroomID() *uuid.UUID        { return b.showroomID }
func (b *Booking) ConsultantID() *uuid.UUID      { return b.consultantID }
func (b *Booking) Customer() CustomerDetails     { return b.customer }
func (b *Booking) Notes() string                 { return b.notes }
func (b *Booking) ConfirmedAt() *time.Time       { return b.confirmedAt }
func (b *Booking) CompletedAt() *time.Time       { return b.completedAt }
func (b *Booking) Cancellation() *Cancellation   { return b.cancellation }
func (b *Booking) CancelledAt() *time.Time       { return b.cancelledAt }
func (b *Booking) PreviousScheduledDate() *time.Time {
	return b.previousScheduledDate
}
func (b *Booking) RescheduledAt() *time.Time { return b.rescheduledAt }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
