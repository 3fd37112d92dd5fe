package queries

import (
	"context"
	"time"

	"furnish-admin/internal/domain/booking"

	"github.com/google/uuid"
)

// Operating hours for slot enumeration. Slots start on the hour; the last
// slot of the day begins at 18:00.
const (
	slotOpenHour  = 9
	slotCloseHour = 18
)

// OccupiedSlot is a read-side projection of an active booking holding a slot.
type OccupiedSlot struct {
	BookingID     uuid.UUID
	ScheduledDate time.Time
	ShowroomID    *uuid.UUID
	ConsultantID  *uuid.UUID
}

type AvailabilityViewRepo interface {
	// FindActiveAtSlot returns active bookings at the exact tuple; empty slice
	// when the slot is free.
	FindActiveAtSlot(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) ([]OccupiedSlot, error)
	// FindActiveInRange returns active bookings of the given type scheduled in
	// [from, to).
	FindActiveInRange(ctx context.Context, from, to time.Time, bookingType booking.Type, showroomID *uuid.UUID) ([]OccupiedSlot, error)
}

type AvailabilityQueries interface {
	IsAvailable(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) (bool, error)
	ListDaySlots(ctx context.Context, day time.Time, bookingType booking.Type, showroomID *uuid.UUID) ([]SlotView, error)
}

type availabilityQueriesImpl struct {
	repo AvailabilityViewRepo
}

func NewAvailabilityQueries(repo AvailabilityViewRepo) AvailabilityQueries {
	return &availabilityQueriesImpl{repo: repo}
}

func (q *availabilityQueriesImpl) IsAvailable(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) (bool, error) {
	occupied, err := q.repo.FindActiveAtSlot(ctx, scheduledDate, bookingType, showroomID, excludeBookingID)
	if err != nil {
		return false, err
	}
	return len(occupied) == 0, nil
}

func (q *availabilityQueriesImpl) ListDaySlots(ctx context.Context, day time.Time, bookingType booking.Type, showroomID *uuid.UUID) ([]SlotView, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), slotOpenHour, 0, 0, 0, day.Location())
	to := time.Date(day.Year(), day.Month(), day.Day(), slotCloseHour+1, 0, 0, 0, day.Location())

	occupied, err := q.repo.FindActiveInRange(ctx, from, to, bookingType, showroomID)
	if err != nil {
		return nil, err
	}

	// Key by the wall-clock hour in the day's location; truncating in absolute
	// time misses slots when the offset is not a whole hour.
	byTime := make(map[time.Time]OccupiedSlot, len(occupied))
	for _, o := range occupied {
		local := o.ScheduledDate.In(day.Location())
		key := time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, day.Location())
		byTime[key] = o
	}

	slots := make([]SlotView, 0, slotCloseHour-slotOpenHour+1)
	for t := from; t.Before(to); t = t.Add(time.Hour) {
		view := SlotView{Time: t, Available: true}
		if o, ok := byTime[t]; ok {
			bookingID := o.BookingID
			view.Available = false
			view.BookingID = &bookingID
			view.ShowroomID = o.ShowroomID
			view.ConsultantID = o.ConsultantID
		}
		slots = append(slots, view)
	}
	return slots, nil
}
