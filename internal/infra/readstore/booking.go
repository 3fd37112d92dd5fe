package readstore

import (
	"context"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(pool db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: pool}
}

var (
	_ queries.BookingViewRepo      = (*BookingReadStore)(nil)
	_ queries.AvailabilityViewRepo = (*BookingReadStore)(nil)
)

const selectBookingViewSQL = `
SELECT id, customer_id, booking_type, categories, status,
       customer_name, customer_email, customer_phone,
       scheduled_date, showroom_id, notes,
       previous_scheduled_date, rescheduled_at,
       cancellation_reason, cancelled_by, cancelled_at,
       confirmed_at, completed_at,
       created_at, updated_at
FROM bookings
WHERE id = $1`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view                  queries.BookingView
		phone, notes          pgtype.Text
		showroomID            pgtype.UUID
		previousScheduledDate pgtype.Timestamptz
		rescheduledAt         pgtype.Timestamptz
		cancellationReason    pgtype.Text
		cancelledBy           pgtype.Text
		cancelledAt           pgtype.Timestamptz
		confirmedAt           pgtype.Timestamptz
		completedAt           pgtype.Timestamptz
	)

	err := s.db.QueryRow(ctx, selectBookingViewSQL, id).Scan(
		&view.ID, &view.CustomerID, &view.BookingType, &view.Categories, &view.Status,
		&view.CustomerName, &view.CustomerEmail, &phone,
		&view.ScheduledDate, &showroomID, &notes,
		&previousScheduledDate, &rescheduledAt,
		&cancellationReason, &cancelledBy, &cancelledAt,
		&confirmedAt, &completedAt,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	view.CustomerPhone = pgconv.StringPtrFromPgtype(phone)
	view.ShowroomID = pgconv.UUIDPtrFromPgtype(showroomID)
	view.Notes = pgconv.StringPtrFromPgtype(notes)
	view.PreviousScheduledDate = pgconv.TimePtrFromPgtype(previousScheduledDate)
	view.RescheduledAt = pgconv.TimePtrFromPgtype(rescheduledAt)
	view.CancellationReason = pgconv.StringPtrFromPgtype(cancellationReason)
	view.CancelledBy = pgconv.StringPtrFromPgtype(cancelledBy)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.ConfirmedAt = pgconv.TimePtrFromPgtype(confirmedAt)
	view.CompletedAt = pgconv.TimePtrFromPgtype(completedAt)
	return &view, nil
}

const listBookingsByCustomerSQL = `
SELECT id, booking_type, status, customer_name, scheduled_date, created_at
FROM bookings
WHERE customer_id = $1
ORDER BY scheduled_date DESC
LIMIT $2 OFFSET $3`

func (s *BookingReadStore) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, listBookingsByCustomerSQL, customerID, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by customer", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

const listBookingsScheduledBetweenSQL = `
SELECT id, booking_type, status, customer_name, scheduled_date, created_at
FROM bookings
WHERE scheduled_date >= $1 AND scheduled_date < $2
ORDER BY scheduled_date
LIMIT $3 OFFSET $4`

func (s *BookingReadStore) FindScheduledBetween(ctx context.Context, from, to time.Time, limit, offset int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, listBookingsScheduledBetweenSQL, from, to, limit, offset)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list scheduled bookings", err)
	}
	defer rows.Close()
	return scanBookingListItems(rows)
}

const findActiveAtSlotSQL = `
SELECT id, scheduled_date, showroom_id, consultant_id
FROM bookings
WHERE scheduled_date = $1
  AND booking_type = $2
  AND showroom_id IS NOT DISTINCT FROM $3
  AND status IN ('pending', 'confirmed')
  AND ($4::uuid IS NULL OR id <> $4)`

func (s *BookingReadStore) FindActiveAtSlot(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) ([]queries.OccupiedSlot, error) {
	rows, err := s.db.Query(ctx, findActiveAtSlotSQL,
		scheduledDate,
		bookingType.String(),
		pgconv.UUIDPtrToPgtype(showroomID),
		pgconv.UUIDPtrToPgtype(excludeBookingID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check slot occupancy", err)
	}
	defer rows.Close()
	return scanOccupiedSlots(rows)
}

const findActiveInRangeSQL = `
SELECT id, scheduled_date, showroom_id, consultant_id
FROM bookings
WHERE scheduled_date >= $1 AND scheduled_date < $2
  AND booking_type = $3
  AND ($4::uuid IS NULL OR showroom_id = $4)
  AND status IN ('pending', 'confirmed')
ORDER BY scheduled_date`

func (s *BookingReadStore) FindActiveInRange(ctx context.Context, from, to time.Time, bookingType booking.Type, showroomID *uuid.UUID) ([]queries.OccupiedSlot, error) {
	rows, err := s.db.Query(ctx, findActiveInRangeSQL,
		from, to,
		bookingType.String(),
		pgconv.UUIDPtrToPgtype(showroomID),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupied slots", err)
	}
	defer rows.Close()
	return scanOccupiedSlots(rows)
}

func scanBookingListItems(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*queries.BookingListItem, error) {
	var items []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.BookingType, &item.Status, &item.CustomerName, &item.ScheduledDate, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}
	return items, nil
}

func scanOccupiedSlots(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]queries.OccupiedSlot, error) {
	var slots []queries.OccupiedSlot
	for rows.Next() {
		var (
			slot         queries.OccupiedSlot
			showroomID   pgtype.UUID
			consultantID pgtype.UUID
		)
		if err := rows.Scan(&slot.BookingID, &slot.ScheduledDate, &showroomID, &consultantID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied slot", err)
		}
		slot.ShowroomID = pgconv.UUIDPtrFromPgtype(showroomID)
		slot.ConsultantID = pgconv.UUIDPtrFromPgtype(consultantID)
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied slots", err)
	}
	return slots, nil
}
