package writestore

import (
	"context"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/pgconv"
	"furnish-admin/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingStore struct {
	db db.DBTX
}

func NewBookingStore(pool db.DBTX) *BookingStore {
	return &BookingStore{db: pool}
}

var _ commands.BookingStore = (*BookingStore)(nil)

const insertBookingSQL = `
INSERT INTO bookings (
    id, customer_id, booking_type, categories, status,
    customer_name, customer_email, customer_phone,
    scheduled_date, showroom_id, consultant_id, notes,
    confirmed_at, completed_at,
    cancellation_reason, cancelled_by, cancelled_at,
    previous_scheduled_date, rescheduled_at,
    created_at, updated_at
) VALUES (
    $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
    $13, $14, $15, $16, $17, $18, $19, $20, $21
)`

func (s *BookingStore) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	_, err := tx.Exec(ctx, insertBookingSQL, bookingArgs(b)...)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

const updateBookingSQL = `
UPDATE bookings SET
    status = $2,
    scheduled_date = $3,
    consultant_id = $4,
    confirmed_at = $5,
    completed_at = $6,
    cancellation_reason = $7,
    cancelled_by = $8,
    cancelled_at = $9,
    previous_scheduled_date = $10,
    rescheduled_at = $11,
    updated_at = $12
WHERE id = $1`

func (s *BookingStore) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	var reason, cancelledBy pgtype.Text
	if c := b.Cancellation(); c != nil {
		reason = pgconv.StringToPgtype(c.Reason())
		cancelledBy = pgconv.StringToPgtype(c.CancelledBy())
	}

	tag, err := tx.Exec(ctx, updateBookingSQL,
		b.ID(),
		b.Status().String(),
		b.ScheduledDate(),
		pgconv.UUIDPtrToPgtype(b.ConsultantID()),
		pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		pgconv.TimePtrToPgtype(b.CompletedAt()),
		reason,
		cancelledBy,
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimePtrToPgtype(b.PreviousScheduledDate()),
		pgconv.TimePtrToPgtype(b.RescheduledAt()),
		b.UpdatedAt(),
	)
	if err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr("slot already taken", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

const selectBookingSQL = `
SELECT id, customer_id, booking_type, categories, status,
       customer_name, customer_email, customer_phone,
       scheduled_date, showroom_id, consultant_id, notes,
       confirmed_at, completed_at,
       cancellation_reason, cancelled_by, cancelled_at,
       previous_scheduled_date, rescheduled_at,
       created_at, updated_at
FROM bookings
WHERE id = $1`

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := s.db.QueryRow(ctx, selectBookingSQL, id)
	entity, err := scanBooking(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	return entity, nil
}

const existsActiveAtSlotSQL = `
SELECT EXISTS (
    SELECT 1 FROM bookings
    WHERE scheduled_date = $1
      AND booking_type = $2
      AND showroom_id IS NOT DISTINCT FROM $3
      AND status IN ('pending', 'confirmed')
      AND ($4::uuid IS NULL OR id <> $4)
)`

func (s *BookingStore) ExistsActiveAtSlot(ctx context.Context, scheduledDate time.Time, bookingType booking.Type, showroomID, excludeBookingID *uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, existsActiveAtSlotSQL,
		scheduledDate,
		bookingType.String(),
		pgconv.UUIDPtrToPgtype(showroomID),
		pgconv.UUIDPtrToPgtype(excludeBookingID),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot occupancy", err)
	}
	return exists, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*booking.Booking, error) {
	var (
		id, customerID        uuid.UUID
		bookingType, status   string
		categories            []string
		name, email, phone    string
		scheduledDate         time.Time
		showroomID            pgtype.UUID
		consultantID          pgtype.UUID
		notes                 string
		confirmedAt           pgtype.Timestamptz
		completedAt           pgtype.Timestamptz
		cancellationReason    pgtype.Text
		cancelledBy           pgtype.Text
		cancelledAt           pgtype.Timestamptz
		previousScheduledDate pgtype.Timestamptz
		rescheduledAt         pgtype.Timestamptz
		createdAt, updatedAt  time.Time
	)

	err := row.Scan(
		&id, &customerID, &bookingType, &categories, &status,
		&name, &email, &phone,
		&scheduledDate, &showroomID, &consultantID, &notes,
		&confirmedAt, &completedAt,
		&cancellationReason, &cancelledBy, &cancelledAt,
		&previousScheduledDate, &rescheduledAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	domainCategories := make([]booking.Category, len(categories))
	for i, c := range categories {
		domainCategories[i] = booking.Category(c)
	}

	return booking.Reconstruct(
		id, customerID,
		booking.Type(bookingType),
		domainCategories,
		booking.Status(status),
		scheduledDate,
		pgconv.UUIDPtrFromPgtype(showroomID),
		pgconv.UUIDPtrFromPgtype(consultantID),
		booking.ReconstructCustomerDetails(name, email, phone),
		notes,
		pgconv.TimePtrFromPgtype(confirmedAt),
		pgconv.TimePtrFromPgtype(completedAt),
		pgconv.StringPtrFromPgtype(cancellationReason),
		pgconv.StringPtrFromPgtype(cancelledBy),
		pgconv.TimePtrFromPgtype(cancelledAt),
		pgconv.TimePtrFromPgtype(previousScheduledDate),
		pgconv.TimePtrFromPgtype(rescheduledAt),
		createdAt, updatedAt,
	), nil
}

func bookingArgs(b *booking.Booking) []any {
	categories := make([]string, len(b.Categories()))
	for i, c := range b.Categories() {
		categories[i] = c.String()
	}

	var reason, cancelledBy pgtype.Text
	if c := b.Cancellation(); c != nil {
		reason = pgconv.StringToPgtype(c.Reason())
		cancelledBy = pgconv.StringToPgtype(c.CancelledBy())
	}

	return []any{
		b.ID(),
		b.CustomerID(),
		b.BookingType().String(),
		categories,
		b.Status().String(),
		b.Customer().Name(),
		b.Customer().Email(),
		b.Customer().Phone(),
		b.ScheduledDate(),
		pgconv.UUIDPtrToPgtype(b.ShowroomID()),
		pgconv.UUIDPtrToPgtype(b.ConsultantID()),
		b.Notes(),
		pgconv.TimePtrToPgtype(b.ConfirmedAt()),
		pgconv.TimePtrToPgtype(b.CompletedAt()),
		reason,
		cancelledBy,
		pgconv.TimePtrToPgtype(b.CancelledAt()),
		pgconv.TimePtrToPgtype(b.PreviousScheduledDate()),
		pgconv.TimePtrToPgtype(b.RescheduledAt()),
		b.CreatedAt(),
		b.UpdatedAt(),
	}
}
