package builder

import (
	"time"

	"furnish-admin/internal/domain/booking"

	"github.com/google/uuid"
)

// BaseTime is the pinned "now" for domain builders; scheduled dates default
// to three days later.
var BaseTime = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type BookingBuilder struct {
	customerID    uuid.UUID
	bookingType   booking.Type
	categories    []booking.Category
	customerName  string
	customerEmail string
	customerPhone string
	scheduledDate time.Time
	showroomID    *uuid.UUID
	notes         string
	now           time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		customerID:    uuid.New(),
		bookingType:   booking.TypeHomeMeasurement,
		categories:    []booking.Category{booking.CategoryKitchen},
		customerName:  "Alice Archer",
		customerEmail: "alice@example.com",
		customerPhone: "+44 20 7946 0123",
		scheduledDate: BaseTime.Add(72 * time.Hour),
		now:           BaseTime,
	}
}

func (b *BookingBuilder) WithType(t booking.Type) *BookingBuilder {
	b.bookingType = t
	return b
}

func (b *BookingBuilder) WithCategories(categories ...booking.Category) *BookingBuilder {
	b.categories = categories
	return b
}

func (b *BookingBuilder) WithCustomer(name, email, phone string) *BookingBuilder {
	b.customerName = name
	b.customerEmail = email
	b.customerPhone = phone
	return b
}

func (b *BookingBuilder) WithScheduledDate(t time.Time) *BookingBuilder {
	b.scheduledDate = t
	return b
}

func (b *BookingBuilder) WithShowroomID(id *uuid.UUID) *BookingBuilder {
	b.showroomID = id
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.notes = notes
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.now = now
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	customer, err := booking.NewCustomerDetails(b.customerName, b.customerEmail, b.customerPhone)
	if err != nil {
		return nil, err
	}
	return booking.NewBooking(
		b.customerID,
		b.bookingType,
		b.categories,
		customer,
		b.scheduledDate,
		b.showroomID,
		b.notes,
		b.now,
	)
}
