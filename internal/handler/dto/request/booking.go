package request

import (
	"time"

	"furnish-admin/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	CustomerID    uuid.UUID  `json:"customer_id" binding:"required"`
	BookingType   string     `json:"booking_type" binding:"required"`
	Categories    []string   `json:"categories"`
	CustomerName  string     `json:"customer_name" binding:"required"`
	CustomerEmail string     `json:"customer_email" binding:"required"`
	CustomerPhone string     `json:"customer_phone"`
	ScheduledDate time.Time  `json:"scheduled_date" binding:"required"`
	ShowroomID    *uuid.UUID `json:"showroom_id,omitempty"`
	Notes         string     `json:"notes"`
}

func (r CreateBookingRequest) DomainCategories() []booking.Category {
	categories := make([]booking.Category, len(r.Categories))
	for i, c := range r.Categories {
		categories[i] = booking.Category(c)
	}
	return categories
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelBookingRequest struct {
	Reason      string `json:"reason" binding:"required"`
	CancelledBy string `json:"cancelled_by"`
}

type RescheduleBookingRequest struct {
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

type ListSlotsRequest struct {
	Day         time.Time  `form:"day" time_format:"2006-01-02" binding:"required"`
	BookingType string     `form:"booking_type" binding:"required"`
	ShowroomID  *uuid.UUID `form:"showroom_id"`
}
