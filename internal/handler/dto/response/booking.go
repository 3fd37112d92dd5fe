package response

import (
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID                    uuid.UUID  `json:"id"`
	CustomerID            uuid.UUID  `json:"customerId"`
	BookingType           string     `json:"bookingType"`
	Categories            []string   `json:"categories"`
	Status                string     `json:"status"`
	CustomerName          string     `json:"customerName"`
	CustomerEmail         string     `json:"customerEmail"`
	CustomerPhone         *string    `json:"customerPhone,omitempty"`
	ScheduledDate         time.Time  `json:"scheduledDate"`
	ShowroomID            *uuid.UUID `json:"showroomId,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	PreviousScheduledDate *time.Time `json:"previousScheduledDate,omitempty"`
	RescheduledAt         *time.Time `json:"rescheduledAt,omitempty"`
	CancellationReason    *string    `json:"cancellationReason,omitempty"`
	CancelledBy           *string    `json:"cancelledBy,omitempty"`
	CancelledAt           *time.Time `json:"cancelledAt,omitempty"`
	ConfirmedAt           *time.Time `json:"confirmedAt,omitempty"`
	CompletedAt           *time.Time `json:"completedAt,omitempty"`
	CreatedAt             time.Time  `json:"createdAt"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

type SlotResponse struct {
	Time         time.Time  `json:"time"`
	Available    bool       `json:"available"`
	BookingID    *uuid.UUID `json:"bookingId,omitempty"`
	ShowroomID   *uuid.UUID `json:"showroomId,omitempty"`
	ConsultantID *uuid.UUID `json:"consultantId,omitempty"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	categories := make([]string, len(b.Categories()))
	for i, c := range b.Categories() {
		categories[i] = c.String()
	}

	resp := &BookingResponse{
		ID:                    b.ID(),
		CustomerID:            b.CustomerID(),
		BookingType:           b.BookingType().String(),
		Categories:            categories,
		Status:                b.Status().String(),
		CustomerName:          b.Customer().Name(),
		CustomerEmail:         b.Customer().Email(),
		ScheduledDate:         b.ScheduledDate(),
		ShowroomID:            b.ShowroomID(),
		PreviousScheduledDate: b.PreviousScheduledDate(),
		RescheduledAt:         b.RescheduledAt(),
		CancelledAt:           b.CancelledAt(),
		ConfirmedAt:           b.ConfirmedAt(),
		CompletedAt:           b.CompletedAt(),
		CreatedAt:             b.CreatedAt(),
		UpdatedAt:             b.UpdatedAt(),
	}
	if phone := b.Customer().Phone(); phone != "" {
		resp.CustomerPhone = &phone
	}
	if notes := b.Notes(); notes != "" {
		resp.Notes = &notes
	}
	if c := b.Cancellation(); c != nil {
		reason := c.Reason()
		by := c.CancelledBy()
		resp.CancellationReason = &reason
		resp.CancelledBy = &by
	}
	return resp
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:                    view.ID,
		CustomerID:            view.CustomerID,
		BookingType:           view.BookingType,
		Categories:            view.Categories,
		Status:                view.Status,
		CustomerName:          view.CustomerName,
		CustomerEmail:         view.CustomerEmail,
		CustomerPhone:         view.CustomerPhone,
		ScheduledDate:         view.ScheduledDate,
		ShowroomID:            view.ShowroomID,
		Notes:                 view.Notes,
		PreviousScheduledDate: view.PreviousScheduledDate,
		RescheduledAt:         view.RescheduledAt,
		CancellationReason:    view.CancellationReason,
		CancelledBy:           view.CancelledBy,
		CancelledAt:           view.CancelledAt,
		ConfirmedAt:           view.ConfirmedAt,
		CompletedAt:           view.CompletedAt,
		CreatedAt:             view.CreatedAt,
		UpdatedAt:             view.UpdatedAt,
	}
}

func FromSlotViews(views []queries.SlotView) []SlotResponse {
	slots := make([]SlotResponse, len(views))
	for i, v := range views {
		slots[i] = SlotResponse{
			Time:         v.Time,
			Available:    v.Available,
			BookingID:    v.BookingID,
			ShowroomID:   v.ShowroomID,
			ConsultantID: v.ConsultantID,
		}
	}
	return slots
}
