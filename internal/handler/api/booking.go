package api

import (
	"net/http"

	"furnish-admin/internal/domain/booking"
	reqdto "furnish-admin/internal/handler/dto/request"
	resdto "furnish-admin/internal/handler/dto/response"
	"furnish-admin/internal/handler/httperr"
	"furnish-admin/internal/handler/middleware"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands     commands.BookingCommands
	queries      queries.BookingQueries
	availability queries.AvailabilityQueries
}

func NewBookingHandler(
	bookingCommands commands.BookingCommands,
	bookingQueries queries.BookingQueries,
	availability queries.AvailabilityQueries,
) *BookingHandler {
	return &BookingHandler{
		commands:     bookingCommands,
		queries:      bookingQueries,
		availability: availability,
	}
}

// @Summary Create booking
// @Description Create a new consultation booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entity, err := h.commands.CreateBooking(c.Request.Context(), commands.CreateBookingParams{
		CustomerID:    req.CustomerID,
		BookingType:   booking.Type(req.BookingType),
		Categories:    req.DomainCategories(),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		ScheduledDate: req.ScheduledDate,
		ShowroomID:    req.ShowroomID,
		Notes:         req.Notes,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(entity))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} httperr.Response
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, notFoundToSentinel(err, commands.ErrBookingNotFound))
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Update booking status
// @Description Move a booking forward to confirmed or completed
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Target status"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entity, err := h.commands.UpdateStatus(c.Request.Context(), id, booking.Status(req.Status))
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(entity))
}

// @Summary Cancel booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest true "Cancellation"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} httperr.Response
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	cancelledBy := req.CancelledBy
	if cancelledBy == "" {
		if userID, ok := middleware.GetUserID(c); ok {
			cancelledBy = userID.String()
		}
	}

	entity, err := h.commands.CancelBooking(c.Request.Context(), id, req.Reason, cancelledBy)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(entity))
}

// @Summary Reschedule booking
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New date"
// @Success 200 {object} resdto.BookingResponse
// @Failure 409 {object} httperr.Response
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	var req reqdto.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entity, err := h.commands.RescheduleBooking(c.Request.Context(), id, req.ScheduledDate)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(entity))
}

// @Summary Send booking reminder
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 202 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Router /bookings/{id}/reminder [post]
func (h *BookingHandler) SendReminder(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	if err := h.commands.SendReminder(c.Request.Context(), id); err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "reminder queued"})
}

// @Summary List day slots
// @Description List hourly slots for a day with occupancy
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param day query string true "Day (YYYY-MM-DD)"
// @Param booking_type query string true "Booking type"
// @Param showroom_id query string false "Showroom ID"
// @Success 200 {array} resdto.SlotResponse
// @Router /bookings/slots [get]
func (h *BookingHandler) ListSlots(c *gin.Context) {
	var req reqdto.ListSlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query parameters", nil)
		return
	}

	bookingType := booking.Type(req.BookingType)
	if !bookingType.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, booking.ErrInvalidType, booking.ErrInvalidType.Error(), nil)
		return
	}

	slots, err := h.availability.ListDaySlots(c.Request.Context(), req.Day, bookingType, req.ShowroomID)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(slots))
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
