package api

import (
	"net/http"

	reqdto "furnish-admin/internal/handler/dto/request"
	resdto "furnish-admin/internal/handler/dto/response"
	"furnish-admin/internal/handler/httperr"
	"furnish-admin/internal/handler/middleware"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	commands commands.PaymentCommands
	queries  queries.PaymentQueries
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{
		commands: paymentCommands,
		queries:  paymentQueries,
	}
}

// @Summary Create payment intent
// @Description Create a gateway payment intent for an order
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePaymentIntentRequest true "Payment intent request"
// @Success 201 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/intents [post]
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req reqdto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	entity, err := h.commands.CreatePaymentIntent(c.Request.Context(), commands.CreatePaymentIntentParams{
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Currency: req.Currency,
		Method:   req.Method,
	})
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPayment(entity))
}

// @Summary Get payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, notFoundToSentinel(err, commands.ErrPaymentNotFound))
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary Confirm payment
// @Description Reconcile the payment with the gateway intent state
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/{id}/confirm [post]
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}

	entity, err := h.commands.ConfirmPayment(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayment(entity))
}

// @Summary Cancel payment
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.CancelPaymentRequest true "Cancellation"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/cancel [post]
func (h *PaymentHandler) CancelPayment(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}

	var req reqdto.CancelPaymentRequest
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

	entity, err := h.commands.CancelPayment(c.Request.Context(), id, req.Reason, cancelledBy)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayment(entity))
}

// @Summary Refund payment
// @Description Issue a full or partial refund (admin only)
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Param request body reqdto.CreateRefundRequest true "Refund"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/refunds [post]
func (h *PaymentHandler) CreateRefund(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}

	var req reqdto.CreateRefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	requestedBy := ""
	if userID, ok := middleware.GetUserID(c); ok {
		requestedBy = userID.String()
	}

	entity, err := h.commands.CreateRefund(c.Request.Context(), id, req.Amount, req.Reason, requestedBy)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayment(entity))
}

// @Summary Retry failed payment
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 409 {object} httperr.Response
// @Router /payments/{id}/retry [post]
func (h *PaymentHandler) RetryPayment(c *gin.Context) {
	id, ok := h.paymentID(c)
	if !ok {
		return
	}

	entity, err := h.commands.RetryFailedPayment(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPayment(entity))
}

func (h *PaymentHandler) paymentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid payment ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}
