package request

import (
	"github.com/google/uuid"
)

type CreatePaymentIntentRequest struct {
	OrderID  uuid.UUID `json:"order_id" binding:"required"`
	Amount   float64   `json:"amount" binding:"required"`
	Currency string    `json:"currency" binding:"required"`
	Method   string    `json:"method" binding:"required"`
}

type CancelPaymentRequest struct {
	Reason      string `json:"reason" binding:"required"`
	CancelledBy string `json:"cancelled_by"`
}

type CreateRefundRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Reason string  `json:"reason" binding:"required"`
}
