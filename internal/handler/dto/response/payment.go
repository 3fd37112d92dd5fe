package response

import (
	"time"

	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/usecase/queries"

	"github.com/google/uuid"
)

type PaymentResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrderID         uuid.UUID  `json:"orderId"`
	Amount          float64    `json:"amount"`
	Currency        string     `json:"currency"`
	Method          string     `json:"method"`
	Status          string     `json:"status"`
	GatewayIntentID string     `json:"gatewayIntentId"`
	ClientSecret    string     `json:"clientSecret,omitempty"`
	RefundedAmount  float64    `json:"refundedAmount"`
	ReceiptURL      *string    `json:"receiptUrl,omitempty"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
	FailureReason   *string    `json:"failureReason,omitempty"`
	FailedAt        *time.Time `json:"failedAt,omitempty"`
	RefundedAt      *time.Time `json:"refundedAt,omitempty"`
	RetryCount      int32      `json:"retryCount"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FromPayment includes the client secret: mutation responses go back to the
// operator driving the checkout.
func FromPayment(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:              p.ID(),
		OrderID:         p.OrderID(),
		Amount:          p.Amount(),
		Currency:        p.Currency(),
		Method:          p.Method(),
		Status:          p.Status().String(),
		GatewayIntentID: p.GatewayIntentID(),
		ClientSecret:    p.GatewayClientSecret(),
		RefundedAmount:  p.RefundedAmount(),
		ReceiptURL:      p.ReceiptURL(),
		PaidAt:          p.PaidAt(),
		FailureReason:   p.FailureReason(),
		FailedAt:        p.FailedAt(),
		RefundedAt:      p.RefundedAt(),
		RetryCount:      int32(p.RetryCount()),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

// FromPaymentView omits the client secret; read queries never expose it.
func FromPaymentView(view *queries.PaymentView) *PaymentResponse {
	return &PaymentResponse{
		ID:              view.ID,
		OrderID:         view.OrderID,
		Amount:          view.Amount,
		Currency:        view.Currency,
		Method:          view.Method,
		Status:          view.Status,
		GatewayIntentID: view.GatewayIntentID,
		RefundedAmount:  view.RefundedAmount,
		ReceiptURL:      view.ReceiptURL,
		PaidAt:          view.PaidAt,
		FailureReason:   view.FailureReason,
		FailedAt:        view.FailedAt,
		RefundedAt:      view.RefundedAt,
		RetryCount:      view.RetryCount,
		CreatedAt:       view.CreatedAt,
		UpdatedAt:       view.UpdatedAt,
	}
}
