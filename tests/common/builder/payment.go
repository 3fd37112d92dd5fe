package builder

import (
	"time"

	"furnish-admin/internal/domain/payment"

	"github.com/google/uuid"
)

type PaymentBuilder struct {
	orderID      uuid.UUID
	amount       float64
	currency     string
	method       string
	intentID     string
	clientSecret string
	now          time.Time
}

func NewPaymentBuilder() *PaymentBuilder {
	return &PaymentBuilder{
		orderID:      uuid.New(),
		amount:       1299.50,
		currency:     "usd",
		method:       "card",
		intentID:     "pi_test_intent",
		clientSecret: "pi_test_intent_secret",
		now:          BaseTime,
	}
}

func (b *PaymentBuilder) WithOrderID(id uuid.UUID) *PaymentBuilder {
	b.orderID = id
	return b
}

func (b *PaymentBuilder) WithAmount(amount float64) *PaymentBuilder {
	b.amount = amount
	return b
}

func (b *PaymentBuilder) WithCurrency(currency string) *PaymentBuilder {
	b.currency = currency
	return b
}

func (b *PaymentBuilder) WithIntentID(id string) *PaymentBuilder {
	b.intentID = id
	return b
}

func (b *PaymentBuilder) WithNow(now time.Time) *PaymentBuilder {
	b.now = now
	return b
}

func (b *PaymentBuilder) BuildDomain() (*payment.Payment, error) {
	return payment.NewPayment(b.orderID, b.amount, b.currency, b.method, b.intentID, b.clientSecret, b.now)
}

// BuildPaid returns a payment already reconciled as paid.
func (b *PaymentBuilder) BuildPaid() (*payment.Payment, error) {
	p, err := b.BuildDomain()
	if err != nil {
		return nil, err
	}
	if err := p.MarkPaid("https://receipts.example.com/r1", b.now.Add(time.Minute)); err != nil {
		return nil, err
	}
	return p, nil
}
