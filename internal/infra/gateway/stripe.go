package gateway

import (
	"context"
	"time"

	"furnish-admin/internal/pkg/config"
	"furnish-admin/internal/pkg/errs"
	"furnish-admin/internal/usecase/commands"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// StripeGateway adapts the Stripe payment intent API to the coordinator's
// gateway port. All calls are bounded by the configured timeout; any failure
// talking to Stripe surfaces as a gateway-unavailable error.
type StripeGateway struct {
	timeout time.Duration
}

func NewStripeGateway(cfg config.GatewayConfig) *StripeGateway {
	stripe.Key = cfg.APIKey
	return &StripeGateway{timeout: cfg.Timeout}
}

var _ commands.PaymentGateway = (*StripeGateway)(nil)

func (g *StripeGateway) CreateIntent(ctx context.Context, req commands.CreateIntentRequest) (*commands.IntentSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
	}
	if req.Method != "" {
		params.PaymentMethodTypes = stripe.StringSlice([]string{req.Method})
	}
	params.AddMetadata("order_id", req.OrderID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, gatewayErr("failed to create payment intent", err)
	}
	return toIntentSnapshot(pi), nil
}

func (g *StripeGateway) RetrieveIntent(ctx context.Context, gatewayIntentID string) (*commands.IntentSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	params.AddExpand("latest_charge")

	pi, err := paymentintent.Get(gatewayIntentID, params)
	if err != nil {
		return nil, gatewayErr("failed to retrieve payment intent", err)
	}
	return toIntentSnapshot(pi), nil
}

func (g *StripeGateway) CancelIntent(ctx context.Context, gatewayIntentID string) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.PaymentIntentCancelParams{Params: stripe.Params{Context: ctx}}
	if _, err := paymentintent.Cancel(gatewayIntentID, params); err != nil {
		return gatewayErr("failed to cancel payment intent", err)
	}
	return nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, req commands.RefundRequest) (*commands.RefundSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(req.GatewayIntentID),
		Amount:        stripe.Int64(req.AmountMinor),
	}
	if req.Reason != "" {
		params.AddMetadata("reason", req.Reason)
	}

	r, err := refund.New(params)
	if err != nil {
		return nil, gatewayErr("failed to create refund", err)
	}
	return &commands.RefundSnapshot{ID: r.ID, AmountMinor: r.Amount}, nil
}

func toIntentSnapshot(pi *stripe.PaymentIntent) *commands.IntentSnapshot {
	snap := &commands.IntentSnapshot{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
	}

	switch {
	case pi.Status == stripe.PaymentIntentStatusSucceeded:
		snap.Status = commands.IntentStatusSucceeded
	case pi.Status == stripe.PaymentIntentStatusProcessing:
		snap.Status = commands.IntentStatusProcessing
	case pi.LastPaymentError != nil:
		snap.Status = commands.IntentStatusFailed
		snap.FailureMessage = pi.LastPaymentError.Msg
	default:
		snap.Status = commands.IntentStatusRequiresAction
	}

	if pi.LatestCharge != nil {
		snap.ReceiptURL = pi.LatestCharge.ReceiptURL
	}
	return snap
}

func gatewayErr(msg string, err error) error {
	return errs.Mark(errs.Wrap(err, msg), commands.ErrGatewayUnavailable)
}
