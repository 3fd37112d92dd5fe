package commands

import (
	"context"
	"log/slog"

	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/pkg/errs"
)

// Gateway event types the reconciler acts on. Anything else is acknowledged
// and dropped.
const (
	GatewayEventIntentSucceeded = "payment_intent.succeeded"
	GatewayEventIntentFailed    = "payment_intent.payment_failed"
	GatewayEventChargeRefunded  = "charge.refunded"
)

// GatewayEvent is the reconciler's view of a verified webhook delivery,
// already decoded from the gateway's envelope by the transport layer.
type GatewayEvent struct {
	Type               string
	GatewayIntentID    string
	ReceiptURL         string
	FailureMessage     string
	RefundedTotalMinor int64
	Currency           string
}

type WebhookCommands interface {
	HandleEvent(ctx context.Context, event GatewayEvent) error
}

type webhookCommandsImpl struct {
	paymentStore PaymentStore
	orderStore   OrderStore
	outbox       OutboxStore
	txm          TxManager
	clock        clock.Clock
}

func NewWebhookCommands(
	paymentStore PaymentStore,
	orderStore OrderStore,
	outbox OutboxStore,
	txm TxManager,
	clock clock.Clock,
) WebhookCommands {
	return &webhookCommandsImpl{
		paymentStore: paymentStore,
		orderStore:   orderStore,
		outbox:       outbox,
		txm:          txm,
		clock:        clock,
	}
}

// HandleEvent reconciles one gateway notification. Deliveries are
// at-least-once, so every branch must tolerate replays: an event that would
// move the payment to a state it already holds is a no-op, never an error.
func (c *webhookCommandsImpl) HandleEvent(ctx context.Context, event GatewayEvent) error {
	entity, err := c.paymentStore.FindByGatewayIntentID(ctx, event.GatewayIntentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Intent created outside this system, or a delivery that raced
			// record creation. Acknowledge so the gateway stops retrying.
			slog.Warn("webhook for unknown payment intent",
				"eventType", event.Type,
				"gatewayIntentId", event.GatewayIntentID,
			)
			return nil
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch event.Type {
	case GatewayEventIntentSucceeded:
		return c.reconcileSucceeded(ctx, entity, event)
	case GatewayEventIntentFailed:
		return c.reconcileFailed(ctx, entity, event)
	case GatewayEventChargeRefunded:
		return c.reconcileRefunded(ctx, entity, event)
	default:
		slog.Debug("ignoring unhandled webhook event type", "eventType", event.Type)
		return nil
	}
}

func (c *webhookCommandsImpl) reconcileSucceeded(ctx context.Context, entity *payment.Payment, event GatewayEvent) error {
	if entity.Status() == payment.StatusPaid {
		return nil
	}

	if err := entity.MarkPaid(event.ReceiptURL, c.clock.Now()); err != nil {
		// Settled in a state paid cannot follow (cancelled, refunded). The
		// local record wins; log and acknowledge.
		slog.Warn("webhook success for payment in terminal state",
			"paymentId", entity.ID(),
			"status", entity.Status().String(),
		)
		return nil
	}

	return c.txm.Within(ctx, func(tx db.DBTX) error {
		if err := c.paymentStore.Update(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.orderStore.UpdatePaymentResult(ctx, tx, entity.OrderID(), OrderStatusConfirmed, OrderPaymentStatusPaid); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicPaymentSucceeded, PaymentSucceededEvent{
			PaymentID: entity.ID(),
			OrderID:   entity.OrderID(),
			Amount:    entity.Amount(),
		})
	})
}

func (c *webhookCommandsImpl) reconcileFailed(ctx context.Context, entity *payment.Payment, event GatewayEvent) error {
	if entity.Status() == payment.StatusFailed {
		return nil
	}

	if err := entity.MarkFailed(event.FailureMessage, c.clock.Now()); err != nil {
		slog.Warn("webhook failure for payment in terminal state",
			"paymentId", entity.ID(),
			"status", entity.Status().String(),
		)
		return nil
	}

	return c.txm.Within(ctx, func(tx db.DBTX) error {
		if err := c.paymentStore.Update(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicPaymentFailed, PaymentFailedEvent{
			PaymentID: entity.ID(),
			OrderID:   entity.OrderID(),
			Reason:    event.FailureMessage,
		})
	})
}

func (c *webhookCommandsImpl) reconcileRefunded(ctx context.Context, entity *payment.Payment, event GatewayEvent) error {
	total := payment.MajorUnits(event.RefundedTotalMinor, entity.Currency())
	if total == entity.RefundedAmount() {
		return nil
	}

	if err := entity.SetRefundedTotal(total, c.clock.Now()); err != nil {
		// Either the payment was never paid locally or the reported total is
		// inconsistent. The local record wins; log and acknowledge.
		slog.Warn("webhook refund for payment in unreconcilable state",
			"paymentId", entity.ID(),
			"status", entity.Status().String(),
			"refundedTotal", total,
		)
		return nil
	}

	return c.txm.Within(ctx, func(tx db.DBTX) error {
		if err := c.paymentStore.Update(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicPaymentRefunded, PaymentRefundedEvent{
			PaymentID: entity.ID(),
			OrderID:   entity.OrderID(),
			Amount:    total,
		})
	})
}
