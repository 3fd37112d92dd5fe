package commands

import (
	"context"
	"errors"

	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/pkg/errs"

	"github.com/google/uuid"
)

type CreatePaymentIntentParams struct {
	OrderID  uuid.UUID
	Amount   float64
	Currency string
	Method   string
}

type PaymentCommands interface {
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*payment.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error)
	CancelPayment(ctx context.Context, paymentID uuid.UUID, reason, cancelledBy string) (*payment.Payment, error)
	CreateRefund(ctx context.Context, paymentID uuid.UUID, amount float64, reason, requestedBy string) (*payment.Payment, error)
	RetryFailedPayment(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error)
}

type paymentCommandsImpl struct {
	paymentStore PaymentStore
	orderStore   OrderStore
	gateway      PaymentGateway
	outbox       OutboxStore
	txm          TxManager
	clock        clock.Clock
}

func NewPaymentCommands(
	paymentStore PaymentStore,
	orderStore OrderStore,
	gateway PaymentGateway,
	outbox OutboxStore,
	txm TxManager,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		paymentStore: paymentStore,
		orderStore:   orderStore,
		gateway:      gateway,
		outbox:       outbox,
		txm:          txm,
		clock:        clock,
	}
}

func (c *paymentCommandsImpl) CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*payment.Payment, error) {
	order, err := c.orderStore.FindByID(ctx, params.OrderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrOrderNotFound, ErrNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if params.Amount != order.Total {
		return nil, errs.Mark(ErrAmountMismatch, ErrValidation)
	}
	if order.PaymentStatus == OrderPaymentStatusPaid {
		return nil, errs.Mark(ErrOrderAlreadyPaid, ErrConflict)
	}

	// Gateway first: no local Payment row exists without a gateway intent
	// behind it, so a transport failure here leaves nothing to clean up.
	intent, err := c.gateway.CreateIntent(ctx, CreateIntentRequest{
		AmountMinor: payment.MinorUnits(params.Amount, params.Currency),
		Currency:    params.Currency,
		Method:      params.Method,
		OrderID:     params.OrderID,
	})
	if err != nil {
		return nil, err
	}

	entity, err := payment.NewPayment(
		params.OrderID,
		params.Amount,
		params.Currency,
		params.Method,
		intent.ID,
		intent.ClientSecret,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrValidation)
	}

	err = c.txm.Within(ctx, func(tx db.DBTX) error {
		if createErr := c.paymentStore.Create(ctx, tx, entity); createErr != nil {
			return errs.Mark(createErr, ErrDatabaseOperationFailed)
		}
		return c.outbox.Enqueue(ctx, tx, TopicPaymentIntentCreated, PaymentIntentCreatedEvent{
			PaymentID: entity.ID(),
			OrderID:   entity.OrderID(),
			Amount:    entity.Amount(),
			Currency:  entity.Currency(),
		})
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *paymentCommandsImpl) ConfirmPayment(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error) {
	entity, err := c.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if entity.Status().IsSettled() {
		return nil, errs.Mark(payment.ErrAlreadyCompleted, ErrConflict)
	}

	intent, err := c.gateway.RetrieveIntent(ctx, entity.GatewayIntentID())
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case IntentStatusSucceeded:
		if err := c.applySuccess(ctx, entity, intent.ReceiptURL); err != nil {
			return nil, err
		}
	case IntentStatusProcessing:
		if markErr := entity.MarkProcessing(c.clock.Now()); markErr != nil {
			return nil, errs.Mark(markErr, ErrConflict)
		}
		if err := c.persist(ctx, entity, "", nil); err != nil {
			return nil, err
		}
	case IntentStatusFailed:
		if err := c.applyFailure(ctx, entity, intent.FailureMessage); err != nil {
			return nil, err
		}
	default:
		// Intent still awaiting customer action; nothing to record.
	}

	return entity, nil
}

func (c *paymentCommandsImpl) CancelPayment(ctx context.Context, paymentID uuid.UUID, reason, cancelledBy string) (*payment.Payment, error) {
	entity, err := c.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if err := entity.Cancel(reason, cancelledBy, c.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrConflict)
	}

	if err := c.gateway.CancelIntent(ctx, entity.GatewayIntentID()); err != nil {
		return nil, err
	}

	err = c.persist(ctx, entity, TopicPaymentCancelled, PaymentCancelledEvent{
		PaymentID: entity.ID(),
		OrderID:   entity.OrderID(),
		Reason:    reason,
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *paymentCommandsImpl) CreateRefund(ctx context.Context, paymentID uuid.UUID, amount float64, reason, requestedBy string) (*payment.Payment, error) {
	entity, err := c.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	// Domain validation runs before the gateway call so an over-refund never
	// reaches the gateway.
	if err := entity.ApplyRefund(amount, reason, requestedBy, c.clock.Now()); err != nil {
		return nil, classifyRefundErr(err)
	}

	if _, err := c.gateway.CreateRefund(ctx, RefundRequest{
		GatewayIntentID: entity.GatewayIntentID(),
		AmountMinor:     payment.MinorUnits(amount, entity.Currency()),
		Reason:          reason,
	}); err != nil {
		return nil, err
	}

	err = c.persist(ctx, entity, TopicPaymentRefunded, PaymentRefundedEvent{
		PaymentID: entity.ID(),
		OrderID:   entity.OrderID(),
		Amount:    amount,
	})
	if err != nil {
		return nil, err
	}

	return entity, nil
}

func (c *paymentCommandsImpl) RetryFailedPayment(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error) {
	entity, err := c.findPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	if entity.Status() != payment.StatusFailed {
		return nil, errs.Mark(payment.ErrRetryNotAllowed, ErrConflict)
	}

	intent, err := c.gateway.CreateIntent(ctx, CreateIntentRequest{
		AmountMinor: payment.MinorUnits(entity.Amount(), entity.Currency()),
		Currency:    entity.Currency(),
		Method:      entity.Method(),
		OrderID:     entity.OrderID(),
	})
	if err != nil {
		return nil, err
	}

	if err := entity.ResetForRetry(intent.ID, intent.ClientSecret, c.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrConflict)
	}

	if err := c.persist(ctx, entity, "", nil); err != nil {
		return nil, err
	}

	return entity, nil
}

// applySuccess records a paid outcome and flips the linked order, in one
// transaction with the success event.
func (c *paymentCommandsImpl) applySuccess(ctx context.Context, entity *payment.Payment, receiptURL string) error {
	if err := entity.MarkPaid(receiptURL, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrConflict)
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

func (c *paymentCommandsImpl) applyFailure(ctx context.Context, entity *payment.Payment, reason string) error {
	if err := entity.MarkFailed(reason, c.clock.Now()); err != nil {
		return errs.Mark(err, ErrConflict)
	}

	return c.persist(ctx, entity, TopicPaymentFailed, PaymentFailedEvent{
		PaymentID: entity.ID(),
		OrderID:   entity.OrderID(),
		Reason:    reason,
	})
}

// persist updates the payment row and, when topic is non-empty, enqueues the
// event in the same transaction.
func (c *paymentCommandsImpl) persist(ctx context.Context, entity *payment.Payment, topic string, event any) error {
	return c.txm.Within(ctx, func(tx db.DBTX) error {
		if err := c.paymentStore.Update(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if topic == "" {
			return nil
		}
		return c.outbox.Enqueue(ctx, tx, topic, event)
	})
}

func (c *paymentCommandsImpl) findPayment(ctx context.Context, paymentID uuid.UUID) (*payment.Payment, error) {
	entity, err := c.paymentStore.FindByID(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(ErrPaymentNotFound, ErrNotFound)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func classifyRefundErr(err error) error {
	switch {
	case errors.Is(err, payment.ErrNotRefundable):
		return errs.Mark(err, ErrConflict)
	case errors.Is(err, payment.ErrRefundExceedsAvailable), errors.Is(err, payment.ErrInvalidRefundAmount):
		return errs.Mark(err, ErrValidation)
	default:
		return errs.Mark(err, ErrConflict)
	}
}
