//go:build unit

package commands_test

import (
	"context"
	"testing"

	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/pkg/clock"
	"furnish-admin/internal/pkg/errs"
	"furnish-admin/internal/usecase/commands"
	"furnish-admin/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type paymentFixture struct {
	payments *fakePaymentStore
	orders   *fakeOrderStore
	gateway  *fakeGateway
	outbox   *fakeOutbox
	txm      *fakeTxManager
	clock    *clock.MockClock
	cmds     commands.PaymentCommands
}

func newPaymentFixture(existing ...*payment.Payment) *paymentFixture {
	f := &paymentFixture{
		payments: newFakePaymentStore(existing...),
		orders:   newFakeOrderStore(),
		gateway:  newFakeGateway(),
		outbox:   &fakeOutbox{},
		txm:      &fakeTxManager{},
		clock:    clock.NewMockClock(builder.BaseTime),
	}
	f.cmds = commands.NewPaymentCommands(f.payments, f.orders, f.gateway, f.outbox, f.txm, f.clock)
	return f
}

func (f *paymentFixture) withOrder(total float64) *commands.OrderSnapshot {
	order := &commands.OrderSnapshot{
		ID:            uuid.New(),
		Total:         total,
		Currency:      "usd",
		Status:        "placed",
		PaymentStatus: "unpaid",
	}
	f.orders.orders[order.ID] = order
	return order
}

func TestCreatePaymentIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the intent, persists and emits", func(t *testing.T) {
		f := newPaymentFixture()
		order := f.withOrder(1299.50)

		actual, err := f.cmds.CreatePaymentIntent(ctx, commands.CreatePaymentIntentParams{
			OrderID:  order.ID,
			Amount:   1299.50,
			Currency: "usd",
			Method:   "card",
		})
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, actual.Status())
		assert.Equal(t, "pi_fake_1", actual.GatewayIntentID())
		assert.Equal(t, int64(129950), f.gateway.lastCreate.AmountMinor)
		assert.Equal(t, 1, f.payments.creates)
		assert.Equal(t, []string{commands.TopicPaymentIntentCreated}, f.outbox.topics())
	})

	t.Run("unknown order", func(t *testing.T) {
		f := newPaymentFixture()

		_, err := f.cmds.CreatePaymentIntent(ctx, commands.CreatePaymentIntentParams{
			OrderID: uuid.New(),
			Amount:  100,
		})
		require.ErrorIs(t, err, commands.ErrOrderNotFound)
		require.ErrorIs(t, err, commands.ErrNotFound)
		assert.Zero(t, f.gateway.createCalls)
	})

	t.Run("amount mismatch rejected before the gateway", func(t *testing.T) {
		f := newPaymentFixture()
		order := f.withOrder(1299.50)

		_, err := f.cmds.CreatePaymentIntent(ctx, commands.CreatePaymentIntentParams{
			OrderID: order.ID,
			Amount:  1299.49,
		})
		require.ErrorIs(t, err, commands.ErrAmountMismatch)
		require.ErrorIs(t, err, commands.ErrValidation)
		assert.Zero(t, f.gateway.createCalls)
	})

	t.Run("already paid order rejected", func(t *testing.T) {
		f := newPaymentFixture()
		order := f.withOrder(500)
		order.PaymentStatus = commands.OrderPaymentStatusPaid

		_, err := f.cmds.CreatePaymentIntent(ctx, commands.CreatePaymentIntentParams{
			OrderID: order.ID,
			Amount:  500,
		})
		require.ErrorIs(t, err, commands.ErrOrderAlreadyPaid)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Zero(t, f.gateway.createCalls)
	})

	t.Run("gateway failure leaves no local record", func(t *testing.T) {
		f := newPaymentFixture()
		order := f.withOrder(500)
		f.gateway.createErr = errs.Mark(errs.New("gateway down"), commands.ErrGatewayUnavailable)

		_, err := f.cmds.CreatePaymentIntent(ctx, commands.CreatePaymentIntentParams{
			OrderID: order.ID,
			Amount:  500,
		})
		require.ErrorIs(t, err, commands.ErrGatewayUnavailable)
		assert.Zero(t, f.payments.creates)
		assert.Empty(t, f.outbox.events)
	})
}

func TestConfirmPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeded intent marks paid and flips the order", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)
		f.gateway.intent = &commands.IntentSnapshot{
			ID:         existing.GatewayIntentID(),
			Status:     commands.IntentStatusSucceeded,
			ReceiptURL: "https://receipts.example.com/r1",
		}

		actual, err := f.cmds.ConfirmPayment(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPaid, actual.Status())
		require.NotNil(t, actual.ReceiptURL())
		assert.Equal(t, "https://receipts.example.com/r1", *actual.ReceiptURL())

		require.Len(t, f.orders.results, 1)
		assert.Equal(t, existing.OrderID(), f.orders.results[0].orderID)
		assert.Equal(t, commands.OrderStatusConfirmed, f.orders.results[0].status)
		assert.Equal(t, commands.OrderPaymentStatusPaid, f.orders.results[0].paymentStatus)
		assert.Equal(t, []string{commands.TopicPaymentSucceeded}, f.outbox.topics())
	})

	t.Run("processing intent persists without an event", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)
		f.gateway.intent = &commands.IntentSnapshot{
			ID:     existing.GatewayIntentID(),
			Status: commands.IntentStatusProcessing,
		}

		actual, err := f.cmds.ConfirmPayment(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusProcessing, actual.Status())
		assert.Equal(t, 1, f.payments.updates)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("failed intent records the failure", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)
		f.gateway.intent = &commands.IntentSnapshot{
			ID:             existing.GatewayIntentID(),
			Status:         commands.IntentStatusFailed,
			FailureMessage: "card_declined",
		}

		actual, err := f.cmds.ConfirmPayment(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusFailed, actual.Status())
		require.NotNil(t, actual.FailureReason())
		assert.Equal(t, "card_declined", *actual.FailureReason())
		assert.Equal(t, []string{commands.TopicPaymentFailed}, f.outbox.topics())
	})

	t.Run("requires action leaves the payment untouched", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		actual, err := f.cmds.ConfirmPayment(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, actual.Status())
		assert.Zero(t, f.payments.updates)
	})

	t.Run("settled payment refuses reconfirmation", func(t *testing.T) {
		existing := mustPaid(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		_, err := f.cmds.ConfirmPayment(ctx, existing.ID())
		require.ErrorIs(t, err, payment.ErrAlreadyCompleted)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Zero(t, f.gateway.retrieveCalls)
	})
}

func TestCancelPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels locally and at the gateway", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		actual, err := f.cmds.CancelPayment(ctx, existing.ID(), "duplicate order", "admin-1")
		require.NoError(t, err)

		assert.Equal(t, payment.StatusCancelled, actual.Status())
		assert.Equal(t, 1, f.gateway.cancelCalls)
		assert.Equal(t, []string{commands.TopicPaymentCancelled}, f.outbox.topics())
	})

	t.Run("paid payment cannot be cancelled", func(t *testing.T) {
		existing := mustPaid(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		_, err := f.cmds.CancelPayment(ctx, existing.ID(), "too late", "admin-1")
		require.ErrorIs(t, err, payment.ErrCancelCompleted)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Zero(t, f.gateway.cancelCalls)
	})
}

func TestCreateRefund(t *testing.T) {
	ctx := context.Background()

	t.Run("refunds through the gateway in minor units", func(t *testing.T) {
		existing := mustPaid(t, builder.NewPaymentBuilder().WithAmount(500))
		f := newPaymentFixture(existing)

		actual, err := f.cmds.CreateRefund(ctx, existing.ID(), 200, "damaged goods", "admin-1")
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPartiallyRefunded, actual.Status())
		assert.Equal(t, int64(20000), f.gateway.lastRefund.AmountMinor)
		assert.Equal(t, existing.GatewayIntentID(), f.gateway.lastRefund.GatewayIntentID)
		assert.Equal(t, []string{commands.TopicPaymentRefunded}, f.outbox.topics())
	})

	t.Run("domain validation precedes the gateway call", func(t *testing.T) {
		existing := mustPaid(t, builder.NewPaymentBuilder().WithAmount(500))
		f := newPaymentFixture(existing)

		_, err := f.cmds.CreateRefund(ctx, existing.ID(), 501, "too much", "admin-1")
		require.ErrorIs(t, err, payment.ErrRefundExceedsAvailable)
		require.ErrorIs(t, err, commands.ErrValidation)
		assert.Zero(t, f.gateway.refundCalls)
	})

	t.Run("unpaid payment is not refundable", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		_, err := f.cmds.CreateRefund(ctx, existing.ID(), 100, "reason", "admin-1")
		require.ErrorIs(t, err, payment.ErrNotRefundable)
		require.ErrorIs(t, err, commands.ErrConflict)
	})
}

func TestRetryFailedPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("failed payment gets a fresh intent", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		require.NoError(t, existing.MarkFailed("card_declined", builder.BaseTime))
		f := newPaymentFixture(existing)

		actual, err := f.cmds.RetryFailedPayment(ctx, existing.ID())
		require.NoError(t, err)

		assert.Equal(t, payment.StatusPending, actual.Status())
		assert.Equal(t, "pi_fake_1", actual.GatewayIntentID())
		assert.Equal(t, 1, actual.RetryCount())
		assert.Equal(t, 1, f.payments.updates)
		assert.Empty(t, f.outbox.events)
	})

	t.Run("only failed payments are retryable", func(t *testing.T) {
		existing := mustPayment(t, builder.NewPaymentBuilder())
		f := newPaymentFixture(existing)

		_, err := f.cmds.RetryFailedPayment(ctx, existing.ID())
		require.ErrorIs(t, err, payment.ErrRetryNotAllowed)
		require.ErrorIs(t, err, commands.ErrConflict)
		assert.Zero(t, f.gateway.createCalls)
	})
}

func mustPayment(t *testing.T, b *builder.PaymentBuilder) *payment.Payment {
	t.Helper()
	entity, err := b.BuildDomain()
	require.NoError(t, err)
	return entity
}

func mustPaid(t *testing.T, b *builder.PaymentBuilder) *payment.Payment {
	t.Helper()
	entity, err := b.BuildPaid()
	require.NoError(t, err)
	return entity
}
