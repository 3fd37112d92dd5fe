//go:build unit

package commands_test

import (
	"context"
	"time"

	"furnish-admin/internal/domain/booking"
	"furnish-admin/internal/domain/payment"
	"furnish-admin/internal/infra"
	"furnish-admin/internal/infra/db"
	"furnish-admin/internal/usecase/commands"

	"github.com/google/uuid"
)

func wrapConflict(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindConflict)
}

// fakeTxManager hands the closure a nil tx; the fake stores ignore it.
type fakeTxManager struct {
	err error
}

func (f *fakeTxManager) Within(_ context.Context, fn func(tx db.DBTX) error) error {
	if f.err != nil {
		return f.err
	}
	return fn(nil)
}

type enqueuedEvent struct {
	topic   string
	payload any
}

type fakeOutbox struct {
	events []enqueuedEvent
	err    error
}

func (f *fakeOutbox) Enqueue(_ context.Context, _ db.DBTX, topic string, payload any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, enqueuedEvent{topic: topic, payload: payload})
	return nil
}

func (f *fakeOutbox) topics() []string {
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.topic
	}
	return out
}

type fakeBookingStore struct {
	bookings map[uuid.UUID]*booking.Booking

	occupied  bool
	existsErr error
	createErr error
	updateErr error

	creates     int
	updates     int
	lastExclude *uuid.UUID
}

func newFakeBookingStore(existing ...*booking.Booking) *fakeBookingStore {
	s := &fakeBookingStore{bookings: make(map[uuid.UUID]*booking.Booking)}
	for _, b := range existing {
		s.bookings[b.ID()] = b
	}
	return s
}

func (f *fakeBookingStore) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingStore) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (f *fakeBookingStore) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.bookings[b.ID()] = b
	return nil
}

func (f *fakeBookingStore) ExistsActiveAtSlot(_ context.Context, _ time.Time, _ booking.Type, _, excludeBookingID *uuid.UUID) (bool, error) {
	f.lastExclude = excludeBookingID
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.occupied, nil
}

type fakePaymentStore struct {
	payments map[uuid.UUID]*payment.Payment

	createErr error
	updateErr error

	creates int
	updates int
}

func newFakePaymentStore(existing ...*payment.Payment) *fakePaymentStore {
	s := &fakePaymentStore{payments: make(map[uuid.UUID]*payment.Payment)}
	for _, p := range existing {
		s.payments[p.ID()] = p
	}
	return s
}

func (f *fakePaymentStore) Create(_ context.Context, _ db.DBTX, p *payment.Payment) error {
	f.creates++
	if f.createErr != nil {
		return f.createErr
	}
	f.payments[p.ID()] = p
	return nil
}

func (f *fakePaymentStore) FindByID(_ context.Context, id uuid.UUID) (*payment.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return p, nil
}

func (f *fakePaymentStore) FindByGatewayIntentID(_ context.Context, gatewayIntentID string) (*payment.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayIntentID() == gatewayIntentID {
			return p, nil
		}
	}
	return nil, infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
}

func (f *fakePaymentStore) Update(_ context.Context, _ db.DBTX, p *payment.Payment) error {
	f.updates++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.payments[p.ID()] = p
	return nil
}

type orderResult struct {
	orderID       uuid.UUID
	status        string
	paymentStatus string
}

type fakeOrderStore struct {
	orders  map[uuid.UUID]*commands.OrderSnapshot
	results []orderResult
}

func newFakeOrderStore(existing ...*commands.OrderSnapshot) *fakeOrderStore {
	s := &fakeOrderStore{orders: make(map[uuid.UUID]*commands.OrderSnapshot)}
	for _, o := range existing {
		s.orders[o.ID] = o
	}
	return s
}

func (f *fakeOrderStore) FindByID(_ context.Context, id uuid.UUID) (*commands.OrderSnapshot, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}
	return o, nil
}

func (f *fakeOrderStore) UpdatePaymentResult(_ context.Context, _ db.DBTX, orderID uuid.UUID, status, paymentStatus string) error {
	f.results = append(f.results, orderResult{orderID: orderID, status: status, paymentStatus: paymentStatus})
	return nil
}

type fakeGateway struct {
	intent      *commands.IntentSnapshot
	createErr   error
	retrieveErr error
	cancelErr   error

	refund    *commands.RefundSnapshot
	refundErr error

	createCalls   int
	retrieveCalls int
	cancelCalls   int
	refundCalls   int

	lastCreate commands.CreateIntentRequest
	lastRefund commands.RefundRequest
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		intent: &commands.IntentSnapshot{
			ID:           "pi_fake_1",
			ClientSecret: "pi_fake_1_secret",
			Status:       commands.IntentStatusRequiresAction,
		},
		refund: &commands.RefundSnapshot{ID: "re_fake_1"},
	}
}

func (f *fakeGateway) CreateIntent(_ context.Context, req commands.CreateIntentRequest) (*commands.IntentSnapshot, error) {
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.intent, nil
}

func (f *fakeGateway) RetrieveIntent(_ context.Context, _ string) (*commands.IntentSnapshot, error) {
	f.retrieveCalls++
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	return f.intent, nil
}

func (f *fakeGateway) CancelIntent(_ context.Context, _ string) error {
	f.cancelCalls++
	return f.cancelErr
}

func (f *fakeGateway) CreateRefund(_ context.Context, req commands.RefundRequest) (*commands.RefundSnapshot, error) {
	f.refundCalls++
	f.lastRefund = req
	if f.refundErr != nil {
		return nil, f.refundErr
	}
	return f.refund, nil
}
