package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/events"
)

type capturePublisher struct {
	keys     []string
	payloads []any
}

func (p *capturePublisher) PublishJSON(_ context.Context, key string, v any) error {
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, v)
	return nil
}

func TestEventHooksTolerateNilPublisher(t *testing.T) {
	b := &domain.Booking{ID: "bk-1", Status: domain.BookingConfirmed}
	p := &domain.Payment{ID: "pay-1"}

	assert.NoError(t, BookingRequestedEventHook(nil).Run(context.Background(), b))
	assert.NoError(t, BookingDecidedEventHook(nil).Run(context.Background(), b))
	assert.NoError(t, PaymentCreatedEventHook(nil).Run(context.Background(), p))
	assert.NoError(t, PaymentCompletedEventHook(nil).Run(context.Background(), p))
}

func TestBookingDecidedEventHookRoutingKey(t *testing.T) {
	pub := &capturePublisher{}
	hook := BookingDecidedEventHook(pub)

	require.NoError(t, hook.Run(context.Background(), &domain.Booking{ID: "bk-1", Status: domain.BookingConfirmed}))
	require.NoError(t, hook.Run(context.Background(), &domain.Booking{ID: "bk-2", Status: domain.BookingRejected}))
	assert.Equal(t, []string{events.RKBookingConfirmed, events.RKBookingRejected}, pub.keys)
}

func TestPaymentAutoCreateHook(t *testing.T) {
	ctx := context.Background()
	users := newFakeUsers(
		&domain.User{ID: "owner-1", Name: "Asha", UPIID: "asha@upi"},
		&domain.User{ID: "renter-1", Name: "Ravi"},
	)
	bookings := newFakeBookingStore()
	store := newFakePaymentStore()
	paySvc := NewPaymentSvc(store, bookings, users, &stubRenderer{}, zap.NewNop())
	hook := PaymentAutoCreateHook(paySvc)

	confirmed := &domain.Booking{
		ID: "bk-1", PropertyID: "prop-1", RenterID: "renter-1", OwnerID: "owner-1",
		Status: domain.BookingConfirmed, TotalAmount: 25000,
	}
	require.NoError(t, hook.Run(ctx, confirmed))
	assert.Len(t, store.payments, 1)

	// rejected bookings never provision a record
	rejected := &domain.Booking{
		ID: "bk-2", PropertyID: "prop-1", RenterID: "renter-1", OwnerID: "owner-1",
		Status: domain.BookingRejected, TotalAmount: 25000,
	}
	require.NoError(t, hook.Run(ctx, rejected))
	assert.Len(t, store.payments, 1)
}
