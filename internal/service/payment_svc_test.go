package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

type stubRenderer struct{ calls int }

func (r *stubRenderer) PaymentArtifactURL(upiID string, amount float64, payeeName string) string {
	r.calls++
	return fmt.Sprintf("https://qr.test/render?upi=%s&amount=%.0f&name=%s", upiID, amount, payeeName)
}

type paymentFixture struct {
	svc      *PaymentSvc
	store    *fakePaymentStore
	users    *fakeUsers
	bookings *fakeBookingStore
	renderer *stubRenderer
}

func newPaymentFixture(t *testing.T, owner *domain.User) *paymentFixture {
	t.Helper()
	users := newFakeUsers(
		owner,
		&domain.User{ID: "renter-1", Name: "Ravi", Role: domain.RoleRenter},
	)
	bookings := newFakeBookingStore(&domain.Booking{
		ID:          "bk-1",
		PropertyID:  "prop-1",
		RenterID:    "renter-1",
		OwnerID:     owner.ID,
		Status:      domain.BookingConfirmed,
		TotalAmount: 25000,
	})
	store := newFakePaymentStore()
	renderer := &stubRenderer{}
	svc := NewPaymentSvc(store, bookings, users, renderer, zap.NewNop())
	return &paymentFixture{svc: svc, store: store, users: users, bookings: bookings, renderer: renderer}
}

func confirmedBooking(fx *paymentFixture) *domain.Booking {
	b, _ := fx.bookings.ByID(context.Background(), "bk-1")
	return b
}

func TestEnsurePayment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending record with a rendered artifact", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", Name: "Asha", Role: domain.RoleOwner, UPIID: "asha@upi"})

		p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, domain.PaymentPending, p.Status)
		assert.Equal(t, 25000.0, p.Amount)
		assert.Equal(t, "qr_code", p.PaymentMethod)
		assert.Contains(t, p.QRCodeURL, "asha@upi")
		assert.Equal(t, 1, fx.renderer.calls)
	})

	t.Run("requires a confirmed booking", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})
		b := confirmedBooking(fx)
		b.Status = domain.BookingPending

		_, err := fx.svc.EnsurePayment(ctx, b)
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})

	t.Run("returns the existing record untouched", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})

		first, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		second, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Len(t, fx.store.payments, 1)
	})

	t.Run("falls back to the owner phone number", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", Name: "Asha", Phone: "9876543210"})

		p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Contains(t, p.QRCodeURL, "9876543210@upi")
	})

	t.Run("skips silently when the owner cannot be paid", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", Name: "Asha"})

		p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		assert.Nil(t, p)
		assert.Empty(t, fx.store.payments)
	})

	t.Run("prefers the owner's uploaded artifact over rendering", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{
			ID: "owner-1", UPIID: "asha@upi",
			QRCodeURL: "https://cdn.test/owner-1/qr.png",
		})

		p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/owner-1/qr.png", p.QRCodeURL)
		assert.Zero(t, fx.renderer.calls)
	})

	t.Run("fires onCreated hooks for the new record only", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})
		rec := &recorder{}
		fx.svc.OnCreated(rec.paymentHook("created"))

		_, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		_, err = fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		assert.Equal(t, []string{"created"}, rec.calls)
	})
}

func TestCreateForBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses a duplicate", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})
		_, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)

		_, err = fx.svc.CreateForBooking(ctx, "bk-1")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})

	t.Run("refuses when the owner has no payment identifier", func(t *testing.T) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1"})

		_, err := fx.svc.CreateForBooking(ctx, "bk-1")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))
	})
}

func TestPaymentUpdateStatus(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*paymentFixture, string) {
		fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})
		p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
		require.NoError(t, err)
		return fx, p.ID
	}

	t.Run("completion hooks fire once", func(t *testing.T) {
		fx, id := setup(t)
		rec := &recorder{}
		fx.svc.OnCompleted(rec.paymentHook("completed"))

		v, err := fx.svc.UpdateStatus(ctx, "renter-1", id, domain.PaymentCompleted, "TXN-1", "")
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentCompleted, v.Status)
		assert.Equal(t, "TXN-1", v.TransactionID)

		// already completed: a second write must not re-fire
		_, err = fx.svc.UpdateStatus(ctx, "renter-1", id, domain.PaymentCompleted, "TXN-1", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"completed"}, rec.calls)
	})

	t.Run("rejects unknown statuses", func(t *testing.T) {
		fx, id := setup(t)
		_, err := fx.svc.UpdateStatus(ctx, "renter-1", id, "refunded", "", "")
		require.Error(t, err)
		assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
	})

	t.Run("strangers cannot touch the record", func(t *testing.T) {
		fx, id := setup(t)
		_, err := fx.svc.UpdateStatus(ctx, "stranger", id, domain.PaymentCompleted, "", "")
		require.Error(t, err)
		assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	})
}

func TestPaymentDelete(t *testing.T) {
	ctx := context.Background()

	fx := newPaymentFixture(t, &domain.User{ID: "owner-1", UPIID: "asha@upi"})
	p, err := fx.svc.EnsurePayment(ctx, confirmedBooking(fx))
	require.NoError(t, err)

	err = fx.svc.Delete(ctx, "renter-1", p.ID)
	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidOperation, domain.KindOf(err))

	_, err = fx.svc.UpdateStatus(ctx, "renter-1", p.ID, domain.PaymentCancelled, "", "")
	require.NoError(t, err)
	require.NoError(t, fx.svc.Delete(ctx, "renter-1", p.ID))

	_, err = fx.svc.ByID(ctx, "renter-1", p.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
