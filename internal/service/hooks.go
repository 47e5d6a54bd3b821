package service

import (
	"context"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/events"
)

// Hook constructors. main wires these onto the services so the side
// effect chain is explicit in one place instead of buried in the
// individual methods.

func BookingRequestedHook(n *NotificationSvc) BookingHook {
	return BookingHook{
		Name: "notify_booking_requested",
		Run: func(ctx context.Context, b *domain.Booking) error {
			return n.NotifyBookingRequested(ctx, b)
		},
	}
}

func BookingDecidedHook(n *NotificationSvc) BookingHook {
	return BookingHook{
		Name: "notify_booking_decided",
		Run: func(ctx context.Context, b *domain.Booking) error {
			return n.NotifyBookingDecided(ctx, b)
		},
	}
}

// PaymentAutoCreateHook provisions the payment record the moment a
// booking is confirmed. Rejections pass through untouched.
func PaymentAutoCreateHook(p *PaymentSvc) BookingHook {
	return BookingHook{
		Name: "auto_create_payment",
		Run: func(ctx context.Context, b *domain.Booking) error {
			if b.Status != domain.BookingConfirmed {
				return nil
			}
			_, err := p.EnsurePayment(ctx, b)
			return err
		},
	}
}

// BookingRequestedEventHook publishes booking.requested. Safe to wire
// with a nil publisher (standalone deployments without rabbitmq).
func BookingRequestedEventHook(pub EventPublisher) BookingHook {
	return BookingHook{
		Name: "publish_booking_requested",
		Run: func(ctx context.Context, b *domain.Booking) error {
			if pub == nil {
				return nil
			}
			return pub.PublishJSON(ctx, events.RKBookingRequested, events.BookingRequested{
				BookingID:  b.ID,
				PropertyID: b.PropertyID,
				RenterID:   b.RenterID,
				OwnerID:    b.OwnerID,
				Amount:     b.TotalAmount,
				MoveIn:     b.MoveInDate.Unix(),
			})
		},
	}
}

func BookingDecidedEventHook(pub EventPublisher) BookingHook {
	return BookingHook{
		Name: "publish_booking_decided",
		Run: func(ctx context.Context, b *domain.Booking) error {
			if pub == nil {
				return nil
			}
			key := events.RKBookingRejected
			if b.Status == domain.BookingConfirmed {
				key = events.RKBookingConfirmed
			}
			return pub.PublishJSON(ctx, key, events.BookingDecided{
				BookingID:  b.ID,
				PropertyID: b.PropertyID,
				Status:     string(b.Status),
			})
		},
	}
}

func PaymentCreatedEventHook(pub EventPublisher) PaymentHook {
	return PaymentHook{
		Name: "publish_payment_created",
		Run: func(ctx context.Context, p *domain.Payment) error {
			if pub == nil {
				return nil
			}
			return pub.PublishJSON(ctx, events.RKPaymentCreated, events.PaymentCreated{
				PaymentID: p.ID,
				BookingID: p.BookingID,
				Amount:    p.Amount,
			})
		},
	}
}

func PaymentCompletedNotifyHook(n *NotificationSvc) PaymentHook {
	return PaymentHook{
		Name: "notify_payment_completed",
		Run: func(ctx context.Context, p *domain.Payment) error {
			return n.NotifyPaymentCompleted(ctx, p)
		},
	}
}

func PaymentCompletedEventHook(pub EventPublisher) PaymentHook {
	return PaymentHook{
		Name: "publish_payment_completed",
		Run: func(ctx context.Context, p *domain.Payment) error {
			if pub == nil {
				return nil
			}
			return pub.PublishJSON(ctx, events.RKPaymentCompleted, events.PaymentCompleted{
				PaymentID:     p.ID,
				BookingID:     p.BookingID,
				Amount:        p.Amount,
				TransactionID: p.TransactionID,
			})
		},
	}
}
