package service

import (
	"context"
	"fmt"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

type NotificationStore interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, limit int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) (bool, error)
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
	Delete(ctx context.Context, recipientID, id string) (bool, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
}

const notificationPageLimit = 50

type NotificationSvc struct {
	repo     NotificationStore
	users    UserDirectory
	catalog  PropertyCatalog
	bookings BookingLookup
}

func NewNotificationSvc(repo NotificationStore, users UserDirectory, catalog PropertyCatalog, bookings BookingLookup) *NotificationSvc {
	return &NotificationSvc{repo: repo, users: users, catalog: catalog, bookings: bookings}
}

// Dispatch writes one mailbox entry. Callers treat failures as best-effort:
// they log and move on, they never bubble it into the primary operation.
func (s *NotificationSvc) Dispatch(ctx context.Context, n *domain.Notification) error {
	if n.RecipientID == "" {
		return domain.ErrInvalidInput("notification recipient is required")
	}
	return s.repo.Create(ctx, n)
}

func (s *NotificationSvc) NotifyBookingRequested(ctx context.Context, b *domain.Booking) error {
	prop, err := s.catalog.ByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	renter, err := s.users.ByID(ctx, b.RenterID)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, &domain.Notification{
		RecipientID:       b.OwnerID,
		SenderID:          b.RenterID,
		Type:              domain.NotifyNewBookingRequest,
		Title:             "New Booking Request",
		Message:           fmt.Sprintf("%s has requested to book %s", renter.Name, prop.Title),
		RelatedBookingID:  b.ID,
		RelatedPropertyID: b.PropertyID,
	})
}

// NotifyBookingDecided tells the renter how the owner decided.
func (s *NotificationSvc) NotifyBookingDecided(ctx context.Context, b *domain.Booking) error {
	prop, err := s.catalog.ByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	owner, err := s.users.ByID(ctx, b.OwnerID)
	if err != nil {
		return err
	}

	var (
		typ   domain.NotificationType
		title string
		verb  string
	)
	switch b.Status {
	case domain.BookingConfirmed:
		typ, title, verb = domain.NotifyBookingConfirmed, "Booking Confirmed", "confirmed"
	case domain.BookingRejected:
		typ, title, verb = domain.NotifyBookingRejected, "Booking Rejected", "rejected"
	default:
		return domain.ErrInvalidOperation("booking %s is not decided", b.ID)
	}

	return s.Dispatch(ctx, &domain.Notification{
		RecipientID:       b.RenterID,
		SenderID:          b.OwnerID,
		Type:              typ,
		Title:             title,
		Message:           fmt.Sprintf("Your booking for %s has been %s by %s", prop.Title, verb, owner.Name),
		RelatedBookingID:  b.ID,
		RelatedPropertyID: b.PropertyID,
	})
}

func (s *NotificationSvc) NotifyPaymentCompleted(ctx context.Context, p *domain.Payment) error {
	b, err := s.bookings.ByID(ctx, p.BookingID)
	if err != nil {
		return err
	}
	prop, err := s.catalog.ByID(ctx, b.PropertyID)
	if err != nil {
		return err
	}
	renter, err := s.users.ByID(ctx, p.RenterID)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, &domain.Notification{
		RecipientID:       p.OwnerID,
		SenderID:          p.RenterID,
		Type:              domain.NotifyPaymentCompleted,
		Title:             "Payment Completed",
		Message:           fmt.Sprintf("%s has completed the payment of ₹%.0f for %s", renter.Name, p.Amount, prop.Title),
		RelatedBookingID:  b.ID,
		RelatedPaymentID:  p.ID,
		RelatedPropertyID: b.PropertyID,
	})
}

func (s *NotificationSvc) ListForUser(ctx context.Context, userID string) ([]NotificationView, error) {
	ns, err := s.repo.ListByRecipient(ctx, userID, notificationPageLimit)
	if err != nil {
		return nil, err
	}
	out := make([]NotificationView, 0, len(ns))
	for _, n := range ns {
		v := NotificationView{Notification: n}
		if n.SenderID != "" {
			if sender, err := s.users.ByID(ctx, n.SenderID); err == nil {
				v.SenderName = sender.Name
			}
		}
		if n.RelatedPropertyID != "" {
			if prop, err := s.catalog.ByID(ctx, n.RelatedPropertyID); err == nil {
				v.PropertyTitle = prop.Title
			}
		}
		out = append(out, v)
	}
	return out, nil
}

// MarkRead reports not_found for ids belonging to another recipient, so the
// response does not leak whether the notification exists at all.
func (s *NotificationSvc) MarkRead(ctx context.Context, userID, id string) error {
	ok, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("notification not found")
	}
	return nil
}

func (s *NotificationSvc) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *NotificationSvc) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound("notification not found")
	}
	return nil
}

func (s *NotificationSvc) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}
