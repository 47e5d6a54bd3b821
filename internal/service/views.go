package service

import (
	"context"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

// Collaborator lookups shared across services. The concrete repositories
// satisfy these; services never reach into another entity's table directly.
type UserDirectory interface {
	ByID(ctx context.Context, id string) (*domain.User, error)
}

type PropertyCatalog interface {
	ByID(ctx context.Context, id string) (*domain.Property, error)
}

type BookingLookup interface {
	ByID(ctx context.Context, id string) (*domain.Booking, error)
}

// EventPublisher is the best-effort domain event sink (rabbitmq in prod).
type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Enriched response shapes. Embedded entities keep their own JSON fields;
// the extra display data rides alongside.

type BookingView struct {
	domain.Booking
	Property *domain.Property `json:"property,omitempty"`
	Renter   domain.UserRef   `json:"renter"`
	Owner    domain.UserRef   `json:"owner"`
}

type PaymentView struct {
	domain.Payment
	Booking *domain.Booking `json:"booking,omitempty"`
	Renter  domain.UserRef  `json:"renter"`
	Owner   domain.UserRef  `json:"owner"`
}

type NotificationView struct {
	domain.Notification
	SenderName    string `json:"sender_name,omitempty"`
	PropertyTitle string `json:"property_title,omitempty"`
}

type MessageView struct {
	domain.Message
	Sender   domain.UserRef `json:"sender"`
	Receiver domain.UserRef `json:"receiver"`
}

type ConversationView struct {
	Counterpart   domain.UserRef `json:"counterpart"`
	PropertyID    string         `json:"property_id"`
	PropertyTitle string         `json:"property_title"`
	LastMessage   *MessageView   `json:"last_message,omitempty"`
	MessageCount  int64          `json:"message_count"`
}
