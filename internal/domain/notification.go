package domain

import "time"

type NotificationType string

const (
	NotifyPaymentCompleted  NotificationType = "payment_completed"
	NotifyBookingConfirmed  NotificationType = "booking_confirmed"
	NotifyBookingRejected   NotificationType = "booking_rejected"
	NotifyNewMessage        NotificationType = "new_message"
	NotifyNewBookingRequest NotificationType = "new_booking_request"
)

// Notification is a recipient mailbox entry. Which related ids are populated
// depends on the type; that is convention, not enforced here.
type Notification struct {
	ID          string           `gorm:"primaryKey" json:"id"`
	RecipientID string           `gorm:"index" json:"recipient_id"`
	SenderID    string           `json:"sender_id,omitempty"`
	Type        NotificationType `json:"type"`
	Title       string           `json:"title"`
	Message     string           `json:"message"`

	RelatedBookingID  string `json:"related_booking_id,omitempty"`
	RelatedPaymentID  string `json:"related_payment_id,omitempty"`
	RelatedPropertyID string `json:"related_property_id,omitempty"`

	IsRead    bool      `gorm:"index" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}
