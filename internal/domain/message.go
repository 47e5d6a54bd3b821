package domain

import "time"

// MaxMessageLen bounds chat message text, measured after trimming.
const MaxMessageLen = 1000

// Message is one chat line. Every conversation is scoped to exactly one
// property, so (sender, receiver, property) identifies the thread.
type Message struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SenderID   string    `gorm:"index" json:"sender_id"`
	ReceiverID string    `gorm:"index" json:"receiver_id"`
	PropertyID string    `gorm:"index" json:"property_id"`
	Text       string    `json:"text"`
	SentAt     time.Time `gorm:"index" json:"sent_at"`
	IsRead     bool      `gorm:"index" json:"is_read"`
}
