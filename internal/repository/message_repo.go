package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
)

type MessageRepo struct{ db *gorm.DB }

func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Message{})
}

func (r *MessageRepo) Create(ctx context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.SentAt.IsZero() {
		m.SentAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// Between returns the full thread for a property between two users, oldest
// first.
func (r *MessageRepo) Between(ctx context.Context, propertyID, userA, userB string) ([]domain.Message, error) {
	var out []domain.Message
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("sent_at ASC").
		Find(&out).Error
	return out, err
}

// LastBetween returns the newest message of the thread.
func (r *MessageRepo) LastBetween(ctx context.Context, propertyID, userA, userB string) (*domain.Message, error) {
	var m domain.Message
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("sent_at DESC").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkRead flips every unread message sent by senderID to receiverID for the
// property. Idempotent: nothing unread updates zero rows.
func (r *MessageRepo) MarkRead(ctx context.Context, propertyID, senderID, receiverID string) (int64, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("property_id = ? AND sender_id = ? AND receiver_id = ? AND is_read = ?",
			propertyID, senderID, receiverID, false).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}

func (r *MessageRepo) CountUnread(ctx context.Context, receiverID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_id = ? AND is_read = ?", receiverID, false).
		Count(&n).Error
	return n, err
}

// ConversationHead is one inbox row: the counterpart+property pair with the
// group's message count and the newest message time.
type ConversationHead struct {
	CounterpartID string    `json:"counterpart_id"`
	PropertyID    string    `json:"property_id"`
	MessageCount  int64     `json:"message_count"`
	LastSentAt    time.Time `json:"last_sent_at"`
}

func (r *MessageRepo) ConversationHeads(ctx context.Context, userID string) ([]ConversationHead, error) {
	var out []ConversationHead
	err := r.db.WithContext(ctx).Raw(`
		SELECT CASE WHEN sender_id = @uid THEN receiver_id ELSE sender_id END AS counterpart_id,
		       property_id,
		       COUNT(*)       AS message_count,
		       MAX(sent_at)   AS last_sent_at
		FROM messages
		WHERE sender_id = @uid OR receiver_id = @uid
		GROUP BY counterpart_id, property_id
		ORDER BY last_sent_at DESC`,
		map[string]any{"uid": userID},
	).Scan(&out).Error
	return out, err
}
