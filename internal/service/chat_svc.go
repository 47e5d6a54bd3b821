package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/krishhb1937/Bhada-Ma-Rental/internal/domain"
	"github.com/krishhb1937/Bhada-Ma-Rental/internal/repository"
)

type MessageStore interface {
	Create(ctx context.Context, m *domain.Message) error
	Between(ctx context.Context, propertyID, userA, userB string) ([]domain.Message, error)
	LastBetween(ctx context.Context, propertyID, userA, userB string) (*domain.Message, error)
	MarkRead(ctx context.Context, propertyID, senderID, receiverID string) (int64, error)
	CountUnread(ctx context.Context, receiverID string) (int64, error)
	ConversationHeads(ctx context.Context, userID string) ([]repository.ConversationHead, error)
}

type ChatSvc struct {
	repo    MessageStore
	users   UserDirectory
	catalog PropertyCatalog
	logger  *zap.Logger
}

func NewChatSvc(repo MessageStore, users UserDirectory, catalog PropertyCatalog, logger *zap.Logger) *ChatSvc {
	return &ChatSvc{repo: repo, users: users, catalog: catalog, logger: logger}
}

// Send validates, persists and returns the enriched message. Persistence
// happens before any broadcast the caller may do: a message peers see is
// always durable already.
func (s *ChatSvc) Send(ctx context.Context, senderID, receiverID, propertyID, text string) (*MessageView, error) {
	if senderID == "" || receiverID == "" || propertyID == "" {
		return nil, domain.ErrInvalidInput("missing required fields")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidInput("message cannot be empty")
	}
	if utf8.RuneCountInString(text) > domain.MaxMessageLen {
		return nil, domain.ErrInvalidInput("message too long (max %d characters)", domain.MaxMessageLen)
	}

	m := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		PropertyID: propertyID,
		Text:       text,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return s.enrich(ctx, m), nil
}

func (s *ChatSvc) History(ctx context.Context, callerID, propertyID, counterpartID string) ([]MessageView, error) {
	if propertyID == "" || counterpartID == "" {
		return nil, domain.ErrInvalidInput("invalid property or user id")
	}
	msgs, err := s.repo.Between(ctx, propertyID, callerID, counterpartID)
	if err != nil {
		return nil, err
	}
	refs := s.refsFor(ctx, callerID, counterpartID)
	out := make([]MessageView, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageView{
			Message:  m,
			Sender:   refs[m.SenderID],
			Receiver: refs[m.ReceiverID],
		})
	}
	return out, nil
}

// MarkRead flips everything the counterpart sent the caller in this thread.
// Returns how many rows changed; zero is not an error.
func (s *ChatSvc) MarkRead(ctx context.Context, callerID, propertyID, counterpartID string) (int64, error) {
	if propertyID == "" || counterpartID == "" {
		return 0, domain.ErrInvalidInput("invalid property or user id")
	}
	return s.repo.MarkRead(ctx, propertyID, counterpartID, callerID)
}

func (s *ChatSvc) UnreadCount(ctx context.Context, callerID string) (int64, error) {
	return s.repo.CountUnread(ctx, callerID)
}

// Conversations derives the caller's inbox: one row per counterpart+property
// pair, newest thread first.
func (s *ChatSvc) Conversations(ctx context.Context, callerID string) ([]ConversationView, error) {
	heads, err := s.repo.ConversationHeads(ctx, callerID)
	if err != nil {
		return nil, err
	}
	out := make([]ConversationView, 0, len(heads))
	for _, h := range heads {
		v := ConversationView{
			PropertyID:   h.PropertyID,
			MessageCount: h.MessageCount,
		}
		if u, err := s.users.ByID(ctx, h.CounterpartID); err == nil {
			v.Counterpart = u.Ref()
		} else {
			v.Counterpart = domain.UserRef{ID: h.CounterpartID}
		}
		if prop, err := s.catalog.ByID(ctx, h.PropertyID); err == nil {
			v.PropertyTitle = prop.Title
		}
		if last, err := s.repo.LastBetween(ctx, h.PropertyID, callerID, h.CounterpartID); err == nil {
			v.LastMessage = s.enrich(ctx, last)
		} else {
			s.logger.Warn("conversation head without last message",
				zap.String("user_id", callerID),
				zap.String("property_id", h.PropertyID),
				zap.Error(err))
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *ChatSvc) enrich(ctx context.Context, m *domain.Message) *MessageView {
	refs := s.refsFor(ctx, m.SenderID, m.ReceiverID)
	return &MessageView{
		Message:  *m,
		Sender:   refs[m.SenderID],
		Receiver: refs[m.ReceiverID],
	}
}

func (s *ChatSvc) refsFor(ctx context.Context, ids ...string) map[string]domain.UserRef {
	refs := make(map[string]domain.UserRef, len(ids))
	for _, id := range ids {
		if _, ok := refs[id]; ok {
			continue
		}
		if u, err := s.users.ByID(ctx, id); err == nil {
			refs[id] = u.Ref()
		} else {
			refs[id] = domain.UserRef{ID: id}
		}
	}
	return refs
}
