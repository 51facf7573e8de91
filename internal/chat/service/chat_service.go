package service

import (
	"context"
	"log"

	"gotalk/internal/chat/registry"
	"gotalk/internal/chat/repository"
	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
)

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	SendMessage(ctx context.Context, senderID uint64, msg *dbmysql.Message) (*dbmysql.Message, registry.Outcome, error)
	History(ctx context.Context, userID, otherID uint64, limit int) ([]*dbmysql.Message, error)
	Conversations(ctx context.Context, userID uint64) ([]*dbmysql.User, error)
}

// Deliverer is the fan-out side of a send, satisfied by the connection
// registry.
type Deliverer interface {
	Deliver(msg *dbmysql.Message) registry.Outcome
}

type chatService struct {
	repo      repository.ChatRepository
	deliverer Deliverer
}

// Constructor used in DI/wire
func NewChatService(r repository.ChatRepository, d Deliverer) ChatService {
	return &chatService{repo: r, deliverer: d}
}

// SendMessage runs a send end to end: authorize, validate, persist, fan out.
// A message counts as sent once it is durably stored; the fan-out outcome is
// reported but never fails the send.
func (s *chatService) SendMessage(ctx context.Context, senderID uint64, msg *dbmysql.Message) (*dbmysql.Message, registry.Outcome, error) {
	// The claimed sender must be the verified identity, otherwise anyone
	// could spoof the from field. Fails closed before touching the store.
	if msg.FromUserID != senderID {
		return nil, registry.NoChannel, common.ErrUnauthorizedSender
	}

	if err := validateMessage(msg); err != nil {
		return nil, registry.NoChannel, err
	}

	saved, err := s.repo.Append(ctx, msg)
	if err != nil {
		// No partial state to clean up, nothing was fanned out yet.
		return nil, registry.NoChannel, err
	}

	outcome := s.deliverer.Deliver(saved)
	if outcome == registry.NoChannel {
		log.Printf("recipient %d offline, message %d stored only", saved.ToUserID, saved.ID)
	}

	return saved, outcome, nil
}

// History returns the recent messages between userID and otherID, newest
// first. limit <= 0 falls back to the repository default.
func (s *chatService) History(ctx context.Context, userID, otherID uint64, limit int) ([]*dbmysql.Message, error) {
	return s.repo.RecentBetween(ctx, userID, otherID, limit)
}

// Conversations lists every user the given user has a message thread with.
func (s *chatService) Conversations(ctx context.Context, userID uint64) ([]*dbmysql.User, error) {
	return s.repo.Partners(ctx, userID)
}

func validateMessage(msg *dbmysql.Message) error {
	if msg.ToUserID == 0 {
		return &common.ValidationError{Reason: "recipient is required"}
	}

	msgType := common.MessageType(msg.MessageType)
	if !msgType.IsValid() {
		return &common.ValidationError{Reason: "unknown message type"}
	}
	if msgType == common.MessageTypeText && msg.Content == "" {
		return &common.ValidationError{Reason: "message content cannot be empty"}
	}
	if msgType.IsMedia() && msg.MediaRef == "" {
		return &common.ValidationError{Reason: "media message requires a media reference"}
	}

	return nil
}
