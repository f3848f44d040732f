package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

// ChatUseCase conversations with the health assistant
type ChatUseCase interface {
	// Send stores the user's message and the assistant reply. Blank text is
	// ignored and returns a nil reply.
	Send(ctx context.Context, userID int64, text string) (*entity.ChatMessage, error)

	// History the conversation, starting with the greeting
	History(ctx context.Context, userID int64) ([]entity.ChatMessage, error)

	// Clear restart the conversation from the greeting
	Clear(ctx context.Context, userID int64) error

	// Export plain-text transcript
	Export(ctx context.Context, userID int64) (string, error)

	// GetAllMessages newest first across users (admin view)
	GetAllMessages(ctx context.Context, limit int) ([]entity.ChatMessage, error)
}

type chatUseCase struct {
	responder repository.Responder
	chatRepo  repository.ChatRepository
	greeting  string
	location  *time.Location
	now       Clock
}

// NewChatUseCase ...
func NewChatUseCase(
	responder repository.Responder,
	chatRepo repository.ChatRepository,
	greeting string,
	location *time.Location,
	now Clock,
) ChatUseCase {
	if location == nil {
		location = time.Local
	}
	return &chatUseCase{
		responder: responder,
		chatRepo:  chatRepo,
		greeting:  greeting,
		location:  location,
		now:       clockOrDefault(now),
	}
}

// Send ...
func (u *chatUseCase) Send(ctx context.Context, userID int64, text string) (*entity.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if _, err := u.History(ctx, userID); err != nil {
		return nil, err
	}

	if err := u.save(ctx, userID, entity.SenderUser, text); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	reply := u.responder.Respond(text)
	msg := u.message(userID, entity.SenderBot, reply)
	if err := u.chatRepo.SaveMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	log.WithFields(log.Fields{
		"user_id": userID,
		"in_len":  len(text),
	}).Debug("chat reply sent")

	return &msg, nil
}

// History seeds the greeting for users without a conversation
func (u *chatUseCase) History(ctx context.Context, userID int64) ([]entity.ChatMessage, error) {
	history, err := u.chatRepo.GetHistory(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	if len(history) > 0 || u.greeting == "" {
		return history, nil
	}

	greeting := u.message(userID, entity.SenderBot, u.greeting)
	seeded, err := u.chatRepo.SeedMessage(ctx, greeting)
	if err != nil {
		return nil, fmt.Errorf("failed to save greeting: %w", err)
	}
	if !seeded {
		// a concurrent update for this user started the conversation
		history, err = u.chatRepo.GetHistory(ctx, userID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to get history: %w", err)
		}
		return history, nil
	}
	return []entity.ChatMessage{greeting}, nil
}

// Clear ...
func (u *chatUseCase) Clear(ctx context.Context, userID int64) error {
	if err := u.chatRepo.ClearHistory(ctx, userID); err != nil {
		return err
	}
	_, err := u.History(ctx, userID)
	return err
}

// Export ...
func (u *chatUseCase) Export(ctx context.Context, userID int64) (string, error) {
	history, err := u.History(ctx, userID)
	if err != nil {
		return "", err
	}
	return FormatTranscript(history, u.location), nil
}

// GetAllMessages ...
func (u *chatUseCase) GetAllMessages(ctx context.Context, limit int) ([]entity.ChatMessage, error) {
	return u.chatRepo.GetAllMessages(ctx, limit)
}

func (u *chatUseCase) save(ctx context.Context, userID int64, sender entity.Sender, text string) error {
	return u.chatRepo.SaveMessage(ctx, u.message(userID, sender, text))
}

func (u *chatUseCase) message(userID int64, sender entity.Sender, text string) entity.ChatMessage {
	return entity.ChatMessage{
		ID:        uuid.New().String(),
		UserID:    userID,
		Sender:    sender,
		Text:      text,
		Timestamp: u.now(),
	}
}
