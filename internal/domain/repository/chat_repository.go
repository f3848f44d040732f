package repository

import (
	"context"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// ChatRepository conversation transcript storage
type ChatRepository interface {
	// SaveMessage append a message to the user's transcript
	SaveMessage(ctx context.Context, message entity.ChatMessage) error

	// SeedMessage saves message only while the user's transcript is empty;
	// false means another message got there first
	SeedMessage(ctx context.Context, message entity.ChatMessage) (bool, error)

	// GetHistory oldest first; limit <= 0 returns everything kept
	GetHistory(ctx context.Context, userID int64, limit int) ([]entity.ChatMessage, error)

	// GetAllMessages newest first across all users
	GetAllMessages(ctx context.Context, limit int) ([]entity.ChatMessage, error)

	// ClearHistory drop one user's transcript
	ClearHistory(ctx context.Context, userID int64) error

	// ClearAll drop every transcript
	ClearAll(ctx context.Context) error

	// GetContext ErrNotFound when the user has no messages
	GetContext(ctx context.Context, userID int64) (*entity.ChatContext, error)
}
