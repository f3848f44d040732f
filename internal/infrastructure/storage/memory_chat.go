package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type memoryChatRepository struct {
	mu       sync.RWMutex
	contexts map[int64]*entity.ChatContext
	maxSize  int
}

// NewMemoryChatRepository in-memory transcripts; maxContextSize <= 0 keeps everything
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		contexts: make(map[int64]*entity.ChatContext),
		maxSize:  maxContextSize,
	}
}

// SaveMessage ...
func (m *memoryChatRepository) SaveMessage(ctx context.Context, message entity.ChatMessage) error {
	if !message.Sender.Valid() {
		return fmt.Errorf("invalid sender %q", message.Sender)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	chatCtx, exists := m.contexts[message.UserID]
	if !exists {
		chatCtx = &entity.ChatContext{UserID: message.UserID}
		m.contexts[message.UserID] = chatCtx
	}

	chatCtx.Messages = append(chatCtx.Messages, message)
	chatCtx.LastUsed = time.Now()

	if m.maxSize > 0 && len(chatCtx.Messages) > m.maxSize {
		trimmed := make([]entity.ChatMessage, m.maxSize)
		copy(trimmed, chatCtx.Messages[len(chatCtx.Messages)-m.maxSize:])
		chatCtx.Messages = trimmed
	}

	return nil
}

// SeedMessage ...
func (m *memoryChatRepository) SeedMessage(ctx context.Context, message entity.ChatMessage) (bool, error) {
	if !message.Sender.Valid() {
		return false, fmt.Errorf("invalid sender %q", message.Sender)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if chatCtx, exists := m.contexts[message.UserID]; exists && len(chatCtx.Messages) > 0 {
		return false, nil
	}

	m.contexts[message.UserID] = &entity.ChatContext{
		UserID:   message.UserID,
		Messages: []entity.ChatMessage{message},
		LastUsed: time.Now(),
	}
	return true, nil
}

// GetHistory ...
func (m *memoryChatRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chatCtx, exists := m.contexts[userID]
	if !exists {
		return []entity.ChatMessage{}, nil
	}

	messages := chatCtx.Messages
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}

	out := make([]entity.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

// GetAllMessages ...
func (m *memoryChatRepository) GetAllMessages(ctx context.Context, limit int) ([]entity.ChatMessage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []entity.ChatMessage
	for _, c := range m.contexts {
		all = append(all, c.Messages...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

// ClearHistory ...
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.contexts, userID)
	return nil
}

// ClearAll ...
func (m *memoryChatRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.contexts = make(map[int64]*entity.ChatContext)
	return nil
}

// GetContext ...
func (m *memoryChatRepository) GetContext(ctx context.Context, userID int64) (*entity.ChatContext, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chatCtx, exists := m.contexts[userID]
	if !exists {
		return nil, fmt.Errorf("chat context for user %d: %w", userID, repository.ErrNotFound)
	}

	out := *chatCtx
	out.Messages = make([]entity.ChatMessage, len(chatCtx.Messages))
	copy(out.Messages, chatCtx.Messages)
	return &out, nil
}
