package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

// AdminSessionTTL idle time after which an admin has to log in again
const AdminSessionTTL = 24 * time.Hour

type memoryAdminRepository struct {
	mu       sync.RWMutex
	sessions map[int64]entity.AdminSession
	actions  []entity.AdminAction
	now      func() time.Time
}

// NewMemoryAdminRepository in-memory admin sessions
func NewMemoryAdminRepository(now func() time.Time) repository.AdminRepository {
	if now == nil {
		now = time.Now
	}
	return &memoryAdminRepository{
		sessions: make(map[int64]entity.AdminSession),
		now:      now,
	}
}

// CreateSession ...
func (m *memoryAdminRepository) CreateSession(ctx context.Context, session entity.AdminSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session.LastActivity = m.now()
	m.sessions[session.UserID] = session
	return nil
}

// GetSession ...
func (m *memoryAdminRepository) GetSession(ctx context.Context, userID int64) (*entity.AdminSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return nil, fmt.Errorf("admin session for user %d: %w", userID, repository.ErrNotFound)
	}
	return &session, nil
}

// DeleteSession ...
func (m *memoryAdminRepository) DeleteSession(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// IsAdmin ...
func (m *memoryAdminRepository) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, exists := m.sessions[userID]
	if !exists {
		return false, nil
	}
	if m.now().Sub(session.LastActivity) > AdminSessionTTL {
		return false, nil
	}
	return session.IsAdmin, nil
}

// Touch ...
func (m *memoryAdminRepository) Touch(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, exists := m.sessions[userID]
	if !exists {
		return fmt.Errorf("admin session for user %d: %w", userID, repository.ErrNotFound)
	}
	session.LastActivity = m.now()
	m.sessions[userID] = session
	return nil
}

// LogAction ...
func (m *memoryAdminRepository) LogAction(ctx context.Context, action entity.AdminAction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actions = append(m.actions, action)
	return nil
}

// Actions ...
func (m *memoryAdminRepository) Actions(ctx context.Context, limit int) ([]entity.AdminAction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.AdminAction, 0, len(m.actions))
	for i := len(m.actions) - 1; i >= 0; i-- {
		out = append(out, m.actions[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
