package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type memoryPredictionRepository struct {
	mu     sync.RWMutex
	byID   map[string]entity.Prediction
	byUser map[int64][]string // prediction ids in insertion order
}

// NewMemoryPredictionRepository in-memory symptom check history
func NewMemoryPredictionRepository() repository.PredictionRepository {
	return &memoryPredictionRepository{
		byID:   make(map[string]entity.Prediction),
		byUser: make(map[int64][]string),
	}
}

// Save ...
func (m *memoryPredictionRepository) Save(ctx context.Context, prediction entity.Prediction) error {
	if prediction.ID == "" {
		return fmt.Errorf("prediction without id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byID[prediction.ID]; !exists {
		m.byUser[prediction.UserID] = append(m.byUser[prediction.UserID], prediction.ID)
	}
	m.byID[prediction.ID] = prediction
	return nil
}

// GetByID ...
func (m *memoryPredictionRepository) GetByID(ctx context.Context, id string) (*entity.Prediction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("prediction %q: %w", id, repository.ErrNotFound)
	}
	return &p, nil
}

// ListByUser ...
func (m *memoryPredictionRepository) ListByUser(ctx context.Context, userID int64) ([]entity.Prediction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := m.byUser[userID]
	out := make([]entity.Prediction, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, m.byID[ids[i]])
	}

	// insertion order already newest first; dates only break real inversions
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

// ClearAll ...
func (m *memoryPredictionRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.byID = make(map[string]entity.Prediction)
	m.byUser = make(map[int64][]string)
	return nil
}
