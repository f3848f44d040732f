package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

type memorySymptomRepository struct {
	mu      sync.RWMutex
	catalog entity.SymptomCatalog
	byID    map[string]int // index into catalog.Symptoms
}

// NewMemorySymptomRepository in-memory catalog seeded with initial
func NewMemorySymptomRepository(initial entity.SymptomCatalog) (repository.SymptomRepository, error) {
	m := &memorySymptomRepository{}
	if err := m.replace(initial); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID ...
func (m *memorySymptomRepository) GetByID(ctx context.Context, id string) (*entity.Symptom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	idx, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("symptom %q: %w", id, repository.ErrNotFound)
	}
	s := m.catalog.Symptoms[idx]
	return &s, nil
}

// GetAll ...
func (m *memorySymptomRepository) GetAll(ctx context.Context) ([]entity.Symptom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]entity.Symptom, len(m.catalog.Symptoms))
	copy(out, m.catalog.Symptoms)
	return out, nil
}

// Filter ...
func (m *memorySymptomRepository) Filter(ctx context.Context, filter entity.SymptomFilter) ([]entity.Symptom, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return entity.FilterSymptoms(m.catalog.Symptoms, filter), nil
}

// Categories ...
func (m *memorySymptomRepository) Categories(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return entity.CategoriesOf(m.catalog.Symptoms), nil
}

// UpdateCatalog the old catalog stays in place if the new one is rejected
func (m *memorySymptomRepository) UpdateCatalog(ctx context.Context, catalog entity.SymptomCatalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.replace(catalog)
}

// GetCatalog ...
func (m *memorySymptomRepository) GetCatalog(ctx context.Context) (*entity.SymptomCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.catalog
	c.Symptoms = make([]entity.Symptom, len(m.catalog.Symptoms))
	copy(c.Symptoms, m.catalog.Symptoms)
	return &c, nil
}

// replace caller holds the write lock (or owns m exclusively)
func (m *memorySymptomRepository) replace(catalog entity.SymptomCatalog) error {
	if len(catalog.Symptoms) == 0 {
		return fmt.Errorf("catalog %q has no symptoms", catalog.Source)
	}

	byID := make(map[string]int, len(catalog.Symptoms))
	symptoms := make([]entity.Symptom, len(catalog.Symptoms))
	for i, s := range catalog.Symptoms {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("catalog %q: symptom #%d needs both id and name", catalog.Source, i+1)
		}
		if _, dup := byID[s.ID]; dup {
			return fmt.Errorf("catalog %q: duplicate symptom id %q", catalog.Source, s.ID)
		}
		byID[s.ID] = i
		symptoms[i] = s
	}

	catalog.Symptoms = symptoms
	m.catalog = catalog
	m.byID = byID
	return nil
}
