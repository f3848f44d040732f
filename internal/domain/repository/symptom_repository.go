package repository

import (
	"context"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// SymptomRepository symptom catalog storage
type SymptomRepository interface {
	// GetByID ErrNotFound when the id is not in the catalog
	GetByID(ctx context.Context, id string) (*entity.Symptom, error)

	// GetAll whole catalog in catalog order
	GetAll(ctx context.Context) ([]entity.Symptom, error)

	// Filter symptoms matching the search term and category
	Filter(ctx context.Context, filter entity.SymptomFilter) ([]entity.Symptom, error)

	// Categories distinct categories in catalog order
	Categories(ctx context.Context) ([]string, error)

	// UpdateCatalog replace the whole catalog
	UpdateCatalog(ctx context.Context, catalog entity.SymptomCatalog) error

	// GetCatalog current catalog with metadata
	GetCatalog(ctx context.Context) (*entity.SymptomCatalog, error)
}
