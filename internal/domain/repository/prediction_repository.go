package repository

import (
	"context"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// PredictionRepository symptom check history
type PredictionRepository interface {
	Save(ctx context.Context, prediction entity.Prediction) error

	// GetByID ErrNotFound when missing
	GetByID(ctx context.Context, id string) (*entity.Prediction, error)

	// ListByUser newest first
	ListByUser(ctx context.Context, userID int64) ([]entity.Prediction, error)

	ClearAll(ctx context.Context) error
}
