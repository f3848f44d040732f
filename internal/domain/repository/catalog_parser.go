package repository

import (
	"context"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

// CatalogParser reads a symptom catalog from a spreadsheet
type CatalogParser interface {
	// ParseSymptoms read from a file on disk
	ParseSymptoms(ctx context.Context, filePath string) ([]entity.Symptom, error)

	// ParseSymptomsFromBytes read from an uploaded file
	ParseSymptomsFromBytes(ctx context.Context, data []byte, filename string) ([]entity.Symptom, error)
}

// ReportWriter renders spreadsheets for download
type ReportWriter interface {
	// WriteHistory one row per prediction; names maps symptom ids to display names
	WriteHistory(ctx context.Context, predictions []entity.Prediction, names map[string]string) ([]byte, error)

	// WriteCatalog catalog in the layout CatalogParser reads back
	WriteCatalog(ctx context.Context, symptoms []entity.Symptom) ([]byte, error)
}
