package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

var (
	// ErrNoSymptoms a check needs at least one symptom
	ErrNoSymptoms = errors.New("no symptoms selected")
	// ErrUnknownSymptom a selected id is not in the catalog
	ErrUnknownSymptom = errors.New("unknown symptom")
)

// PredictionUseCase symptom checks and their history
type PredictionUseCase interface {
	// Predict returns the mock result for the selected symptoms and stores it
	Predict(ctx context.Context, userID int64, symptomIDs []string) (*entity.Prediction, error)

	Get(ctx context.Context, id string) (*entity.Prediction, error)

	// History newest first
	History(ctx context.Context, userID int64, filter entity.HistoryFilter) ([]entity.Prediction, error)

	Stats(ctx context.Context, userID int64) (entity.HistoryStats, error)

	// ExportReport xlsx of the user's whole history
	ExportReport(ctx context.Context, userID int64) ([]byte, error)
}

type predictionUseCase struct {
	predictionRepo repository.PredictionRepository
	symptomRepo    repository.SymptomRepository
	reportWriter   repository.ReportWriter
	template       func() entity.Prediction
	now            Clock
}

// NewPredictionUseCase template must return a fresh value on every call
func NewPredictionUseCase(
	predictionRepo repository.PredictionRepository,
	symptomRepo repository.SymptomRepository,
	reportWriter repository.ReportWriter,
	template func() entity.Prediction,
	now Clock,
) PredictionUseCase {
	return &predictionUseCase{
		predictionRepo: predictionRepo,
		symptomRepo:    symptomRepo,
		reportWriter:   reportWriter,
		template:       template,
		now:            clockOrDefault(now),
	}
}

// Predict the result never depends on which symptoms were chosen
func (u *predictionUseCase) Predict(ctx context.Context, userID int64, symptomIDs []string) (*entity.Prediction, error) {
	selected := dedupe(symptomIDs)
	if len(selected) == 0 {
		return nil, ErrNoSymptoms
	}
	for _, id := range selected {
		if _, err := u.symptomRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownSymptom, id)
			}
			return nil, err
		}
	}

	prediction := u.template()
	prediction.ID = uuid.New().String()
	prediction.UserID = userID
	prediction.Symptoms = selected
	prediction.Date = u.now()

	if err := u.predictionRepo.Save(ctx, prediction); err != nil {
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}
	return &prediction, nil
}

// Get ...
func (u *predictionUseCase) Get(ctx context.Context, id string) (*entity.Prediction, error) {
	return u.predictionRepo.GetByID(ctx, id)
}

// History ...
func (u *predictionUseCase) History(ctx context.Context, userID int64, filter entity.HistoryFilter) ([]entity.Prediction, error) {
	all, err := u.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	result := make([]entity.Prediction, 0, len(all))
	for _, p := range all {
		if filter.Matches(p, now) {
			result = append(result, p)
		}
	}
	return result, nil
}

// Stats most common and average are taken over each check's top disease
func (u *predictionUseCase) Stats(ctx context.Context, userID int64) (entity.HistoryStats, error) {
	all, err := u.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return entity.HistoryStats{}, err
	}

	stats := entity.HistoryStats{TotalChecks: len(all)}
	counts := make(map[string]int)
	var sum float64
	var withTop int
	best := 0
	// scanned newest first; a tie keeps the current leader
	for _, p := range all {
		top, ok := p.TopDisease()
		if !ok {
			continue
		}
		withTop++
		sum += top.Confidence
		counts[top.Name]++
		if counts[top.Name] > best {
			best = counts[top.Name]
			stats.MostCommon = top.Name
		}
	}
	if withTop > 0 {
		stats.AverageConfidence = int(math.Round(sum / float64(withTop) * 100))
	}
	return stats, nil
}

// ExportReport ...
func (u *predictionUseCase) ExportReport(ctx context.Context, userID int64) ([]byte, error) {
	all, err := u.predictionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	symptoms, err := u.symptomRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(symptoms))
	for _, s := range symptoms {
		names[s.ID] = s.Name
	}

	return u.reportWriter.WriteHistory(ctx, all, names)
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
