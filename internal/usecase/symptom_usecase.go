package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
)

// SymptomUseCase browsing the symptom catalog
type SymptomUseCase interface {
	// Filter search term and category, both optional
	Filter(ctx context.Context, search, category string) ([]entity.Symptom, error)

	// GetByID repository.ErrNotFound when missing
	GetByID(ctx context.Context, id string) (*entity.Symptom, error)

	Categories(ctx context.Context) ([]string, error)

	// Names display names for ids; unknown ids map to themselves
	Names(ctx context.Context, ids []string) ([]string, error)

	// NameIndex id -> name for the whole catalog
	NameIndex(ctx context.Context) (map[string]string, error)

	// GetSymptomsAsText catalog grouped by category, one "id - name" per line
	GetSymptomsAsText(ctx context.Context, category string) (string, error)
}

type symptomUseCase struct {
	symptomRepo repository.SymptomRepository
}

// NewSymptomUseCase ...
func NewSymptomUseCase(symptomRepo repository.SymptomRepository) SymptomUseCase {
	return &symptomUseCase{symptomRepo: symptomRepo}
}

// Filter ...
func (u *symptomUseCase) Filter(ctx context.Context, search, category string) ([]entity.Symptom, error) {
	return u.symptomRepo.Filter(ctx, entity.SymptomFilter{
		Search:   strings.TrimSpace(search),
		Category: strings.TrimSpace(category),
	})
}

// GetByID ...
func (u *symptomUseCase) GetByID(ctx context.Context, id string) (*entity.Symptom, error) {
	return u.symptomRepo.GetByID(ctx, id)
}

// Categories ...
func (u *symptomUseCase) Categories(ctx context.Context) ([]string, error) {
	return u.symptomRepo.Categories(ctx)
}

// Names ...
func (u *symptomUseCase) Names(ctx context.Context, ids []string) ([]string, error) {
	names := make([]string, len(ids))
	for i, id := range ids {
		s, err := u.symptomRepo.GetByID(ctx, id)
		switch {
		case err == nil:
			names[i] = s.Name
		case errors.Is(err, repository.ErrNotFound):
			names[i] = id
		default:
			return nil, err
		}
	}
	return names, nil
}

// NameIndex ...
func (u *symptomUseCase) NameIndex(ctx context.Context) (map[string]string, error) {
	all, err := u.symptomRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[string]string, len(all))
	for _, s := range all {
		index[s.ID] = s.Name
	}
	return index, nil
}

// GetSymptomsAsText ...
func (u *symptomUseCase) GetSymptomsAsText(ctx context.Context, category string) (string, error) {
	symptoms, err := u.Filter(ctx, "", category)
	if err != nil {
		return "", err
	}
	if len(symptoms) == 0 {
		return "", fmt.Errorf("no symptoms in category %q", category)
	}
	return FormatSymptomList(symptoms), nil
}

// FormatSymptomList groups by category, keeping catalog order
func FormatSymptomList(symptoms []entity.Symptom) string {
	var sb strings.Builder
	for _, category := range entity.CategoriesOf(symptoms) {
		sb.WriteString(fmt.Sprintf("📂 %s:\n", category))
		for _, s := range symptoms {
			if s.Category == category {
				sb.WriteString(fmt.Sprintf("  • %s - %s\n", s.ID, s.Name))
			}
		}
		sb.WriteString("\n")
	}
	for _, s := range symptoms {
		if s.Category == "" {
			sb.WriteString(fmt.Sprintf("  • %s - %s\n", s.ID, s.Name))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
