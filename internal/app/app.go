// Package app assembles repositories and use cases from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/config"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
	"github.com/yourusername/symptom-checker/internal/infrastructure/keyword"
	"github.com/yourusername/symptom-checker/internal/infrastructure/parser"
	"github.com/yourusername/symptom-checker/internal/infrastructure/seed"
	"github.com/yourusername/symptom-checker/internal/infrastructure/storage"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

// App wired use cases shared by every delivery surface
type App struct {
	Config      *config.Config
	Symptoms    usecase.SymptomUseCase
	Predictions usecase.PredictionUseCase
	Chat        usecase.ChatUseCase
	Admin       usecase.AdminUseCase

	closers []func() error
}

// New builds the application. Close must be called to release the
// transcript database.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	return newApp(ctx, cfg, time.Now)
}

func newApp(ctx context.Context, cfg *config.Config, now usecase.Clock) (*App, error) {
	a := &App{Config: cfg}

	catalogParser := parser.NewExcelParser()
	catalog, err := loadCatalog(ctx, cfg.CatalogPath, catalogParser, now())
	if err != nil {
		return nil, err
	}
	symptomRepo, err := storage.NewMemorySymptomRepository(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	var chatRepo repository.ChatRepository
	if cfg.ChatDBPath != "" {
		repo, closeDB, err := storage.NewSQLiteChatRepository(cfg.ChatDBPath, cfg.MaxContextSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open chat store: %w", err)
		}
		a.closers = append(a.closers, closeDB)
		chatRepo = repo
		log.WithField("path", cfg.ChatDBPath).Info("transcripts stored in sqlite")
	} else {
		chatRepo = storage.NewMemoryChatRepository(cfg.MaxContextSize)
	}

	reportWriter := parser.NewExcelReportWriter()
	predictionRepo := storage.NewMemoryPredictionRepository()
	adminRepo := storage.NewMemoryAdminRepository(now)

	a.Symptoms = usecase.NewSymptomUseCase(symptomRepo)
	a.Predictions = usecase.NewPredictionUseCase(predictionRepo, symptomRepo, reportWriter, seed.PredictionTemplate, now)
	a.Chat = usecase.NewChatUseCase(keyword.NewResponder(), chatRepo, seed.Greeting, cfg.Location, now)
	a.Admin = usecase.NewAdminUseCase(cfg.AdminPassword, adminRepo, symptomRepo, catalogParser, reportWriter, chatRepo, predictionRepo, now)

	log.WithFields(log.Fields{
		"symptoms": len(catalog.Symptoms),
		"source":   catalog.Source,
	}).Info("symptom catalog loaded")

	return a, nil
}

// Close releases storage handles
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func loadCatalog(ctx context.Context, path string, p repository.CatalogParser, now time.Time) (entity.SymptomCatalog, error) {
	if path == "" {
		return seed.Catalog(now), nil
	}
	symptoms, err := p.ParseSymptoms(ctx, path)
	if err != nil {
		return entity.SymptomCatalog{}, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return entity.SymptomCatalog{
		Symptoms:  symptoms,
		UpdatedAt: now,
		Source:    filepath.Base(path),
	}, nil
}
