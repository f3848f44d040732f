package usecase

import (
	"testing"
	"time"

	"github.com/yourusername/symptom-checker/internal/domain/repository"
	"github.com/yourusername/symptom-checker/internal/infrastructure/keyword"
	"github.com/yourusername/symptom-checker/internal/infrastructure/parser"
	"github.com/yourusername/symptom-checker/internal/infrastructure/seed"
	"github.com/yourusername/symptom-checker/internal/infrastructure/storage"
)

// fakeClock moves only when told to
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	clock       *fakeClock
	symptoms    repository.SymptomRepository
	chats       repository.ChatRepository
	predictions repository.PredictionRepository
	admins      repository.AdminRepository

	symptomUC    SymptomUseCase
	predictionUC PredictionUseCase
	chatUC       ChatUseCase
	adminUC      AdminUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}

	symptoms, err := storage.NewMemorySymptomRepository(seed.Catalog(clock.Now()))
	if err != nil {
		t.Fatalf("NewMemorySymptomRepository: %v", err)
	}
	chats := storage.NewMemoryChatRepository(0)
	predictions := storage.NewMemoryPredictionRepository()
	admins := storage.NewMemoryAdminRepository(clock.Now)

	return &fixture{
		clock:        clock,
		symptoms:     symptoms,
		chats:        chats,
		predictions:  predictions,
		admins:       admins,
		symptomUC:    NewSymptomUseCase(symptoms),
		predictionUC: NewPredictionUseCase(predictions, symptoms, parser.NewExcelReportWriter(), seed.PredictionTemplate, clock.Now),
		chatUC:       NewChatUseCase(keyword.NewResponderWithPicker(func(int) int { return 0 }), chats, seed.Greeting, time.UTC, clock.Now),
		adminUC:      NewAdminUseCase("secret", admins, symptoms, parser.NewExcelParser(), parser.NewExcelReportWriter(), chats, predictions, clock.Now),
	}
}
