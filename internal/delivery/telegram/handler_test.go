package telegram

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/infrastructure/keyword"
	"github.com/yourusername/symptom-checker/internal/infrastructure/parser"
	"github.com/yourusername/symptom-checker/internal/infrastructure/seed"
	"github.com/yourusername/symptom-checker/internal/infrastructure/storage"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

type fakeBot struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	fileURL string
	updates chan tgbotapi.Update
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetFileDirectURL(fileID string) (string, error) {
	return f.fileURL, nil
}

func (f *fakeBot) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

// texts every text message sent so far
func (f *fakeBot) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m.Text)
		}
	}
	return out
}

func (f *fakeBot) last() string {
	texts := f.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeBot) documents() []tgbotapi.DocumentConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.DocumentConfig
	for _, c := range f.sent {
		if d, ok := c.(tgbotapi.DocumentConfig); ok {
			out = append(out, d)
		}
	}
	return out
}

var testNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*BotHandler, *fakeBot) {
	t.Helper()
	now := func() time.Time { return testNow }

	symptomRepo, err := storage.NewMemorySymptomRepository(seed.Catalog(testNow))
	if err != nil {
		t.Fatalf("NewMemorySymptomRepository: %v", err)
	}
	chatRepo := storage.NewMemoryChatRepository(50)
	predictionRepo := storage.NewMemoryPredictionRepository()
	reportWriter := parser.NewExcelReportWriter()

	bot := &fakeBot{}
	h := newBotHandler(
		bot,
		"symptom_bot",
		usecase.NewSymptomUseCase(symptomRepo),
		usecase.NewPredictionUseCase(predictionRepo, symptomRepo, reportWriter, seed.PredictionTemplate, now),
		usecase.NewChatUseCase(keyword.NewResponderWithPicker(func(int) int { return 0 }), chatRepo, seed.Greeting, time.UTC, now),
		usecase.NewAdminUseCase("hunter2", storage.NewMemoryAdminRepository(now), symptomRepo, parser.NewExcelParser(), reportWriter, chatRepo, predictionRepo, now),
	)
	h.now = now
	return h, bot
}

func command(userID int64, text string) *tgbotapi.Message {
	word := strings.Fields(text)[0]
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(word)}},
	}
}

func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: userID},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
}

func TestStartSendsGreeting(t *testing.T) {
	h, bot := newTestHandler(t)
	h.handleMessage(context.Background(), command(1, "/start"))

	texts := bot.texts()
	if len(texts) != 2 || texts[0] != welcomeMessage || texts[1] != seed.Greeting {
		t.Fatalf("unexpected messages %q", texts)
	}
}

func TestTextGoesToAssistant(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()

	h.handleMessage(ctx, textMessage(1, "my head pain is bad"))
	want, _ := keyword.Match("headache")
	if bot.last() != want {
		t.Fatalf("expected headache advice, got %q", bot.last())
	}

	before := len(bot.texts())
	h.handleMessage(ctx, textMessage(1, "   "))
	if len(bot.texts()) != before {
		t.Fatalf("blank text should be ignored")
	}
}

func TestSymptomsCommand(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()

	h.handleMessage(ctx, command(1, "/symptoms mental health"))
	if !strings.Contains(bot.last(), "📂 Mental Health:") || strings.Contains(bot.last(), "Respiratory") {
		t.Fatalf("unexpected list %q", bot.last())
	}

	h.handleMessage(ctx, command(1, "/symptoms Dental"))
	if !strings.Contains(bot.last(), "No category") {
		t.Fatalf("unknown category should be reported, got %q", bot.last())
	}
}

func TestSearchCommand(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()

	h.handleMessage(ctx, command(1, "/search xyzzy"))
	if !strings.Contains(bot.last(), "No symptoms match") {
		t.Fatalf("expected no results text, got %q", bot.last())
	}

	h.handleMessage(ctx, command(1, "/search cough"))
	if !strings.Contains(bot.last(), "cough - Cough") {
		t.Fatalf("expected cough in results, got %q", bot.last())
	}
}

func TestSelectAndPredict(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()

	h.handleMessage(ctx, command(1, "/predict"))
	if !strings.Contains(bot.last(), "Select at least one symptom") {
		t.Fatalf("empty selection should be refused, got %q", bot.last())
	}

	h.handleMessage(ctx, command(1, "/select fever, cough unicorn"))
	if !strings.Contains(bot.last(), "Unknown: unicorn") || !strings.Contains(bot.last(), "Fever, Cough") {
		t.Fatalf("unexpected selection reply %q", bot.last())
	}
	if got := h.selection(1); len(got) != 2 {
		t.Fatalf("expected 2 selected, got %v", got)
	}

	h.handleMessage(ctx, command(1, "/predict"))
	result := bot.last()
	for _, want := range []string{"Symptoms: Fever, Cough", "Common Cold", "85% confidence", predictionDisclaimer} {
		if !strings.Contains(result, want) {
			t.Fatalf("result missing %q:\n%s", want, result)
		}
	}
	if len(h.selection(1)) != 0 {
		t.Fatalf("selection should reset after a check")
	}

	h.handleMessage(ctx, command(1, "/history high"))
	if !strings.Contains(bot.last(), "high-confidence") || !strings.Contains(bot.last(), "Top result: Common Cold (85%)") {
		t.Fatalf("unexpected history %q", bot.last())
	}

	h.handleMessage(ctx, command(1, "/stats"))
	if !strings.Contains(bot.last(), "Total checks: 1") {
		t.Fatalf("unexpected stats %q", bot.last())
	}

	h.handleMessage(ctx, command(1, "/report"))
	docs := bot.documents()
	if len(docs) != 1 {
		t.Fatalf("expected a report document, got %d", len(docs))
	}
	if fb, ok := docs[0].File.(tgbotapi.FileBytes); !ok || fb.Name != "health-history-2024-06-15.xlsx" {
		t.Fatalf("unexpected report file %#v", docs[0].File)
	}
}

func TestToggleCallback(t *testing.T) {
	h, _ := newTestHandler(t)
	ctx := context.Background()
	cq := func(data string) *tgbotapi.CallbackQuery {
		return &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: 3},
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 3}},
			Data:    data,
		}
	}

	h.handleCallback(ctx, cq(callbackToggle+"rash"))
	h.handleCallback(ctx, cq(callbackToggle+"itching"))
	h.handleCallback(ctx, cq(callbackToggle+"rash"))
	if got := h.selection(3); len(got) != 1 || got[0] != "itching" {
		t.Fatalf("toggle did not add and remove, got %v", got)
	}
}

func TestExportSendsTranscript(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()
	h.handleMessage(ctx, textMessage(4, "thanks"))
	h.handleMessage(ctx, command(4, "/export"))

	docs := bot.documents()
	if len(docs) != 1 {
		t.Fatalf("expected one document, got %d", len(docs))
	}
	fb, ok := docs[0].File.(tgbotapi.FileBytes)
	if !ok || fb.Name != "health-chat-2024-06-15.txt" {
		t.Fatalf("unexpected file %#v", docs[0].File)
	}
	if n := len(strings.Split(string(fb.Bytes), "\n\n")); n != 3 {
		t.Fatalf("expected 3 transcript entries, got %d", n)
	}
}

func TestAdminLoginAndUpload(t *testing.T) {
	h, bot := newTestHandler(t)
	ctx := context.Background()

	upload := &tgbotapi.Message{
		MessageID: 9,
		From:      &tgbotapi.User{ID: 7},
		Chat:      &tgbotapi.Chat{ID: 7},
		Document:  &tgbotapi.Document{FileID: "f1", FileName: "catalog.xlsx", FileSize: 100},
	}
	h.handleMessage(ctx, upload)
	if !strings.Contains(bot.last(), "Only admins") {
		t.Fatalf("non-admin upload should be refused, got %q", bot.last())
	}

	h.handleMessage(ctx, command(7, "/admin"))
	h.handleMessage(ctx, textMessage(7, "wrong"))
	if !strings.Contains(bot.last(), "Wrong password") {
		t.Fatalf("expected wrong password, got %q", bot.last())
	}

	h.handleMessage(ctx, command(7, "/admin"))
	h.handleMessage(ctx, textMessage(7, "hunter2"))
	if bot.last() != adminWelcomeMessage {
		t.Fatalf("expected admin welcome, got %q", bot.last())
	}

	data, err := parser.NewExcelReportWriter().WriteCatalog(ctx, []entity.Symptom{
		{ID: "thirst", Name: "Thirst", Description: "Dry mouth", Category: "Hydration"},
	})
	if err != nil {
		t.Fatalf("WriteCatalog: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(data)
	}))
	defer srv.Close()
	bot.fileURL = srv.URL

	h.handleMessage(ctx, upload)
	if !strings.Contains(bot.last(), "Symptoms loaded: 1") {
		t.Fatalf("upload failed: %q", bot.last())
	}
	if _, err := h.symptoms.GetByID(ctx, "thirst"); err != nil {
		t.Fatalf("catalog not replaced: %v", err)
	}

	h.handleMessage(ctx, command(7, "/template"))
	if len(bot.documents()) != 1 {
		t.Fatalf("expected the catalog template")
	}

	h.handleMessage(ctx, command(7, "/clean"))
	if !strings.Contains(bot.last(), "removed") {
		t.Fatalf("clean failed: %q", bot.last())
	}

	h.handleMessage(ctx, command(8, "/clean"))
	if !strings.Contains(bot.last(), "admins only") {
		t.Fatalf("non-admin clean should be refused, got %q", bot.last())
	}
}

func TestStartStopsOnContextCancel(t *testing.T) {
	h, bot := newTestHandler(t)
	bot.updates = make(chan tgbotapi.Update)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Start did not return")
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("héllo", 2); got != "h…" {
		t.Fatalf("unexpected %q", got)
	}
	if got := truncateString("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSymptomButtonsSkipOversizedIDs(t *testing.T) {
	long := entity.Symptom{ID: strings.Repeat("very_long_symptom_name_", 3), Name: "Long"}
	symptoms := []entity.Symptom{long}
	for i := 0; i < maxResultButtons+1; i++ {
		symptoms = append(symptoms, entity.Symptom{ID: "s" + strings.Repeat("x", i), Name: "Short"})
	}

	markup := buildSymptomButtons(symptoms, []string{long.ID})
	if len(markup.InlineKeyboard) != maxResultButtons {
		t.Fatalf("expected %d buttons, got %d", maxResultButtons, len(markup.InlineKeyboard))
	}
	for _, row := range markup.InlineKeyboard {
		data := *row[0].CallbackData
		if len(data) > maxCallbackData {
			t.Fatalf("callback data %q exceeds %d bytes", data, maxCallbackData)
		}
		if data == callbackToggle+long.ID {
			t.Fatalf("oversized id got a button")
		}
	}
}
