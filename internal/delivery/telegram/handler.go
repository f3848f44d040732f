package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

// botAPI the subset of *tgbotapi.BotAPI the handler calls
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot         botAPI
	username    string
	symptoms    usecase.SymptomUseCase
	predictions usecase.PredictionUseCase
	chat        usecase.ChatUseCase
	admin       usecase.AdminUseCase
	now         func() time.Time

	// symptoms picked before /predict, per user
	selectionMu sync.RWMutex
	selections  map[int64][]string

	// users who sent /admin and owe a password
	mu               sync.RWMutex
	awaitingPassword map[int64]bool
}

// NewBotHandler connects to Telegram with token
func NewBotHandler(
	token string,
	symptoms usecase.SymptomUseCase,
	predictions usecase.PredictionUseCase,
	chat usecase.ChatUseCase,
	admin usecase.AdminUseCase,
) (*BotHandler, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newBotHandler(bot, bot.Self.UserName, symptoms, predictions, chat, admin), nil
}

func newBotHandler(
	bot botAPI,
	username string,
	symptoms usecase.SymptomUseCase,
	predictions usecase.PredictionUseCase,
	chat usecase.ChatUseCase,
	admin usecase.AdminUseCase,
) *BotHandler {
	return &BotHandler{
		bot:              bot,
		username:         username,
		symptoms:         symptoms,
		predictions:      predictions,
		chat:             chat,
		admin:            admin,
		now:              time.Now,
		selections:       make(map[int64][]string),
		awaitingPassword: make(map[int64]bool),
	}
}

// Start polls for updates until ctx is done
func (h *BotHandler) Start(ctx context.Context) error {
	log.WithField("bot", h.username).Info("bot started")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			log.Info("bot stopping")
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.CallbackQuery != nil {
				go h.handleCallback(ctx, update.CallbackQuery)
				continue
			}

			if update.Message == nil {
				continue
			}

			go h.handleMessage(ctx, update.Message)
		}
	}
}

// handleMessage routes one incoming message
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if message.IsCommand() {
		// any command abandons a pending /admin prompt
		h.setAwaitingPassword(userID, false)
		h.handleCommand(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.Text != "" {
		h.handleTextMessage(ctx, userID, message.Text, message.Chat.ID)
	}
}

// handleCommand ...
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		h.handleStartCommand(ctx, message)
	case "help":
		h.sendMessage(message.Chat.ID, helpMessage)
	case "symptoms":
		h.handleSymptomsCommand(ctx, message)
	case "categories":
		h.handleCategoriesCommand(ctx, message)
	case "search":
		h.handleSearchCommand(ctx, message)
	case "select":
		h.handleSelectCommand(ctx, message)
	case "selected":
		h.handleSelectedCommand(ctx, message)
	case "reset":
		h.clearSelection(message.From.ID)
		h.sendMessage(message.Chat.ID, "🔄 Selection cleared.")
	case "predict":
		h.handlePredictCommand(ctx, message)
	case "history":
		h.handleHistoryCommand(ctx, message)
	case "stats":
		h.handleStatsCommand(ctx, message)
	case "report":
		h.handleReportCommand(ctx, message)
	case "export":
		h.handleExportCommand(ctx, message)
	case "clear":
		h.handleClearCommand(ctx, message)
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "catalog":
		h.handleCatalogCommand(ctx, message)
	case "template":
		h.handleTemplateCommand(ctx, message)
	case "clean":
		h.handleCleanCommand(ctx, message)
	default:
		h.sendMessage(message.Chat.ID, "Unknown command. See /help.")
	}
}

// handleCallback inline keyboard presses
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil || cq.Message.Chat == nil {
		return
	}
	userID := cq.From.ID
	chatID := cq.Message.Chat.ID

	// stop the button spinner
	if _, err := h.bot.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
		log.WithError(err).Warn("callback answer failed")
	}

	data := cq.Data
	switch {
	case strings.HasPrefix(data, callbackCategory):
		h.sendSymptomList(ctx, chatID, strings.TrimPrefix(data, callbackCategory))
	case strings.HasPrefix(data, callbackToggle):
		h.toggleSymptom(ctx, userID, chatID, strings.TrimPrefix(data, callbackToggle))
	case data == callbackPredict:
		h.predict(ctx, userID, chatID)
	case data == callbackAdminUsers:
		h.sendAdminUserList(ctx, userID, chatID)
	case strings.HasPrefix(data, callbackAdminUser):
		h.handleAdminUserMessages(ctx, userID, chatID, strings.TrimPrefix(data, callbackAdminUser))
	default:
		log.WithField("data", data).Debug("unknown callback")
	}
}

const (
	callbackCategory   = "cat:"
	callbackToggle     = "sel:"
	callbackPredict    = "predict"
	callbackAdminUsers = "admin_msgs"
	callbackAdminUser  = "admin_user:"
)

// handleStartCommand greets and opens the conversation
func (h *BotHandler) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	history, err := h.chat.History(ctx, message.From.ID)
	if err != nil {
		log.WithError(err).Error("history failed")
	}
	h.sendMessage(message.Chat.ID, welcomeMessage)
	if len(history) > 0 {
		h.sendMessage(message.Chat.ID, history[0].Text)
	}
}

// handleTextMessage free text goes to the assistant
func (h *BotHandler) handleTextMessage(ctx context.Context, userID int64, text string, chatID int64) {
	if strings.TrimSpace(text) == "" {
		return
	}

	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.WithError(err).Debug("typing action failed")
	}

	reply, err := h.chat.Send(ctx, userID, text)
	if err != nil {
		log.WithFields(log.Fields{"user_id": userID}).WithError(err).Error("chat failed")
		h.sendMessage(chatID, "Sorry, something went wrong. Please try again.")
		return
	}
	if reply == nil {
		return
	}
	h.sendMessage(chatID, reply.Text)
}

// handleClearCommand ...
func (h *BotHandler) handleClearCommand(ctx context.Context, message *tgbotapi.Message) {
	if err := h.chat.Clear(ctx, message.From.ID); err != nil {
		log.WithError(err).Error("clear failed")
		h.sendMessage(message.Chat.ID, "Could not clear the chat.")
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Chat cleared! You can start a new conversation.")
}

// handleExportCommand sends the transcript as a text file
func (h *BotHandler) handleExportCommand(ctx context.Context, message *tgbotapi.Message) {
	text, err := h.chat.Export(ctx, message.From.ID)
	if err != nil {
		log.WithError(err).Error("export failed")
		h.sendMessage(message.Chat.ID, "Could not export the chat.")
		return
	}
	h.sendDocument(message.Chat.ID, usecase.TranscriptFileName(h.now()), []byte(text), "💬 Your conversation")
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// sendMessage plain text message
func (h *BotHandler) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Warn("send message failed")
	}
}

func (h *BotHandler) sendWithKeyboard(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(markup.InlineKeyboard) > 0 {
		msg.ReplyMarkup = markup
	}
	if _, err := h.bot.Send(msg); err != nil {
		log.WithError(err).Warn("send message failed")
	}
}

func (h *BotHandler) sendDocument(chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	if _, err := h.bot.Send(doc); err != nil {
		log.WithError(err).Warn("send document failed")
	}
}
