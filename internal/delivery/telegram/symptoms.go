package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

// Telegram rejects longer messages
const maxMessageLen = 4000

// buttons shown under search results
const maxResultButtons = 10

// Telegram caps callback_data at 64 bytes
const maxCallbackData = 64

// handleSymptomsCommand /symptoms [category]
func (h *BotHandler) handleSymptomsCommand(ctx context.Context, message *tgbotapi.Message) {
	category := strings.TrimSpace(message.CommandArguments())
	if category != "" {
		resolved, ok := h.resolveCategory(ctx, category)
		if !ok {
			h.sendMessage(message.Chat.ID, fmt.Sprintf("No category %q. See /categories.", category))
			return
		}
		category = resolved
	}
	h.sendSymptomList(ctx, message.Chat.ID, category)
}

func (h *BotHandler) sendSymptomList(ctx context.Context, chatID int64, category string) {
	text, err := h.symptoms.GetSymptomsAsText(ctx, category)
	if err != nil {
		h.sendMessage(chatID, "No symptoms found.")
		return
	}
	text += "\n\nPick with /select <id> or /search <term>."
	h.sendMessage(chatID, truncateString(text, maxMessageLen))
}

// handleCategoriesCommand one button per category
func (h *BotHandler) handleCategoriesCommand(ctx context.Context, message *tgbotapi.Message) {
	categories, err := h.symptoms.Categories(ctx)
	if err != nil || len(categories) == 0 {
		h.sendMessage(message.Chat.ID, "No categories available.")
		return
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(categories))
	for _, c := range categories {
		data := callbackCategory + c
		if len(data) > maxCallbackData {
			// still reachable with /symptoms <category>
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📂 "+c, data),
		))
	}
	h.sendWithKeyboard(message.Chat.ID, "Choose a category:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// handleSearchCommand /search <term>
func (h *BotHandler) handleSearchCommand(ctx context.Context, message *tgbotapi.Message) {
	term := strings.TrimSpace(message.CommandArguments())
	if term == "" {
		h.sendMessage(message.Chat.ID, "Usage: /search <term>, for example /search pain")
		return
	}

	found, err := h.symptoms.Filter(ctx, term, "")
	if err != nil {
		log.WithError(err).Error("symptom search failed")
		h.sendMessage(message.Chat.ID, "Search failed.")
		return
	}
	if len(found) == 0 {
		h.sendMessage(message.Chat.ID, fmt.Sprintf("🔍 No symptoms match %q. Try a different search term.", term))
		return
	}

	text := fmt.Sprintf("🔍 %d result(s) for %q:\n\n%s", len(found), term, usecase.FormatSymptomList(found))
	h.sendWithKeyboard(message.Chat.ID, truncateString(text, maxMessageLen), buildSymptomButtons(found, h.selection(message.From.ID)))
}

// handleSelectCommand /select <id> [id...]
func (h *BotHandler) handleSelectCommand(ctx context.Context, message *tgbotapi.Message) {
	ids := splitIDs(message.CommandArguments())
	if len(ids) == 0 {
		h.sendMessage(message.Chat.ID, "Usage: /select <id> [id...], ids are listed by /symptoms")
		return
	}

	var unknown []string
	for _, id := range ids {
		if _, err := h.symptoms.GetByID(ctx, id); err != nil {
			unknown = append(unknown, id)
			continue
		}
		h.addSelection(message.From.ID, id)
	}

	var sb strings.Builder
	if len(unknown) > 0 {
		sb.WriteString(fmt.Sprintf("⚠️ Unknown: %s\n\n", strings.Join(unknown, ", ")))
	}
	sb.WriteString(h.selectionText(ctx, message.From.ID))
	h.sendMessage(message.Chat.ID, sb.String())
}

// handleSelectedCommand ...
func (h *BotHandler) handleSelectedCommand(ctx context.Context, message *tgbotapi.Message) {
	h.sendMessage(message.Chat.ID, h.selectionText(ctx, message.From.ID))
}

func (h *BotHandler) toggleSymptom(ctx context.Context, userID, chatID int64, id string) {
	if _, err := h.symptoms.GetByID(ctx, id); err != nil {
		h.sendMessage(chatID, fmt.Sprintf("⚠️ Unknown symptom %q.", id))
		return
	}
	if !h.removeSelection(userID, id) {
		h.addSelection(userID, id)
	}

	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🩺 Analyze symptoms", callbackPredict),
	))
	h.sendWithKeyboard(chatID, h.selectionText(ctx, userID), markup)
}

func (h *BotHandler) selectionText(ctx context.Context, userID int64) string {
	selected := h.selection(userID)
	if len(selected) == 0 {
		return "No symptoms selected. Use /select <id> or /search <term>."
	}
	names, err := h.symptoms.Names(ctx, selected)
	if err != nil {
		names = selected
	}
	return fmt.Sprintf("✅ Selected symptoms (%d): %s\n\n/predict to analyze, /reset to start over.", len(names), strings.Join(names, ", "))
}

// handlePredictCommand ...
func (h *BotHandler) handlePredictCommand(ctx context.Context, message *tgbotapi.Message) {
	h.predict(ctx, message.From.ID, message.Chat.ID)
}

func (h *BotHandler) predict(ctx context.Context, userID, chatID int64) {
	p, err := h.predictions.Predict(ctx, userID, h.selection(userID))
	switch {
	case errors.Is(err, usecase.ErrNoSymptoms):
		h.sendMessage(chatID, "Select at least one symptom first: /symptoms, /search or /select.")
		return
	case errors.Is(err, usecase.ErrUnknownSymptom):
		h.sendMessage(chatID, fmt.Sprintf("⚠️ %v. /reset and select again.", err))
		return
	case err != nil:
		log.WithError(err).Error("prediction failed")
		h.sendMessage(chatID, "Analysis failed. Please try again.")
		return
	}

	h.clearSelection(userID)
	names, err := h.symptoms.Names(ctx, p.Symptoms)
	if err != nil {
		names = p.Symptoms
	}
	h.sendMessage(chatID, formatPrediction(*p, names))
}

// handleHistoryCommand /history [all|recent|high]
func (h *BotHandler) handleHistoryCommand(ctx context.Context, message *tgbotapi.Message) {
	filter := entity.ParseHistoryFilter(message.CommandArguments())
	history, err := h.predictions.History(ctx, message.From.ID, filter)
	if err != nil {
		log.WithError(err).Error("history failed")
		h.sendMessage(message.Chat.ID, "Could not load your history.")
		return
	}
	if len(history) == 0 {
		h.sendMessage(message.Chat.ID, "📋 No health checks found. Use /predict after selecting symptoms.")
		return
	}

	index, err := h.symptoms.NameIndex(ctx)
	if err != nil {
		index = map[string]string{}
	}
	h.sendMessage(message.Chat.ID, truncateString(formatHistory(history, filter, index), maxMessageLen))
}

// handleStatsCommand ...
func (h *BotHandler) handleStatsCommand(ctx context.Context, message *tgbotapi.Message) {
	stats, err := h.predictions.Stats(ctx, message.From.ID)
	if err != nil {
		log.WithError(err).Error("stats failed")
		h.sendMessage(message.Chat.ID, "Could not load your statistics.")
		return
	}
	h.sendMessage(message.Chat.ID, formatStats(stats))
}

// handleReportCommand history as a spreadsheet
func (h *BotHandler) handleReportCommand(ctx context.Context, message *tgbotapi.Message) {
	history, err := h.predictions.History(ctx, message.From.ID, entity.HistoryAll)
	if err == nil && len(history) == 0 {
		h.sendMessage(message.Chat.ID, "📋 No health checks to export yet.")
		return
	}

	data, err := h.predictions.ExportReport(ctx, message.From.ID)
	if err != nil {
		log.WithError(err).Error("report failed")
		h.sendMessage(message.Chat.ID, "Could not build the report.")
		return
	}
	name := fmt.Sprintf("health-history-%s.xlsx", h.now().Format("2006-01-02"))
	h.sendDocument(message.Chat.ID, name, data, "📊 Your health check history")
}

// resolveCategory case-insensitive lookup returning the catalog spelling
func (h *BotHandler) resolveCategory(ctx context.Context, name string) (string, bool) {
	categories, err := h.symptoms.Categories(ctx)
	if err != nil {
		return "", false
	}
	for _, c := range categories {
		if strings.EqualFold(c, name) {
			return c, true
		}
	}
	return "", false
}

func (h *BotHandler) selection(userID int64) []string {
	h.selectionMu.RLock()
	defer h.selectionMu.RUnlock()
	out := make([]string, len(h.selections[userID]))
	copy(out, h.selections[userID])
	return out
}

func (h *BotHandler) addSelection(userID int64, id string) {
	h.selectionMu.Lock()
	defer h.selectionMu.Unlock()
	for _, existing := range h.selections[userID] {
		if existing == id {
			return
		}
	}
	h.selections[userID] = append(h.selections[userID], id)
}

func (h *BotHandler) removeSelection(userID int64, id string) bool {
	h.selectionMu.Lock()
	defer h.selectionMu.Unlock()
	list := h.selections[userID]
	for i, existing := range list {
		if existing == id {
			h.selections[userID] = append(list[:i:i], list[i+1:]...)
			return true
		}
	}
	return false
}

func (h *BotHandler) clearSelection(userID int64) {
	h.selectionMu.Lock()
	defer h.selectionMu.Unlock()
	delete(h.selections, userID)
}

// splitIDs accepts spaces and commas as separators
func splitIDs(args string) []string {
	return strings.FieldsFunc(args, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}

func buildSymptomButtons(symptoms []entity.Symptom, selected []string) tgbotapi.InlineKeyboardMarkup {
	picked := make(map[string]bool, len(selected))
	for _, id := range selected {
		picked[id] = true
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range symptoms {
		if len(rows) >= maxResultButtons {
			break
		}
		data := callbackToggle + s.ID
		if len(data) > maxCallbackData {
			// /select still accepts the id
			continue
		}
		label := "➕ " + s.Name
		if picked[s.ID] {
			label = "✅ " + s.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, data),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
