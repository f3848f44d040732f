package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

const maxUploadSize = 5 * 1024 * 1024

// handleAdminCommand starts the password prompt
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if isAdmin {
		h.sendMessage(message.Chat.ID, "You are already logged in as admin!")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Enter the admin password:")
}

// handlePasswordInput the next message after /admin
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	// keep the password out of the chat
	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)); err != nil {
		log.WithError(err).Debug("could not delete password message")
	}

	success, err := h.admin.Login(ctx, userID, message.Text)
	if err != nil {
		log.WithError(err).Error("login failed")
		h.sendMessage(message.Chat.ID, "❌ Login error.")
		return
	}
	if !success {
		h.sendMessage(message.Chat.ID, "❌ Wrong password!")
		return
	}

	btns := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗂 User conversations", callbackAdminUsers),
		),
	)
	h.sendWithKeyboard(message.Chat.ID, adminWelcomeMessage, btns)
}

// handleLogoutCommand ...
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "You are not an admin.")
		return
	}

	if err := h.admin.Logout(ctx, userID); err != nil {
		h.sendMessage(message.Chat.ID, "Logout failed.")
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Logged out of the admin panel.")
}

// handleCleanCommand wipes transcripts and prediction history
func (h *BotHandler) handleCleanCommand(ctx context.Context, message *tgbotapi.Message) {
	err := h.admin.CleanAll(ctx, message.From.ID)
	switch {
	case errors.Is(err, usecase.ErrNotAdmin):
		h.sendMessage(message.Chat.ID, "❌ This command is for admins only.")
		return
	case err != nil:
		log.WithError(err).Error("clean failed")
		h.sendMessage(message.Chat.ID, "❌ Cleaning failed.")
		return
	}
	h.sendMessage(message.Chat.ID, "🧹 All chat transcripts and health checks were removed.")
}

// handleCatalogCommand ...
func (h *BotHandler) handleCatalogCommand(ctx context.Context, message *tgbotapi.Message) {
	isAdmin, _ := h.admin.IsAdmin(ctx, message.From.ID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ This command is for admins only.")
		return
	}

	info, err := h.admin.GetCatalogInfo(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Catalog not found.")
		return
	}
	h.sendMessage(message.Chat.ID, info)
}

// handleTemplateCommand current catalog as xlsx
func (h *BotHandler) handleTemplateCommand(ctx context.Context, message *tgbotapi.Message) {
	data, err := h.admin.ExportCatalog(ctx, message.From.ID)
	switch {
	case errors.Is(err, usecase.ErrNotAdmin):
		h.sendMessage(message.Chat.ID, "❌ This command is for admins only.")
		return
	case err != nil:
		log.WithError(err).Error("catalog export failed")
		h.sendMessage(message.Chat.ID, "❌ Could not export the catalog.")
		return
	}
	h.sendDocument(message.Chat.ID, "symptoms.xlsx", data, "📦 Edit and send back to replace the catalog")
}

// handleDocumentMessage catalog upload
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	isAdmin, _ := h.admin.IsAdmin(ctx, userID)
	if !isAdmin {
		h.sendMessage(message.Chat.ID, "❌ Only admins can upload files. Log in with /admin.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(message.Chat.ID, "❌ The file must not exceed 5MB!")
		return
	}
	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".xlsx") {
		h.sendMessage(message.Chat.ID, "❌ Only Excel files (.xlsx) are accepted!")
		return
	}

	h.sendMessage(message.Chat.ID, "⏳ Processing the file...")

	fileBytes, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		log.WithError(err).Error("file download failed")
		h.sendMessage(message.Chat.ID, "❌ Could not download the file.")
		return
	}

	count, err := h.admin.UploadCatalog(ctx, userID, fileBytes, doc.FileName)
	if err != nil {
		log.WithError(err).Error("catalog upload failed")
		h.sendMessage(message.Chat.ID, fmt.Sprintf("❌ Could not update the catalog: %v", err))
		return
	}

	h.sendMessage(message.Chat.ID, fmt.Sprintf(`✅ Catalog updated!

📦 Symptoms loaded: %d
📄 File: %s

/catalog - Catalog info`, count, doc.FileName))
}

// downloadFile fetches an uploaded file from Telegram
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	fileURL, err := h.bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download: unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

// sendAdminUserList one button per user with a transcript
func (h *BotHandler) sendAdminUserList(ctx context.Context, adminID, chatID int64) {
	if ok, _ := h.admin.IsAdmin(ctx, adminID); !ok {
		h.sendMessage(chatID, "❌ This is for admins only.")
		return
	}

	msgs, err := h.chat.GetAllMessages(ctx, 200)
	if err != nil {
		h.sendMessage(chatID, "❌ Could not load conversations.")
		return
	}

	users := collectUsersFromMessages(msgs)
	if len(users) == 0 {
		h.sendMessage(chatID, "No conversations yet.")
		return
	}

	text := fmt.Sprintf("🗂 %d user(s) have conversations. Pick one:", len(users))
	h.sendWithKeyboard(chatID, text, buildUserButtons(users))
}

func (h *BotHandler) handleAdminUserMessages(ctx context.Context, adminID, chatID int64, idStr string) {
	if ok, _ := h.admin.IsAdmin(ctx, adminID); !ok {
		h.sendMessage(chatID, "❌ This is for admins only.")
		return
	}

	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.sendMessage(chatID, "❌ Unknown user.")
		return
	}

	msgs, err := h.chat.History(ctx, userID)
	if err != nil {
		h.sendMessage(chatID, "❌ Could not load the conversation.")
		return
	}
	h.sendMessage(chatID, buildUserConversationDigest(userID, msgs, 3900))
}

type adminUserSummary struct {
	UserID   int64
	Messages int
	LastAt   time.Time
}

func collectUsersFromMessages(msgs []entity.ChatMessage) []adminUserSummary {
	m := make(map[int64]adminUserSummary)
	for _, msg := range msgs {
		cur := m[msg.UserID]
		cur.UserID = msg.UserID
		cur.Messages++
		if msg.Timestamp.After(cur.LastAt) {
			cur.LastAt = msg.Timestamp
		}
		m[msg.UserID] = cur
	}

	list := make([]adminUserSummary, 0, len(m))
	for _, v := range m {
		list = append(list, v)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].LastAt.Equal(list[j].LastAt) {
			return list[i].UserID < list[j].UserID
		}
		return list[i].LastAt.After(list[j].LastAt)
	})
	return list
}

func buildUserButtons(users []adminUserSummary) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{}
	row := []tgbotapi.InlineKeyboardButton{}

	for _, u := range users {
		label := fmt.Sprintf("%d (%d msgs)", u.UserID, u.Messages)
		btn := tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s%d", callbackAdminUser, u.UserID))
		row = append(row, btn)
		if len(row) == 2 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func buildUserConversationDigest(userID int64, msgs []entity.ChatMessage, maxLen int) string {
	if len(msgs) == 0 {
		return "No messages found."
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👤 %d\n\n", userID))

	for _, m := range msgs {
		icon := "👤"
		if m.Sender == entity.SenderBot {
			icon = "🤖"
		}
		entry := fmt.Sprintf("🕒 %s %s: %s\n\n",
			m.Timestamp.Format("02 Jan 15:04"),
			icon,
			truncateString(m.Text, 280),
		)
		if maxLen > 0 && sb.Len()+len(entry) > maxLen {
			sb.WriteString("…")
			break
		}
		sb.WriteString(entry)
	}
	return strings.TrimRight(sb.String(), "\n")
}
