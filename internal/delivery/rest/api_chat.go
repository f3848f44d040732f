package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

type chatRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// POST /api/chat; reply is null for blank text
func (h *Handler) SendMessage(ctx *gin.Context) {
	var body chatRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, badRequest("%v", err))
		return
	}
	reply, err := h.chat.Send(ctx.Request.Context(), body.UserID, body.Text)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"reply": reply})
}

// GET /api/chat?user_id=
func (h *Handler) ChatHistory(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	history, err := h.chat.History(ctx.Request.Context(), uid)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": history})
}

// DELETE /api/chat?user_id=
func (h *Handler) ClearChat(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	if err := h.chat.Clear(ctx.Request.Context(), uid); err != nil {
		h.errorHandler(ctx, err)
		return
	}
	history, err := h.chat.History(ctx.Request.Context(), uid)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": history})
}

// GET /api/chat/export?user_id=
func (h *Handler) ExportChat(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	text, err := h.chat.Export(ctx.Request.Context(), uid)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	attachment(ctx, usecase.TranscriptFileName(h.now()), "text/plain; charset=utf-8", []byte(text))
}
