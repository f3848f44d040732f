package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/symptom-checker/internal/domain/entity"
)

type predictionRequest struct {
	UserID   int64    `json:"user_id"`
	Symptoms []string `json:"symptoms"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// POST /api/predictions
func (h *Handler) CreatePrediction(ctx *gin.Context) {
	var body predictionRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		h.errorHandler(ctx, badRequest("%v", err))
		return
	}
	p, err := h.predictions.Predict(ctx.Request.Context(), body.UserID, body.Symptoms)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"prediction": p})
}

// GET /api/predictions?user_id=&filter=all|recent|high-confidence
func (h *Handler) ListPredictions(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	filter := entity.ParseHistoryFilter(ctx.Query("filter"))
	list, err := h.predictions.History(ctx.Request.Context(), uid, filter)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"predictions": list, "count": len(list), "filter": filter})
}

// GET /api/predictions/stats?user_id=
func (h *Handler) PredictionStats(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	stats, err := h.predictions.Stats(ctx.Request.Context(), uid)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}

// GET /api/predictions/report?user_id=
func (h *Handler) PredictionReport(ctx *gin.Context) {
	uid, err := userID(ctx)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	data, err := h.predictions.ExportReport(ctx.Request.Context(), uid)
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	name := fmt.Sprintf("health-history-%s.xlsx", h.now().Format("2006-01-02"))
	attachment(ctx, name, xlsxContentType, data)
}

// GET /api/predictions/:id
func (h *Handler) GetPrediction(ctx *gin.Context) {
	p, err := h.predictions.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"prediction": p})
}
