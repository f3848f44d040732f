package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/yourusername/symptom-checker/internal/domain/repository"
	"github.com/yourusername/symptom-checker/internal/usecase"
)

// Handler JSON API over the use cases
type Handler struct {
	symptoms    usecase.SymptomUseCase
	predictions usecase.PredictionUseCase
	chat        usecase.ChatUseCase
	now         func() time.Time
}

// NewHandler ...
func NewHandler(
	symptoms usecase.SymptomUseCase,
	predictions usecase.PredictionUseCase,
	chat usecase.ChatUseCase,
) *Handler {
	return &Handler{
		symptoms:    symptoms,
		predictions: predictions,
		chat:        chat,
		now:         time.Now,
	}
}

// NewRouter gin engine with recovery, request logging and every route
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	h.RegisterHandler(router)
	return router
}

// RegisterHandler ...
func (h *Handler) RegisterHandler(router *gin.Engine) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/symptoms", h.ListSymptoms)
	api.GET("/symptoms/:id", h.GetSymptom)
	api.GET("/categories", h.ListCategories)

	api.POST("/predictions", h.CreatePrediction)
	api.GET("/predictions", h.ListPredictions)
	api.GET("/predictions/stats", h.PredictionStats)
	api.GET("/predictions/report", h.PredictionReport)
	api.GET("/predictions/:id", h.GetPrediction)

	api.POST("/chat", h.SendMessage)
	api.GET("/chat", h.ChatHistory)
	api.DELETE("/chat", h.ClearChat)
	api.GET("/chat/export", h.ExportChat)
}

func requestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		log.WithFields(log.Fields{
			"method":  ctx.Request.Method,
			"path":    ctx.Request.URL.Path,
			"status":  ctx.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Info("http request")
	}
}

// errorHandler logs and renders err with its mapped status
func (h *Handler) errorHandler(ctx *gin.Context, err error) {
	status := statusFor(err)
	entry := log.WithFields(log.Fields{"path": ctx.Request.URL.Path, "status": status})
	if status >= http.StatusInternalServerError {
		entry.Error(err.Error())
	} else {
		entry.Debug(err.Error())
	}
	ctx.JSON(status, gin.H{
		"status":      "error",
		"description": err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrNoSymptoms), errors.Is(err, usecase.ErrUnknownSymptom), errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

// userID reads the required user_id query parameter
func userID(ctx *gin.Context) (int64, error) {
	raw := ctx.Query("user_id")
	if raw == "" {
		return 0, badRequest("user_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, badRequest("user_id %q is not a number", raw)
	}
	return id, nil
}

func attachment(ctx *gin.Context, filename, contentType string, data []byte) {
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	ctx.Data(http.StatusOK, contentType, data)
}
