package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/symptoms?search=&category=
func (h *Handler) ListSymptoms(ctx *gin.Context) {
	list, err := h.symptoms.Filter(ctx.Request.Context(), ctx.Query("search"), ctx.Query("category"))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"symptoms": list, "count": len(list)})
}

// GET /api/symptoms/:id
func (h *Handler) GetSymptom(ctx *gin.Context) {
	s, err := h.symptoms.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"symptom": s})
}

// GET /api/categories
func (h *Handler) ListCategories(ctx *gin.Context) {
	categories, err := h.symptoms.Categories(ctx.Request.Context())
	if err != nil {
		h.errorHandler(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}
