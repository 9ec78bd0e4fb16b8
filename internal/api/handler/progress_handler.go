package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/JEerdekens/bookclub/internal/api/dto"
	"github.com/JEerdekens/bookclub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// RegisterRoutes registers the progress-related routes
func (h *ProgressHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.GetAllProgress)
	rg.GET("/:book_id", h.GetProgress)
	rg.POST("/:book_id", h.UpdateProgress)
}

func (h *ProgressHandler) GetAllProgress(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	progressList, err := h.progressService.GetByUser(ctx, userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, progressList)
}

func (h *ProgressHandler) GetProgress(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	progress, err := h.progressService.Get(ctx, userID.(string), bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if progress == nil {
		// no record yet is a valid state, surfaced as percent 0
		c.JSON(http.StatusOK, dto.ProgressResponse{BookID: bookID, Percent: 0})
		return
	}

	c.JSON(http.StatusOK, dto.ProgressResponse{BookID: bookID, Percent: progress.Percent})
}

func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	bookID, err := strconv.ParseInt(c.Param("book_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid book ID"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var percent float64
	switch {
	case req.Percent != nil:
		percent, err = h.progressService.Upsert(ctx, userID.(string), bookID, *req.Percent)
	case req.PagesRead != nil && req.TotalPages != nil:
		percent, err = h.progressService.UpsertFromPages(ctx, userID.(string), bookID, *req.PagesRead, *req.TotalPages)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "either percent or pages_read with total_pages is required"})
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, service.ErrBookNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidPages):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ProgressResponse{BookID: bookID, Percent: percent})
}
