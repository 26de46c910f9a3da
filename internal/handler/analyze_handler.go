package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"marketsentiment/internal/model"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/queue"
	"marketsentiment/internal/service"
)

type Analyzer interface {
	Analyze(ctx context.Context, req service.Request) (*model.Analysis, error)
	AllowList() *nlp.AllowList
	HasServerCredential() bool
}

type JobQueue interface {
	Enqueue(job queue.Job) error
}

type AnalyzeHandler struct {
	analyzer Analyzer
	queue    JobQueue
}

// NewAnalyzeHandler accepts a nil queue when background analysis is disabled.
func NewAnalyzeHandler(analyzer Analyzer, queue JobQueue) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer, queue: queue}
}

func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": validationErrors(err)})
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), service.Request{
		APIKey:    apiKeyFromRequest(c),
		Category:  req.Category,
		Statement: req.Statement,
	})

	var classErr *service.ClassificationError
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing API key"})
		return
	case errors.Is(err, service.ErrEmptyStatement):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statement is empty"})
		return
	case errors.Is(err, service.ErrInvalidCategory):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	case errors.As(err, &classErr):
		c.JSON(http.StatusBadGateway, toAnalysisResponse(analysis))
		return
	case err != nil:
		slog.Error("error analyzing statement", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analysis failed"})
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(analysis))
}

func (h *AnalyzeHandler) Enqueue(c *gin.Context) {
	if h.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Background analysis is not configured"})
		return
	}

	if !h.analyzer.HasServerCredential() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Server API key is not configured"})
		return
	}

	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": validationErrors(err)})
		return
	}

	if strings.TrimSpace(req.Statement) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statement is empty"})
		return
	}

	job := queue.NewJob(req.Category, req.Statement)
	if err := h.queue.Enqueue(job); err != nil {
		slog.Error("error enqueueing analysis", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Queue error"})
		return
	}

	slog.Info("analysis queued", "job_id", job.ID, "category", job.Category)
	c.JSON(http.StatusAccepted, QueuedResponse{JobID: job.ID})
}

func (h *AnalyzeHandler) GetCategories(c *gin.Context) {
	categories := make([]string, len(model.Categories))
	for i, cat := range model.Categories {
		categories[i] = string(cat)
	}

	c.JSON(http.StatusOK, CategoriesResponse{
		Categories: categories,
		AllowList:  h.analyzer.AllowList().Terms(),
	})
}

func apiKeyFromRequest(c *gin.Context) string {
	if key := strings.TrimSpace(c.GetHeader("X-API-Key")); key != "" {
		return key
	}

	auth := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
