package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketsentiment/internal/model"
)

const (
	defaultHistoryPageSize = 20
	maxHistoryPageSize     = 50
)

type AnalysisReader interface {
	GetAnalyses(ctx context.Context, limit, offset int) ([]model.Analysis, error)
	GetAnalysisTotal(ctx context.Context) (int, error)
	GetAnalysisByID(ctx context.Context, id int64) (*model.Analysis, error)
}

type HistoryHandler struct {
	repository AnalysisReader
}

func NewHistoryHandler(repository AnalysisReader) *HistoryHandler {
	return &HistoryHandler{repository: repository}
}

func (h *HistoryHandler) GetAnalyses(c *gin.Context) {
	limit, offset := historyPage(c)
	ctx := c.Request.Context()

	analyses, err := h.repository.GetAnalyses(ctx, limit, offset)
	if err != nil {
		slog.Error("error fetching analyses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetAnalysisTotal(ctx)
	if err != nil {
		slog.Error("error fetching analysis total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := AnalysesResponse{
		Analyses: make([]AnalysisResponse, 0, len(analyses)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for i := range analyses {
		res.Analyses = append(res.Analyses, toAnalysisResponse(&analyses[i]))
	}

	c.JSON(http.StatusOK, res)
}

func (h *HistoryHandler) GetAnalysis(c *gin.Context) {
	id := c.Param("id")

	analysisID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid analysis id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid analysis id"})
		return
	}

	analysis, err := h.repository.GetAnalysisByID(c.Request.Context(), analysisID)
	if err != nil {
		slog.Error("error fetching analysis", "error", err, "analysis_id", analysisID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if analysis == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(analysis))
}

// historyPage reads limit/offset, falling back to the first page of the default
// size on anything unparsable and clamping oversized pages.
func historyPage(c *gin.Context) (limit, offset int) {
	limit = defaultHistoryPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, maxHistoryPageSize)
	} else if c.Query("limit") != "" {
		slog.Warn("invalid limit, using default", "value", c.Query("limit"), "default", defaultHistoryPageSize)
	}

	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v >= 0 {
		offset = v
	} else if c.Query("offset") != "" {
		slog.Warn("invalid offset, using 0", "value", c.Query("offset"))
	}

	return limit, offset
}
