package handler

import (
	"time"

	"marketsentiment/internal/model"
)

type AnalyzeRequest struct {
	Category  string `json:"category" form:"category" binding:"required,oneof=Stock Index Crypto Economy Other"`
	Statement string `json:"statement" form:"statement" binding:"max=10000"`
}

// pageForm is the browser form. Category and credential are checked by the
// analyzer so the page can show its own warnings for them.
type pageForm struct {
	APIKey    string `form:"api_key"`
	Category  string `form:"category"`
	Statement string `form:"statement" binding:"max=10000"`
}

type EntityResponse struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type AnalysisResponse struct {
	ID               int64            `json:"id,omitempty"`
	Category         string           `json:"category"`
	Statement        string           `json:"statement"`
	Sentiment        string           `json:"sentiment"`
	Entities         []EntityResponse `json:"entities"`
	EntitiesFellBack bool             `json:"entities_fell_back"`
	Provider         string           `json:"provider"`
	ModelUsed        string           `json:"model_used"`
	Cached           bool             `json:"cached"`
	CreatedAt        string           `json:"created_at"`
	Error            string           `json:"error,omitempty"`
}

type AnalysesResponse struct {
	Analyses []AnalysisResponse `json:"analyses"`
	Total    int                `json:"total"`
	Limit    int                `json:"limit"`
	Offset   int                `json:"offset"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
	AllowList  []string `json:"allow_list"`
}

type QueuedResponse struct {
	JobID string `json:"job_id"`
}

func toAnalysisResponse(a *model.Analysis) AnalysisResponse {
	entities := make([]EntityResponse, len(a.Entities))
	for i, e := range a.Entities {
		entities[i] = EntityResponse{Text: e.Text, Label: e.Label}
	}

	return AnalysisResponse{
		ID:               a.ID,
		Category:         string(a.Category),
		Statement:        a.Statement,
		Sentiment:        a.Sentiment,
		Entities:         entities,
		EntitiesFellBack: a.FellBack,
		Provider:         a.Provider,
		ModelUsed:        a.ModelUsed,
		Cached:           a.Cached,
		CreatedAt:        a.CreatedAt.Format(time.RFC3339),
		Error:            a.ClassificationError,
	}
}
