package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketsentiment/internal/model"
	"marketsentiment/internal/service"
	"marketsentiment/pkg/llm"
)

const (
	pageTitle      = "MarketSentiment Analyzer"
	warnMissingKey = "Please enter your %s API key in the sidebar"
	warnEmptyInput = "Please enter a statement to analyze"
	warnCategory   = "Please select a valid analysis category"
	errProviderAPI = "%s API Error: %s"
	errAnalysis    = "Analysis failed, please try again"
	disclaimer     = "Disclaimer: This analysis is for informational purposes only and should not be considered financial advice."
)

type pageResult struct {
	Sentiment string
	Category  string
	Statement string
	Entities  []EntityResponse
	Texts     []string
	FellBack  bool
	Cached    bool
}

type pageData struct {
	Title           string
	ProviderName    string
	Categories      []string
	Selected        string
	Statement       string
	ServerKeyLoaded bool
	Warning         string
	Error           string
	Result          *pageResult
	Disclaimer      string
}

type PageHandler struct {
	analyzer     Analyzer
	providerName string
}

func NewPageHandler(analyzer Analyzer, provider string) *PageHandler {
	return &PageHandler{analyzer: analyzer, providerName: providerDisplayName(provider)}
}

func (h *PageHandler) newPageData() pageData {
	categories := make([]string, len(model.Categories))
	for i, cat := range model.Categories {
		categories[i] = string(cat)
	}

	return pageData{
		Title:           pageTitle,
		ProviderName:    h.providerName,
		Categories:      categories,
		Selected:        categories[0],
		ServerKeyLoaded: h.analyzer.HasServerCredential(),
		Disclaimer:      disclaimer,
	}
}

func (h *PageHandler) GetIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.newPageData())
}

func (h *PageHandler) PostIndex(c *gin.Context) {
	data := h.newPageData()

	var form pageForm
	bindErr := c.ShouldBind(&form)

	data.Statement = form.Statement
	if form.Category != "" {
		data.Selected = form.Category
	}

	if bindErr != nil {
		data.Warning = validationErrors(bindErr)[0].Message
		c.HTML(http.StatusOK, "index.html", data)
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), service.Request{
		APIKey:    form.APIKey,
		Category:  data.Selected,
		Statement: data.Statement,
	})

	var classErr *service.ClassificationError
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		data.Warning = fmt.Sprintf(warnMissingKey, h.providerName)
	case errors.Is(err, service.ErrEmptyStatement):
		data.Warning = warnEmptyInput
	case errors.Is(err, service.ErrInvalidCategory):
		data.Warning = warnCategory
	case errors.As(err, &classErr):
		data.Error = fmt.Sprintf(errProviderAPI, h.providerName, classErr.Err.Error())
		data.Result = toPageResult(analysis)
	case err != nil:
		slog.Error("error analyzing statement", "error", err)
		data.Error = errAnalysis
	default:
		data.Result = toPageResult(analysis)
	}

	c.HTML(http.StatusOK, "index.html", data)
}

func toPageResult(a *model.Analysis) *pageResult {
	res := toAnalysisResponse(a)
	return &pageResult{
		Sentiment: res.Sentiment,
		Category:  res.Category,
		Statement: res.Statement,
		Entities:  res.Entities,
		Texts:     a.EntityTexts(),
		FellBack:  res.EntitiesFellBack,
		Cached:    res.Cached,
	}
}

func providerDisplayName(provider string) string {
	switch provider {
	case llm.ProviderAnthropic:
		return "Anthropic"
	default:
		return "OpenAI"
	}
}
