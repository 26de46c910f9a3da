package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"marketsentiment/internal/cache"
	"marketsentiment/internal/model"
	"marketsentiment/internal/nlp"
	"marketsentiment/pkg/llm"
)

type ClassifierFactory func(apiKey string) (llm.Classifier, error)

type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, analysis *model.Analysis) error
}

type Metrics interface {
	RecordAnalysis(category, provider string)
	RecordError(kind string)
	RecordCacheLookup(hit bool)
	RecordEntityFallback()
	RecordLatency(op string, seconds float64)
}

type Request struct {
	APIKey    string
	Category  string
	Statement string
}

type Deps struct {
	NewClassifier ClassifierFactory
	// ServerAPIKey is used when a request carries no credential.
	ServerAPIKey string
	Extractor    nlp.Extractor
	AllowList    *nlp.AllowList
	Cache        cache.SentimentCache
	CacheTTL     time.Duration
	Store        AnalysisStore
	Metrics      Metrics
}

type Analyzer struct {
	newClassifier ClassifierFactory
	serverAPIKey  string
	extractor     nlp.Extractor
	allowList     *nlp.AllowList
	cache         cache.SentimentCache
	cacheTTL      time.Duration
	store         AnalysisStore
	metrics       Metrics
	labelPolicy   *bluemonday.Policy
}

func NewAnalyzer(deps Deps) *Analyzer {
	a := &Analyzer{
		newClassifier: deps.NewClassifier,
		serverAPIKey:  strings.TrimSpace(deps.ServerAPIKey),
		extractor:     deps.Extractor,
		allowList:     deps.AllowList,
		cache:         deps.Cache,
		cacheTTL:      deps.CacheTTL,
		store:         deps.Store,
		metrics:       deps.Metrics,
		labelPolicy:   bluemonday.StrictPolicy(),
	}
	if a.allowList == nil {
		a.allowList = nlp.DefaultAllowList()
	}
	if a.metrics == nil {
		a.metrics = noopMetrics{}
	}
	return a
}

func (a *Analyzer) AllowList() *nlp.AllowList {
	return a.allowList
}

func (a *Analyzer) HasServerCredential() bool {
	return a.serverAPIKey != ""
}

// Analyze classifies the statement and extracts its entities. Credential and
// input checks run before any external call.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*model.Analysis, error) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		apiKey = a.serverAPIKey
	}
	if apiKey == "" {
		a.metrics.RecordError("missing_credential")
		return nil, ErrMissingCredential
	}

	if strings.TrimSpace(req.Statement) == "" {
		a.metrics.RecordError("empty_statement")
		return nil, ErrEmptyStatement
	}

	category, ok := model.ParseCategory(req.Category)
	if !ok {
		a.metrics.RecordError("invalid_category")
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, req.Category)
	}

	classifier, err := a.newClassifier(apiKey)
	if err != nil {
		a.metrics.RecordError("classifier_setup")
		return nil, fmt.Errorf("create classifier: %w", err)
	}

	analysis := &model.Analysis{
		Category:  category,
		Statement: req.Statement,
		Provider:  classifier.Provider(),
		ModelUsed: classifier.Model(),
		CreatedAt: time.Now().UTC(),
	}

	label, cached, err := a.classify(ctx, classifier, category, req.Statement)
	if err != nil {
		slog.Error("error classifying statement", "provider", analysis.Provider, "category", category, "error", err)
		a.metrics.RecordError("classification")
		analysis.Sentiment = model.SentimentError
		analysis.ClassificationError = err.Error()
		return analysis, &ClassificationError{Err: err}
	}
	analysis.Sentiment = label
	analysis.Cached = cached

	start := time.Now()
	entities, err := a.extractor.Extract(ctx, req.Statement)
	a.metrics.RecordLatency("extract", time.Since(start).Seconds())
	if err != nil {
		slog.Error("error extracting entities", "error", err)
		a.metrics.RecordError("extraction")
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	filtered := nlp.FilterEntities(entities, a.allowList)
	analysis.Entities = filtered.Entities
	analysis.FellBack = filtered.FellBack
	if filtered.FellBack {
		a.metrics.RecordEntityFallback()
	}

	if a.store != nil {
		if err := a.store.SaveAnalysis(ctx, analysis); err != nil {
			slog.Error("error saving analysis", "error", err)
			a.metrics.RecordError("store")
		}
	}

	a.metrics.RecordAnalysis(string(category), analysis.Provider)
	slog.Info("statement analyzed",
		"analysis_id", analysis.ID,
		"category", category,
		"sentiment", analysis.Sentiment,
		"entities", len(analysis.Entities),
		"fell_back", analysis.FellBack,
		"cached", analysis.Cached,
	)

	return analysis, nil
}

func (a *Analyzer) classify(ctx context.Context, classifier llm.Classifier, category model.Category, statement string) (string, bool, error) {
	useCache := a.cache != nil && a.cacheTTL > 0
	key := cache.Key(classifier.Provider(), classifier.Model(), string(category), statement)

	if useCache {
		label, ok, err := a.cache.Get(ctx, key)
		if err != nil {
			slog.Warn("sentiment cache lookup failed", "error", err)
		}
		a.metrics.RecordCacheLookup(ok)
		if ok {
			return label, true, nil
		}
	}

	start := time.Now()
	res, err := classifier.Classify(ctx, llm.ClassifyInput{
		Category:  string(category),
		Statement: statement,
	})
	a.metrics.RecordLatency("classify", time.Since(start).Seconds())
	if err != nil {
		return "", false, err
	}

	label := a.sanitizeLabel(res.Label)

	if useCache {
		if err := a.cache.Set(ctx, key, label, a.cacheTTL); err != nil {
			slog.Warn("sentiment cache store failed", "error", err)
		}
	}

	return label, false, nil
}

// sanitizeLabel strips any markup from the provider's free text.
func (a *Analyzer) sanitizeLabel(label string) string {
	return strings.TrimSpace(html.UnescapeString(a.labelPolicy.Sanitize(label)))
}

type noopMetrics struct{}

func (noopMetrics) RecordAnalysis(string, string) {}
func (noopMetrics) RecordError(string)            {}
func (noopMetrics) RecordCacheLookup(bool)        {}
func (noopMetrics) RecordEntityFallback()         {}
func (noopMetrics) RecordLatency(string, float64) {}
