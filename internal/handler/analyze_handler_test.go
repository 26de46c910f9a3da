package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"marketsentiment/internal/model"
	"marketsentiment/internal/service"
)

func newTestAnalyzeRouter(analyzer Analyzer, q JobQueue) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAnalyzeHandler(analyzer, q)
	r.POST("/api/analyze", h.Analyze)
	r.POST("/api/analyses/queue", h.Enqueue)
	r.GET("/api/categories", h.GetCategories)
	return r
}

func postJSON(r *gin.Engine, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyze_Success(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: sampleAnalysis()}
	r := newTestAnalyzeRouter(analyzer, nil)

	w := postJSON(r, "/api/analyze", `{"category":"Stock","statement":"Apple beat Q3 estimates"}`,
		map[string]string{"X-API-Key": "sk-user"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sk-user", analyzer.last.APIKey)
	assert.Equal(t, "Stock", analyzer.last.Category)
	assert.Equal(t, "Apple beat Q3 estimates", analyzer.last.Statement)

	var res AnalysisResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, int64(7), res.ID)
	assert.Equal(t, "Positive (bullish)", res.Sentiment)
	assert.Equal(t, "Stock", res.Category)
	assert.Equal(t, 1, len(res.Entities))
	assert.Equal(t, "Apple", res.Entities[0].Text)
	assert.Equal(t, "ORG", res.Entities[0].Label)
	assert.Equal(t, false, res.EntitiesFellBack)
	assert.Equal(t, "2026-02-26T11:00:00Z", res.CreatedAt)
}

func TestAnalyze_BearerToken(t *testing.T) {
	analyzer := &fakeAnalyzer{analysis: sampleAnalysis()}
	r := newTestAnalyzeRouter(analyzer, nil)

	postJSON(r, "/api/analyze", `{"category":"Stock","statement":"x"}`,
		map[string]string{"Authorization": "Bearer sk-bearer"})

	assert.Equal(t, "sk-bearer", analyzer.last.APIKey)
}

func TestAnalyze_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"category":`},
		{name: "missing category", body: `{"statement":"Apple rose"}`},
		{name: "unknown category", body: `{"category":"Bonds","statement":"Yields rose"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := &fakeAnalyzer{}
			r := newTestAnalyzeRouter(analyzer, nil)

			w := postJSON(r, "/api/analyze", tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, analyzer.calls)
		})
	}
}

func TestAnalyze_ValidationDetails(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{}, nil)

	w := postJSON(r, "/api/analyze", `{"category":"Bonds"}`, nil)

	var res struct {
		Details []ValidationError `json:"details"`
	}
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, 1, len(res.Details))
	assert.Equal(t, "ERR_ONEOF", res.Details[0].Code)
	assert.Equal(t, "category", res.Details[0].Field)
}

func TestAnalyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "missing credential", err: service.ErrMissingCredential, code: http.StatusUnauthorized},
		{name: "empty statement", err: service.ErrEmptyStatement, code: http.StatusBadRequest},
		{name: "invalid category", err: service.ErrInvalidCategory, code: http.StatusBadRequest},
		{name: "extraction failure", err: errors.New("model unavailable"), code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestAnalyzeRouter(&fakeAnalyzer{err: tt.err}, nil)

			w := postJSON(r, "/api/analyze", `{"category":"Stock","statement":""}`, nil)

			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestAnalyze_ClassificationError(t *testing.T) {
	a := sampleAnalysis()
	a.Sentiment = model.SentimentError
	a.ClassificationError = "openai API error: 401"
	a.Entities = nil
	analyzer := &fakeAnalyzer{
		analysis: a,
		err:      &service.ClassificationError{Err: errors.New("openai API error: 401")},
	}
	r := newTestAnalyzeRouter(analyzer, nil)

	w := postJSON(r, "/api/analyze", `{"category":"Stock","statement":"Apple"}`, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var res AnalysisResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, "Error", res.Sentiment)
	assert.Equal(t, "openai API error: 401", res.Error)
	assert.Equal(t, 0, len(res.Entities))
}

func TestEnqueue(t *testing.T) {
	q := &fakeQueue{}
	r := newTestAnalyzeRouter(&fakeAnalyzer{serverKey: true}, q)

	w := postJSON(r, "/api/analyses/queue", `{"category":"Crypto","statement":"Ethereum upgrade shipped"}`, nil)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, 1, len(q.jobs))
	assert.Equal(t, "Crypto", q.jobs[0].Category)

	var res QueuedResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, q.jobs[0].ID, res.JobID)
}

func TestEnqueue_Errors(t *testing.T) {
	t.Run("queue disabled", func(t *testing.T) {
		r := newTestAnalyzeRouter(&fakeAnalyzer{serverKey: true}, nil)
		w := postJSON(r, "/api/analyses/queue", `{"category":"Stock","statement":"x"}`, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("no server key", func(t *testing.T) {
		r := newTestAnalyzeRouter(&fakeAnalyzer{}, &fakeQueue{})
		w := postJSON(r, "/api/analyses/queue", `{"category":"Stock","statement":"x"}`, nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("empty statement", func(t *testing.T) {
		q := &fakeQueue{}
		r := newTestAnalyzeRouter(&fakeAnalyzer{serverKey: true}, q)
		w := postJSON(r, "/api/analyses/queue", `{"category":"Stock","statement":"   "}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 0, len(q.jobs))
	})

	t.Run("redis down", func(t *testing.T) {
		r := newTestAnalyzeRouter(&fakeAnalyzer{serverKey: true}, &fakeQueue{err: errors.New("redis down")})
		w := postJSON(r, "/api/analyses/queue", `{"category":"Stock","statement":"x"}`, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetCategories(t *testing.T) {
	r := newTestAnalyzeRouter(&fakeAnalyzer{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/api/categories", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res CategoriesResponse
	json.Unmarshal(w.Body.Bytes(), &res)

	assert.Equal(t, []string{"Stock", "Index", "Crypto", "Economy", "Other"}, res.Categories)
	assert.Equal(t, 9, len(res.AllowList))
}
