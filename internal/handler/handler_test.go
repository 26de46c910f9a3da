package handler

import (
	"context"
	"time"

	"marketsentiment/internal/model"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/queue"
	"marketsentiment/internal/service"
)

type fakeAnalyzer struct {
	analysis  *model.Analysis
	err       error
	serverKey bool
	calls     int
	last      service.Request
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, req service.Request) (*model.Analysis, error) {
	f.calls++
	f.last = req
	return f.analysis, f.err
}

func (f *fakeAnalyzer) AllowList() *nlp.AllowList {
	return nlp.DefaultAllowList()
}

func (f *fakeAnalyzer) HasServerCredential() bool {
	return f.serverKey
}

type fakeQueue struct {
	jobs []queue.Job
	err  error
}

func (f *fakeQueue) Enqueue(job queue.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

func sampleAnalysis() *model.Analysis {
	return &model.Analysis{
		ID:        7,
		Category:  model.CategoryStock,
		Statement: "Apple beat Q3 estimates",
		Sentiment: "Positive (bullish)",
		Entities:  []model.Entity{{Text: "Apple", Label: "ORG"}},
		Provider:  "openai",
		ModelUsed: "gpt-3.5-turbo",
		CreatedAt: time.Date(2026, 2, 26, 11, 0, 0, 0, time.UTC),
	}
}
