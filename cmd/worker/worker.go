package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"marketsentiment/internal/model"
	"marketsentiment/internal/queue"
	"marketsentiment/internal/service"
)

type jobQueue interface {
	Dequeue(timeout time.Duration) (*queue.Job, error)
	Enqueue(job queue.Job) error
	DeadLetter(job queue.Job) error
	DeadLetterRaw(payload string) error
}

type jobAnalyzer interface {
	Analyze(ctx context.Context, req service.Request) (*model.Analysis, error)
}

type worker struct {
	jobs        jobQueue
	analyzer    jobAnalyzer
	maxAttempts int
	popTimeout  time.Duration
	retryDelay  time.Duration
}

func (w *worker) run(ctx context.Context) {
	for ctx.Err() == nil {
		w.next(ctx)
	}
}

// next pops and handles at most one job. It never stops the worker: bad
// entries go to the dead-letter list and Redis errors are retried later.
func (w *worker) next(ctx context.Context) {
	job, err := w.jobs.Dequeue(w.popTimeout)

	var malformed *queue.MalformedJobError
	switch {
	case errors.Is(err, queue.ErrEmpty):
		return
	case errors.As(err, &malformed):
		slog.Warn("malformed job in queue, moving to dead letter", "error", malformed.Err)
		if err := w.jobs.DeadLetterRaw(malformed.Payload); err != nil {
			slog.Error("error writing dead letter", "error", err)
		}
		return
	case err != nil:
		slog.Error("error popping from Redis queue", "error", err)
		w.wait(ctx)
		return
	}

	w.process(ctx, job)
}

func (w *worker) process(ctx context.Context, job *queue.Job) {
	analysis, err := w.analyzer.Analyze(ctx, service.Request{
		Category:  job.Category,
		Statement: job.Statement,
	})

	if service.IsValidation(err) {
		slog.Warn("invalid job, moving to dead letter", "job_id", job.ID, "error", err)
		job.LastError = err.Error()
		w.deadLetter(job)
		return
	}

	if err != nil {
		job.Attempts++
		job.LastError = err.Error()
		slog.Error("error analyzing job", "job_id", job.ID, "attempts", job.Attempts, "error", err)

		if job.Attempts >= w.maxAttempts {
			slog.Warn("job exceeded max attempts, moving to dead letter", "job_id", job.ID, "attempts", job.Attempts)
			w.deadLetter(job)
			return
		}

		if err := w.jobs.Enqueue(*job); err != nil {
			slog.Error("error re-queueing job", "job_id", job.ID, "error", err)
		}

		w.wait(ctx)
		return
	}

	slog.Info("job analyzed successfully", "job_id", job.ID, "analysis_id", analysis.ID, "sentiment", analysis.Sentiment)
}

func (w *worker) deadLetter(job *queue.Job) {
	if err := w.jobs.DeadLetter(*job); err != nil {
		slog.Error("error writing dead letter", "job_id", job.ID, "error", err)
	}
}

func (w *worker) wait(ctx context.Context) {
	if w.retryDelay <= 0 {
		return
	}
	t := time.NewTimer(w.retryDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
