package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Job is a statement queued for background analysis.
type Job struct {
	ID         string    `json:"id"`
	Category   string    `json:"category"`
	Statement  string    `json:"statement"`
	Attempts   int       `json:"attempts"`
	LastError  string    `json:"last_error,omitempty"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

func NewJob(category, statement string) Job {
	return Job{
		ID:         uuid.NewString(),
		Category:   category,
		Statement:  statement,
		EnqueuedAt: time.Now().UTC(),
	}
}

func Encode(job Job) (string, error) {
	b, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("encode job: %w", err)
	}
	return string(b), nil
}

func Decode(data string) (*Job, error) {
	var job Job
	if err := json.Unmarshal([]byte(data), &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("decode job: missing id")
	}
	return &job, nil
}
