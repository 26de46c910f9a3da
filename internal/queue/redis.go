package queue

import (
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"marketsentiment/db"
)

var (
	// ErrEmpty is returned by Dequeue when the wait timed out.
	ErrEmpty = errors.New("queue is empty")

	ErrMalformedJob = errors.New("malformed job")
)

// MalformedJobError carries a popped entry that could not be decoded. The
// entry is no longer on the queue, so Payload is the only copy.
type MalformedJobError struct {
	Payload string
	Err     error
}

func (e *MalformedJobError) Error() string {
	return fmt.Sprintf("%s: %v", ErrMalformedJob, e.Err)
}

func (e *MalformedJobError) Is(target error) bool {
	return target == ErrMalformedJob
}

func (e *MalformedJobError) Unwrap() error {
	return e.Err
}

// RedisQueue stores jobs in the Redis lists managed by package db.
type RedisQueue struct{}

func NewRedisQueue() *RedisQueue {
	return &RedisQueue{}
}

func (q *RedisQueue) Enqueue(job Job) error {
	data, err := Encode(job)
	if err != nil {
		return err
	}
	return db.PushToQueue(db.AnalyzeQueueKey, data)
}

func (q *RedisQueue) Dequeue(timeout time.Duration) (*Job, error) {
	data, err := db.PopFromQueue(db.AnalyzeQueueKey, timeout)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, err
	}

	job, err := Decode(data)
	if err != nil {
		return nil, &MalformedJobError{Payload: data, Err: err}
	}
	return job, nil
}

func (q *RedisQueue) DeadLetter(job Job) error {
	data, err := Encode(job)
	if err != nil {
		return err
	}
	return db.PushToQueue(db.DeadLetterKey, data)
}

// DeadLetterRaw parks an undecodable payload as is.
func (q *RedisQueue) DeadLetterRaw(payload string) error {
	return db.PushToQueue(db.DeadLetterKey, payload)
}

// Len reports how many jobs are waiting.
func (q *RedisQueue) Len() (int64, error) {
	return db.GetQueueLength(db.AnalyzeQueueKey)
}

// DeadLetterLen reports how many jobs were given up on.
func (q *RedisQueue) DeadLetterLen() (int64, error) {
	return db.GetQueueLength(db.DeadLetterKey)
}
