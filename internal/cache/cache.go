package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const keyPrefix = "marketsentiment:sentiment:"

// SentimentCache stores classification labels keyed by Key.
type SentimentCache interface {
	Get(ctx context.Context, key string) (label string, ok bool, err error)
	Set(ctx context.Context, key string, label string, ttl time.Duration) error
}

func Key(provider, model, category, statement string) string {
	h := sha256.New()
	for _, part := range []string{provider, model, category, statement} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}
