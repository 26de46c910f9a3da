package nlp

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestProseExtractorEmptyText(t *testing.T) {
	p := NewProseExtractor("")

	for _, text := range []string{"", "   ", "\n\t"} {
		entities, err := p.Extract(context.Background(), text)

		assert.Equal(t, nil, err)
		assert.Equal(t, 0, len(entities))
	}
}

func TestProseExtractorCancelledContext(t *testing.T) {
	p := NewProseExtractor("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Extract(ctx, "Apple shares rose.")

	assert.Equal(t, context.Canceled, err)
}

func TestProseExtractorEntitiesComeFromText(t *testing.T) {
	p := NewProseExtractor("")
	text := "Tim Cook said Apple will open a new office in London next year."

	entities, err := p.Extract(context.Background(), text)

	assert.Equal(t, nil, err)
	for _, e := range entities {
		assert.Equal(t, true, strings.Contains(text, e.Text))
		assert.NotEqual(t, "", e.Label)
	}
}

func TestProseExtractorLoadsModelOnce(t *testing.T) {
	p := NewProseExtractor("")

	assert.Equal(t, nil, p.Warm())
	first := p.model

	_, err := p.Extract(context.Background(), "Microsoft rallied.")

	assert.Equal(t, nil, err)
	assert.Equal(t, true, first == p.model)
}
