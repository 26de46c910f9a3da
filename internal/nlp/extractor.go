package nlp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jdkato/prose/v2"

	"marketsentiment/internal/model"
)

const warmupText = "Apple shares rose in New York."

type Extractor interface {
	Extract(ctx context.Context, text string) ([]model.Entity, error)
}

// ProseExtractor runs the pretrained prose NER model. The model is loaded on
// first use and shared for the lifetime of the process.
type ProseExtractor struct {
	modelPath string

	once    sync.Once
	model   *prose.Model
	loadErr error
}

func NewProseExtractor(modelPath string) *ProseExtractor {
	return &ProseExtractor{modelPath: modelPath}
}

func (p *ProseExtractor) load() (*prose.Model, error) {
	p.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				p.loadErr = fmt.Errorf("failed to load NLP model %q: %v", p.modelPath, r)
			}
		}()

		if p.modelPath != "" {
			p.model = prose.ModelFromDisk(p.modelPath)
			return
		}

		// prose only exposes its bundled model through a parsed document.
		doc, err := prose.NewDocument(warmupText, prose.WithSegmentation(false))
		if err != nil {
			p.loadErr = fmt.Errorf("failed to load default NLP model: %w", err)
			return
		}
		p.model = doc.Model
	})
	return p.model, p.loadErr
}

func (p *ProseExtractor) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Entity{}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := p.load()
	if err != nil {
		return nil, err
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false), prose.UsingModel(m))
	if err != nil {
		return nil, fmt.Errorf("nlp pipeline error: %w", err)
	}

	ents := doc.Entities()
	entities := make([]model.Entity, 0, len(ents))
	for _, e := range ents {
		entities = append(entities, model.Entity{Text: e.Text, Label: e.Label})
	}

	return entities, nil
}

// Warm loads the model ahead of the first request.
func (p *ProseExtractor) Warm() error {
	_, err := p.load()
	return err
}
