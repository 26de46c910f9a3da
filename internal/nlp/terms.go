package nlp

import (
	"context"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"marketsentiment/internal/model"
)

// TermLabel tags entities found by matching allow-list terms in the text.
const TermLabel = "FIN_ASSET"

// FindIn returns the allow-list terms that occur verbatim in text as whole
// words, ordered by first occurrence.
func (a *AllowList) FindIn(text string) []model.Entity {
	if a == nil || text == "" {
		return nil
	}

	type hit struct {
		term string
		pos  int
	}
	var hits []hit
	for _, term := range a.order {
		if pos := indexWord(text, term); pos >= 0 {
			hits = append(hits, hit{term: term, pos: pos})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].pos < hits[j].pos
	})

	out := make([]model.Entity, 0, len(hits))
	for _, h := range hits {
		out = append(out, model.Entity{Text: h.term, Label: TermLabel})
	}
	return out
}

func indexWord(text, term string) int {
	offset := 0
	for {
		i := strings.Index(text[offset:], term)
		if i < 0 {
			return -1
		}
		start := offset + i
		end := start + len(term)

		before, _ := utf8.DecodeLastRuneInString(text[:start])
		after, _ := utf8.DecodeRuneInString(text[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return start
		}
		offset = start + 1
	}
}

func isWordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// MergeEntities appends secondary to primary, skipping any entity whose text
// is already present. On a duplicate the first label seen wins.
func MergeEntities(primary, secondary []model.Entity) []model.Entity {
	seen := make(map[string]struct{}, len(primary)+len(secondary))
	out := make([]model.Entity, 0, len(primary)+len(secondary))
	for _, list := range [][]model.Entity{primary, secondary} {
		for _, e := range list {
			if _, ok := seen[e.Text]; ok {
				continue
			}
			seen[e.Text] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

// TermExtractor adds allow-list terms found in the text to the entities of
// the wrapped extractor. Multi-word terms like "Dow Jones" are not always
// recognized as a single span by the NER model.
type TermExtractor struct {
	base  Extractor
	terms *AllowList
}

func NewTermExtractor(base Extractor, terms *AllowList) *TermExtractor {
	return &TermExtractor{base: base, terms: terms}
}

func (t *TermExtractor) Extract(ctx context.Context, text string) ([]model.Entity, error) {
	recognized, err := t.base.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return MergeEntities(t.terms.FindIn(text), recognized), nil
}
