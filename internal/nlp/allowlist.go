package nlp

import (
	"strings"

	"marketsentiment/internal/model"
)

// DefaultStockEntities are the terms preferred over other recognized entities.
var DefaultStockEntities = []string{
	"Apple",
	"Google",
	"Microsoft",
	"Tesla",
	"NASDAQ",
	"Dow Jones",
	"S&P 500",
	"Bitcoin",
	"Ethereum",
}

// AllowList matches entity text exactly, case included.
type AllowList struct {
	terms map[string]struct{}
	order []string
}

func NewAllowList(terms []string) *AllowList {
	a := &AllowList{terms: make(map[string]struct{}, len(terms))}
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := a.terms[t]; ok {
			continue
		}
		a.terms[t] = struct{}{}
		a.order = append(a.order, t)
	}
	return a
}

func DefaultAllowList() *AllowList {
	return NewAllowList(DefaultStockEntities)
}

func (a *AllowList) Contains(text string) bool {
	if a == nil {
		return false
	}
	_, ok := a.terms[text]
	return ok
}

func (a *AllowList) Terms() []string {
	if a == nil {
		return nil
	}
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

type FilterResult struct {
	Entities []model.Entity
	// FellBack is set when nothing matched and Entities is the full extracted list.
	FellBack bool
}

// FilterEntities keeps the entities whose text is on the allow-list. When none
// match, the full list is returned unchanged with FellBack set.
func FilterEntities(entities []model.Entity, allow *AllowList) FilterResult {
	matched := make([]model.Entity, 0, len(entities))
	for _, e := range entities {
		if allow.Contains(e.Text) {
			matched = append(matched, e)
		}
	}

	if len(matched) > 0 {
		return FilterResult{Entities: matched}
	}

	return FallbackToAll(entities)
}

func FallbackToAll(entities []model.Entity) FilterResult {
	all := make([]model.Entity, len(entities))
	copy(all, entities)
	return FilterResult{Entities: all, FellBack: len(entities) > 0}
}
