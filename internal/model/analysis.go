package model

import "time"

type Category string

const (
	CategoryStock   Category = "Stock"
	CategoryIndex   Category = "Index"
	CategoryCrypto  Category = "Crypto"
	CategoryEconomy Category = "Economy"
	CategoryOther   Category = "Other"
)

// Categories is the closed set offered to the user, in display order.
var Categories = []Category{
	CategoryStock,
	CategoryIndex,
	CategoryCrypto,
	CategoryEconomy,
	CategoryOther,
}

func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// SentimentError is shown in place of a label when classification fails.
const SentimentError = "Error"

type Entity struct {
	Text  string
	Label string
}

type Analysis struct {
	ID                  int64
	Category            Category
	Statement           string
	Sentiment           string
	ClassificationError string
	Entities            []Entity
	FellBack            bool
	Provider            string
	ModelUsed           string
	Cached              bool
	CreatedAt           time.Time
}

func (a *Analysis) EntityTexts() []string {
	texts := make([]string, len(a.Entities))
	for i, e := range a.Entities {
		texts[i] = e.Text
	}
	return texts
}
