package llm

import (
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestBuildUserPrompt(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		statement string
	}{
		{
			name:      "stock statement",
			category:  "Stock",
			statement: "Tesla's new battery tech could revolutionize the EV market",
		},
		{
			name:      "multiline statement kept verbatim",
			category:  "Economy",
			statement: "Inflation cooled.\n  Rates may fall  ",
		},
		{
			name:      "special characters",
			category:  "Index",
			statement: "S&P 500 closed at 5,000 (+1.2%) %s %d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildUserPrompt(ClassifyInput{Category: tt.category, Statement: tt.statement})

			assert.Equal(t, true, strings.Contains(got, tt.category))
			assert.Equal(t, true, strings.Contains(got, tt.statement))
			assert.Equal(t, true, strings.HasSuffix(got, "\n\n"+tt.statement))
		})
	}
}

func TestBuildUserPromptTemplate(t *testing.T) {
	got := BuildUserPrompt(ClassifyInput{Category: "Crypto", Statement: "Bitcoin rallied"})
	want := "Classify the following Crypto statement as Positive (bullish), Negative (bearish), or Neutral in context of market performance:\n\nBitcoin rallied"

	assert.Equal(t, want, got)
}

func TestCleanLabel(t *testing.T) {
	assert.Equal(t, "Positive (bullish)", cleanLabel("  Positive (bullish)\n"))
	assert.Equal(t, "", cleanLabel(" \n\t"))
}

func TestNewClassifier(t *testing.T) {
	c, err := NewClassifier("", "sk-test", Options{})
	assert.Equal(t, nil, err)
	assert.Equal(t, ProviderOpenAI, c.Provider())
	assert.Equal(t, "gpt-3.5-turbo", c.Model())

	c, err = NewClassifier(ProviderAnthropic, "sk-test", Options{Model: "claude-test"})
	assert.Equal(t, nil, err)
	assert.Equal(t, ProviderAnthropic, c.Provider())
	assert.Equal(t, "claude-test", c.Model())

	_, err = NewClassifier("mistral", "sk-test", Options{})
	assert.NotEqual(t, nil, err)
}
