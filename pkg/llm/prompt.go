package llm

import (
	"fmt"
	"strings"
)

const SystemPrompt = "You are a financial sentiment analysis expert. Respond only with the classification."

const userPromptTemplate = "Classify the following %s statement as Positive (bullish), Negative (bearish), or Neutral in context of market performance:\n\n%s"

// BuildUserPrompt embeds the category name and the statement verbatim.
func BuildUserPrompt(input ClassifyInput) string {
	return fmt.Sprintf(userPromptTemplate, input.Category, input.Statement)
}

func cleanLabel(content string) string {
	return strings.TrimSpace(content)
}
