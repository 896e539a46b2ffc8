package domain

import "strings"

// Representative scores for each category. Providers that only yield a
// category report these fixed points, so severity inside "negative" is lost.
const (
	NegativeScore = -0.5
	NeutralScore  = 0.0
	PositiveScore = 0.5
)

// SentimentResult is produced fresh for every input.
type SentimentResult struct {
	Category Category
	Score    float64
}

// NewSentimentResult pairs a category with its representative score.
// Unknown categories are treated as neutral.
func NewSentimentResult(c Category) SentimentResult {
	switch c {
	case CategoryNegative:
		return SentimentResult{Category: CategoryNegative, Score: NegativeScore}
	case CategoryPositive:
		return SentimentResult{Category: CategoryPositive, Score: PositiveScore}
	default:
		return SentimentResult{Category: CategoryNeutral, Score: NeutralScore}
	}
}

// Neutral is the result for blank or unclassifiable text.
func Neutral() SentimentResult {
	return NewSentimentResult(CategoryNeutral)
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
