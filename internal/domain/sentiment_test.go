package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PabloGalante/haven/internal/domain"
)

func TestParseCategory(t *testing.T) {
	cases := map[string]domain.Category{
		"negative":    domain.CategoryNegative,
		" Positive\n": domain.CategoryPositive,
		"NEUTRAL":     domain.CategoryNeutral,
	}
	for in, want := range cases {
		got, ok := domain.ParseCategory(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := domain.ParseCategory("mixed")
	assert.False(t, ok)
}

func TestNewSentimentResultScores(t *testing.T) {
	assert.Equal(t, -0.5, domain.NewSentimentResult(domain.CategoryNegative).Score)
	assert.Equal(t, 0.5, domain.NewSentimentResult(domain.CategoryPositive).Score)
	assert.Equal(t, 0.0, domain.NewSentimentResult(domain.CategoryNeutral).Score)

	unknown := domain.NewSentimentResult(domain.Category("mixed"))
	assert.Equal(t, domain.Neutral(), unknown)
}
