package sentiment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/domain"
)

func TestLexiconClassify(t *testing.T) {
	l := DefaultLexicon()
	ctx := context.Background()

	tests := []struct {
		text string
		want domain.Category
	}{
		{"I feel terrible today, nothing is going right.", domain.CategoryNegative},
		{"I'm so happy and excited for the weekend!", domain.CategoryPositive},
		{"Just doing my homework.", domain.CategoryNeutral},
		{"My friends always make me feel good.", domain.CategoryPositive},
		{"I'm not happy", domain.CategoryNegative},
		{"i don't feel bad", domain.CategoryPositive},
		{"hello", domain.CategoryNeutral},
		{"", domain.CategoryNeutral},
	}
	for _, tt := range tests {
		got := l.Classify(ctx, tt.text)
		assert.Equal(t, tt.want, got.Category, tt.text)
		assert.Equal(t, domain.NewSentimentResult(tt.want).Score, got.Score, tt.text)
	}
}

func TestLexiconPolarityBounds(t *testing.T) {
	l := DefaultLexicon()
	assert.Equal(t, 1.0, l.Polarity("extremely incredibly awesome"))
	assert.Equal(t, -1.0, l.Polarity("really really terrible"))
	assert.InDelta(t, 0.0, l.Polarity("the bus is late"), 1e-9)
}

func TestParseLexiconRejectsBadInput(t *testing.T) {
	_, err := ParseLexicon([]byte("words: {}"))
	assert.Error(t, err)

	_, err = ParseLexicon([]byte("words: {great: 3}"))
	assert.Error(t, err)

	l, err := ParseLexicon([]byte("words: {meh: -0.4}\nnegations: [not]"))
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPositive, l.Classify(context.Background(), "not meh").Category)
}
