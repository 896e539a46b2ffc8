package sentiment

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/domain"
)

func TestLoadModelPredicts(t *testing.T) {
	m, err := LoadModel(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)

	tests := []struct {
		text string
		want domain.Category
	}{
		{"I am so happy!", domain.CategoryPositive},
		{"Feeling sad and terrible.", domain.CategoryNegative},
		{"Just doing my homework.", domain.CategoryNeutral},
		{"The bus was late", domain.CategoryNeutral},
		{"", domain.CategoryNeutral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Predict(tt.text), tt.text)
	}

	res := m.Classify(context.Background(), "excited and happy")
	assert.Equal(t, domain.SentimentResult{Category: domain.CategoryPositive, Score: 0.5}, res)
}

func TestLoadModelErrors(t *testing.T) {
	_, err := LoadModel(filepath.Join("testdata", "nope.json"))
	assert.ErrorIs(t, err, ErrModelNotFound)

	_, err = LoadModel(filepath.Join("testdata", "corrupt.json"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrModelNotFound)
	assert.Contains(t, err.Error(), "idf has 2 entries")
}

func TestParseModelValidation(t *testing.T) {
	bad := map[string]string{
		"one label":     `{"labels": ["negative"], "vocabulary": {"a": 0}, "idf": [1], "coef": [[1]], "intercept": [0]}`,
		"unknown label": `{"labels": ["negative", "meh"], "vocabulary": {"a": 0}, "idf": [1], "coef": [[1], [1]], "intercept": [0, 0]}`,
		"short row":     `{"labels": ["negative", "positive"], "vocabulary": {"a": 0, "b": 1}, "idf": [1, 1], "coef": [[1, 1], [1]], "intercept": [0, 0]}`,
		"bad index":     `{"labels": ["negative", "positive"], "vocabulary": {"a": 5}, "idf": [1], "coef": [[1], [1]], "intercept": [0, 0]}`,
		"not yaml":      `{labels: [`,
	}
	for name, body := range bad {
		_, err := ParseModel([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestPreprocess(t *testing.T) {
	assert.Equal(t, []string{"feel", "terrible", "today", "nothing", "going", "right"},
		preprocess("I feel terrible today, nothing is going right."))
	assert.Empty(t, preprocess("!!! ..."))
}
