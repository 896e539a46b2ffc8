package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/haven/internal/domain"
)

// ErrModelNotFound is returned when the artifact file does not exist.
var ErrModelNotFound = errors.New("sentiment model artifact not found")

// Model is a linear classifier over TF-IDF features, exported by the
// training notebook as JSON (or YAML).
type Model struct {
	labels     []domain.Category
	vocabulary map[string]int
	idf        []float64
	coef       [][]float64
	intercept  []float64
	sublinear  bool
}

type modelFile struct {
	Labels      []string       `yaml:"labels"`
	Vocabulary  map[string]int `yaml:"vocabulary"`
	IDF         []float64      `yaml:"idf"`
	Coef        [][]float64    `yaml:"coef"`
	Intercept   []float64      `yaml:"intercept"`
	SublinearTF bool           `yaml:"sublinear_tf"`
}

// LoadModel reads and validates an artifact. JSON is valid YAML, so both
// formats go through the same decoder.
func LoadModel(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return m, nil
}

// ParseModel decodes and validates artifact bytes.
func ParseModel(data []byte) (*Model, error) {
	var f modelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	n := len(f.Vocabulary)
	switch {
	case len(f.Labels) < 2:
		return nil, fmt.Errorf("need at least two labels, got %d", len(f.Labels))
	case n == 0:
		return nil, errors.New("empty vocabulary")
	case len(f.IDF) != n:
		return nil, fmt.Errorf("idf has %d entries, vocabulary %d", len(f.IDF), n)
	case len(f.Coef) != len(f.Labels):
		return nil, fmt.Errorf("coef has %d rows, labels %d", len(f.Coef), len(f.Labels))
	case len(f.Intercept) != len(f.Labels):
		return nil, fmt.Errorf("intercept has %d entries, labels %d", len(f.Intercept), len(f.Labels))
	}

	m := &Model{
		vocabulary: f.Vocabulary,
		idf:        f.IDF,
		coef:       f.Coef,
		intercept:  f.Intercept,
		sublinear:  f.SublinearTF,
	}
	for i, l := range f.Labels {
		c, ok := domain.ParseCategory(l)
		if !ok {
			return nil, fmt.Errorf("label %d: unknown category %q", i, l)
		}
		m.labels = append(m.labels, c)
		if len(f.Coef[i]) != n {
			return nil, fmt.Errorf("coef row %d has %d weights, vocabulary %d", i, len(f.Coef[i]), n)
		}
	}
	for w, idx := range f.Vocabulary {
		if idx < 0 || idx >= n {
			return nil, fmt.Errorf("vocabulary index of %q out of range: %d", w, idx)
		}
	}
	return m, nil
}

// Predict returns the highest scoring category. Text without any known
// token is neutral.
func (m *Model) Predict(text string) domain.Category {
	features := m.vectorize(preprocess(text))
	if len(features) == 0 {
		return domain.CategoryNeutral
	}

	best, bestScore := 0, math.Inf(-1)
	for k := range m.labels {
		score := m.intercept[k]
		for idx, v := range features {
			score += m.coef[k][idx] * v
		}
		if score > bestScore {
			best, bestScore = k, score
		}
	}
	return m.labels[best]
}

// vectorize builds the sparse, L2-normalised TF-IDF vector.
func (m *Model) vectorize(tokens []string) map[int]float64 {
	counts := make(map[int]float64)
	for _, t := range tokens {
		if idx, ok := m.vocabulary[t]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx, tf := range counts {
		if m.sublinear {
			tf = 1 + math.Log(tf)
		}
		v := tf * m.idf[idx]
		counts[idx] = v
		norm += v * v
	}
	if norm == 0 {
		return nil
	}

	norm = math.Sqrt(norm)
	for idx := range counts {
		counts[idx] /= norm
	}
	return counts
}

// Classify implements domain.SentimentProvider.
func (m *Model) Classify(_ context.Context, text string) domain.SentimentResult {
	return domain.NewSentimentResult(m.Predict(text))
}
