package sentiment

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/haven/internal/domain"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// Polarity cut-offs between categories.
const (
	negativePolarity = -0.05
	positivePolarity = 0.05
)

// Lexicon is the fallback analyzer: the mean polarity of the polar words
// in the text, adjusted by intensifiers and negations.
type Lexicon struct {
	words        map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

type lexiconFile struct {
	Words        map[string]float64 `yaml:"words"`
	Intensifiers map[string]float64 `yaml:"intensifiers"`
	Negations    []string           `yaml:"negations"`
}

// ParseLexicon decodes a YAML lexicon.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode lexicon: %w", err)
	}
	if len(f.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}
	for w, p := range f.Words {
		if p < -1 || p > 1 {
			return nil, fmt.Errorf("lexicon: polarity of %q out of range: %v", w, p)
		}
	}
	return &Lexicon{
		words:        f.Words,
		intensifiers: f.Intensifiers,
		negations:    toSet(f.Negations),
	}, nil
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	l, err := ParseLexicon(lexiconYAML)
	if err != nil {
		panic(fmt.Sprintf("sentiment: embedded lexicon: %v", err))
	}
	return l
})

// DefaultLexicon returns the embedded lexicon.
func DefaultLexicon() *Lexicon {
	return defaultLexicon()
}

// Polarity returns a value in [-1, 1]; 0 when no polar word is present.
func (l *Lexicon) Polarity(text string) float64 {
	var (
		sum, n  float64
		mult    = 1.0
		negated bool
	)

	for _, w := range words(text) {
		if l.isNegation(w) {
			negated = true
			continue
		}
		if m, ok := l.intensifiers[w]; ok {
			mult *= m
			continue
		}
		p, ok := l.words[w]
		if !ok {
			continue
		}

		p *= mult
		if negated {
			p *= -0.5
		}
		sum += clamp(p)
		n++

		mult, negated = 1.0, false
	}

	if n == 0 {
		return 0
	}
	return clamp(sum / n)
}

func (l *Lexicon) isNegation(w string) bool {
	if strings.HasSuffix(w, "n't") {
		return true
	}
	_, ok := l.negations[strings.ReplaceAll(w, "'", "")]
	return ok
}

// Classify implements domain.SentimentProvider.
func (l *Lexicon) Classify(_ context.Context, text string) domain.SentimentResult {
	return domain.NewSentimentResult(categoryForPolarity(l.Polarity(text)))
}

func categoryForPolarity(p float64) domain.Category {
	switch {
	case p <= negativePolarity:
		return domain.CategoryNegative
	case p >= positivePolarity:
		return domain.CategoryPositive
	default:
		return domain.CategoryNeutral
	}
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
