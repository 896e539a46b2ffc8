// Package sentiment implements the sentiment providers the responder
// consumes: a trained TF-IDF model, hosted LLM labelers and a lexical
// fallback analyzer.
package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PabloGalante/haven/internal/domain"
)

type Backend string

const (
	BackendModel   Backend = "model"
	BackendGemini  Backend = "gemini"
	BackendOpenAI  Backend = "openai"
	BackendLexicon Backend = "lexicon"
)

type Options struct {
	Backend   Backend
	ModelPath string

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey string
	OpenAIModel  string

	// Timeout bounds each remote call.
	Timeout time.Duration
}

// Status is the outcome of Load, decided once at startup.
type Status struct {
	Requested Backend
	Active    Backend
	// Degraded is set when Active is the lexicon fallback because the
	// requested backend could not start; Err says why.
	Degraded bool
	Err      error
}

// Load builds the requested provider. It never fails: when the requested
// backend cannot start the lexicon analyzer is returned and Status says so.
func Load(ctx context.Context, opts Options) (domain.SentimentProvider, Status) {
	lexicon := DefaultLexicon()
	requested := Backend(strings.ToLower(string(opts.Backend)))
	st := Status{Requested: requested, Active: requested}

	var (
		provider domain.SentimentProvider
		err      error
	)
	switch requested {
	case BackendLexicon:
		return lexicon, st
	case BackendModel:
		var m *Model
		m, err = LoadModel(opts.ModelPath)
		if err == nil {
			provider = m
		}
	case BackendGemini:
		provider, err = NewGeminiClassifier(ctx, opts.GeminiAPIKey, opts.GeminiModel, opts.Timeout, lexicon)
	case BackendOpenAI:
		provider, err = NewOpenAIClassifier(opts.OpenAIAPIKey, opts.OpenAIModel, opts.Timeout, lexicon)
	default:
		err = fmt.Errorf("unknown sentiment backend %q", opts.Backend)
	}

	if err != nil {
		st.Active = BackendLexicon
		st.Degraded = true
		st.Err = err
		return lexicon, st
	}
	return provider, st
}
