package sentiment

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/PabloGalante/haven/internal/domain"
	"github.com/PabloGalante/haven/internal/observability"
)

const labelInstruction = `You label the sentiment of short messages written by teenagers.
Answer with exactly one word: negative, neutral or positive.`

// completeFunc sends text to a remote model and returns its raw answer.
type completeFunc func(ctx context.Context, text string) (string, error)

// remoteClassifier asks a hosted LLM for a label. Call failures and
// unusable answers fall back to the local analyzer for that call only.
type remoteClassifier struct {
	name     string
	complete completeFunc
	timeout  time.Duration
	fallback domain.SentimentProvider
}

func (r *remoteClassifier) Classify(ctx context.Context, text string) domain.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return domain.Neutral()
	}

	log := observability.LoggerFromContext(ctx).With(zap.String("backend", r.name))

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	answer, err := r.complete(ctx, text)
	if err != nil {
		log.Warn("remote sentiment failed, using fallback", zap.Error(err))
		return r.fallback.Classify(ctx, text)
	}

	c, ok := parseLabel(answer)
	if !ok {
		log.Warn("remote sentiment answer not understood, using fallback", zap.String("answer", answer))
		return r.fallback.Classify(ctx, text)
	}
	return domain.NewSentimentResult(c)
}

// parseLabel accepts the answer only when it names exactly one distinct
// category and negates nothing. "not negative" or "positive or negative"
// are not understood.
func parseLabel(answer string) (domain.Category, bool) {
	lex := DefaultLexicon()

	var found domain.Category
	for _, w := range words(answer) {
		if lex.isNegation(w) {
			return "", false
		}
		c, ok := domain.ParseCategory(w)
		if !ok {
			continue
		}
		if found != "" && found != c {
			return "", false
		}
		found = c
	}
	return found, found != ""
}
