// Package responder decides the bot's reply to one user message.
package responder

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/PabloGalante/haven/internal/app/coping"
	"github.com/PabloGalante/haven/internal/app/crisis"
	"github.com/PabloGalante/haven/internal/content"
	"github.com/PabloGalante/haven/internal/domain"
	"github.com/PabloGalante/haven/internal/observability"
)

// Scores below this are treated as a crisis even without a keyword.
const crisisScoreThreshold = -0.8

// Decision is the reply plus what produced it.
type Decision struct {
	Text      string
	Branch    domain.Branch
	Intent    string // set for BranchIntent
	Sentiment domain.SentimentResult
}

type intentRule struct {
	name     string
	keywords []string
	reply    string
	coping   bool
}

// Dispatcher holds no per-conversation state; one instance serves every
// session.
type Dispatcher struct {
	sentiment domain.SentimentProvider
	coping    *coping.Selector
	rng       coping.Picker

	crisisKeywords []string
	empathy        []string
	affirmations   []string
	invitation     string
	intents        []intentRule
	fallback       string
}

// New builds a dispatcher from a validated catalog.
func New(
	sentiment domain.SentimentProvider,
	selector *coping.Selector,
	catalog *content.Catalog,
	rng coping.Picker,
) (*Dispatcher, error) {
	if sentiment == nil || selector == nil || catalog == nil || rng == nil {
		return nil, fmt.Errorf("responder: missing dependency")
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("responder: %w", err)
	}

	d := &Dispatcher{
		sentiment:      sentiment,
		coping:         selector,
		rng:            rng,
		crisisKeywords: foldAll(catalog.CrisisKeywords),
		empathy:        append([]string(nil), catalog.Empathy...),
		affirmations:   append([]string(nil), catalog.Affirmations...),
		invitation:     catalog.PositiveInvitation,
		fallback:       catalog.Fallback,
	}
	for _, r := range catalog.Intents {
		d.intents = append(d.intents, intentRule{
			name:     r.Name,
			keywords: foldAll(r.Keywords),
			reply:    r.Reply,
			coping:   r.Action == content.ActionCoping,
		})
	}
	return d, nil
}

// Respond returns the reply text for userInput.
func (d *Dispatcher) Respond(ctx context.Context, userInput string) string {
	return d.Decide(ctx, userInput).Text
}

// Decide applies, in order: crisis check, negative branch, positive branch,
// neutral keyword intents, generic fallback.
func (d *Dispatcher) Decide(ctx context.Context, userInput string) Decision {
	normalized := fold(userInput)

	sentiment := domain.Neutral()
	if strings.TrimSpace(normalized) != "" {
		sentiment = d.sentiment.Classify(ctx, normalized)
	}

	dec := d.decide(normalized, sentiment)

	log := observability.LoggerFromContext(ctx)
	fields := []zap.Field{
		zap.String("branch", string(dec.Branch)),
		zap.String("category", string(sentiment.Category)),
		zap.Float64("score", sentiment.Score),
	}
	if dec.Branch == domain.BranchCrisis {
		log.Warn("crisis resources returned", fields...)
	} else {
		log.Debug("reply decided", append(fields, zap.String("intent", dec.Intent))...)
	}

	return dec
}

func (d *Dispatcher) decide(normalized string, sentiment domain.SentimentResult) Decision {
	dec := Decision{Sentiment: sentiment}

	if containsAny(normalized, d.crisisKeywords) || sentiment.Score < crisisScoreThreshold {
		dec.Branch = domain.BranchCrisis
		dec.Text = crisis.Resources()
		return dec
	}

	switch sentiment.Category {
	case domain.CategoryNegative:
		dec.Branch = domain.BranchNegative
		dec.Text = coping.Pick(d.rng, d.empathy) + " " + d.coping.Suggest(sentiment.Score)
		return dec
	case domain.CategoryPositive:
		dec.Branch = domain.BranchPositive
		dec.Text = coping.Pick(d.rng, d.affirmations) + " " + d.invitation
		return dec
	}

	for _, r := range d.intents {
		if !containsAny(normalized, r.keywords) {
			continue
		}
		dec.Branch = domain.BranchIntent
		dec.Intent = r.name
		if r.coping {
			dec.Text = d.coping.Suggest(sentiment.Score)
		} else {
			dec.Text = r.reply
		}
		return dec
	}

	dec.Branch = domain.BranchFallback
	dec.Text = d.fallback
	return dec
}

// containsAny is a verbatim substring match: "hi" also matches "this".
func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

var apostrophes = strings.NewReplacer("\u2019", "'", "\u2018", "'")

// fold case-folds s and straightens typographic apostrophes so "can’t"
// matches "can't". A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(apostrophes.Replace(s))
}

func foldAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		out = append(out, fold(s))
	}
	return out
}
