package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/PabloGalante/haven/internal/adapters/sentiment"
	"github.com/PabloGalante/haven/internal/app/coping"
	"github.com/PabloGalante/haven/internal/app/responder"
	"github.com/PabloGalante/haven/internal/config"
	"github.com/PabloGalante/haven/internal/content"
	"github.com/PabloGalante/haven/internal/domain"
	"github.com/PabloGalante/haven/internal/observability"
)

// core is everything both shells share.
type core struct {
	catalog    *content.Catalog
	sentiment  domain.SentimentProvider
	status     sentiment.Status
	dispatcher *responder.Dispatcher
}

func buildCore(ctx context.Context, cfg *config.Config) (*core, error) {
	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	rng := coping.NewLockedRand(cfg.Seed)
	selector, err := coping.NewSelector(catalog.Coping, rng)
	if err != nil {
		return nil, fmt.Errorf("build coping selector: %w", err)
	}

	provider, status := sentiment.Load(ctx, sentiment.Options{
		Backend:      sentiment.Backend(cfg.Sentiment.Backend),
		ModelPath:    cfg.Sentiment.ModelPath,
		GeminiAPIKey: cfg.Sentiment.GeminiAPIKey,
		GeminiModel:  cfg.Sentiment.GeminiModel,
		OpenAIAPIKey: cfg.Sentiment.OpenAIAPIKey,
		OpenAIModel:  cfg.Sentiment.OpenAIModel,
		Timeout:      cfg.Sentiment.Timeout,
	})
	log := observability.WithFields(
		zap.String("requested", string(status.Requested)),
		zap.String("active", string(status.Active)),
	)
	if status.Degraded {
		log.Warn("sentiment backend unavailable, using lexicon fallback", zap.Error(status.Err))
	} else {
		log.Debug("sentiment backend ready")
	}

	dispatcher, err := responder.New(provider, selector, catalog, rng)
	if err != nil {
		return nil, err
	}

	return &core{
		catalog:    catalog,
		sentiment:  provider,
		status:     status,
		dispatcher: dispatcher,
	}, nil
}
