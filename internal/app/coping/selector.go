// Package coping picks a supportive suggestion for a sentiment score.
package coping

import (
	"fmt"

	"github.com/PabloGalante/haven/internal/domain"
)

// Score boundaries between tiers.
const (
	moderateThreshold = -0.5
	negativeThreshold = 0.0
)

type Selector struct {
	pools map[domain.Tier][]string
	rng   Picker
}

// NewSelector copies the pools and fails if any tier is missing or empty.
func NewSelector(pools map[domain.Tier][]string, rng Picker) (*Selector, error) {
	if rng == nil {
		return nil, fmt.Errorf("coping: nil random source")
	}

	copied := make(map[domain.Tier][]string, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		pool := pools[tier]
		if len(pool) == 0 {
			return nil, fmt.Errorf("coping: pool %q is empty", tier)
		}
		copied[tier] = append([]string(nil), pool...)
	}

	return &Selector{pools: copied, rng: rng}, nil
}

// TierFor maps a score to its coping tier.
//
//	score <= -0.5      moderate_negative
//	-0.5 < score < 0   mild_negative
//	score >= 0         general
func TierFor(score float64) domain.Tier {
	switch {
	case score <= moderateThreshold:
		return domain.TierModerateNegative
	case score < negativeThreshold:
		return domain.TierMildNegative
	default:
		return domain.TierGeneral
	}
}

// Suggest draws one suggestion from the tier for score. Draws are with
// replacement, so the same suggestion may come back twice in a row.
func (s *Selector) Suggest(score float64) string {
	return Pick(s.rng, s.pools[TierFor(score)])
}

// Pool returns a copy of the suggestions for a tier.
func (s *Selector) Pool(tier domain.Tier) []string {
	return append([]string(nil), s.pools[tier]...)
}
