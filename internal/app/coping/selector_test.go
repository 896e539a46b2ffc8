package coping_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/haven/internal/app/coping"
	"github.com/PabloGalante/haven/internal/content"
	"github.com/PabloGalante/haven/internal/domain"
)

func newSelector(t *testing.T, seed uint64) *coping.Selector {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)

	s, err := coping.NewSelector(c.Coping, coping.NewLockedRand(seed))
	require.NoError(t, err)
	return s
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Tier
	}{
		{-1, domain.TierModerateNegative},
		{-0.6, domain.TierModerateNegative},
		{-0.5, domain.TierModerateNegative},
		{-0.49, domain.TierMildNegative},
		{-0.01, domain.TierMildNegative},
		{math.Copysign(0, -1), domain.TierGeneral},
		{0, domain.TierGeneral},
		{0.7, domain.TierGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, coping.TierFor(tt.score), "score %v", tt.score)
	}
}

func TestSuggestModerateCoversPool(t *testing.T) {
	s := newSelector(t, 42)
	pool := s.Pool(domain.TierModerateNegative)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		got := s.Suggest(-0.6)
		require.Contains(t, pool, got)
		seen[got] = true
	}
	assert.Len(t, seen, len(pool))
}

func TestSuggestStaysInTier(t *testing.T) {
	s := newSelector(t, 7)
	for score, tier := range map[float64]domain.Tier{
		-0.3: domain.TierMildNegative,
		-0.5: domain.TierModerateNegative,
		0.1:  domain.TierGeneral,
	} {
		pool := s.Pool(tier)
		for i := 0; i < 100; i++ {
			assert.Contains(t, pool, s.Suggest(score))
		}
	}
}

func TestSuggestIsReproducibleWithSeed(t *testing.T) {
	a, b := newSelector(t, 99), newSelector(t, 99)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Suggest(-0.2), b.Suggest(-0.2))
	}
}

func TestNewSelectorRejectsEmptyPool(t *testing.T) {
	pools := map[domain.Tier][]string{
		domain.TierMildNegative:     {"breathe"},
		domain.TierModerateNegative: {},
		domain.TierGeneral:          {"walk"},
	}
	_, err := coping.NewSelector(pools, coping.NewLockedRand(1))
	assert.ErrorContains(t, err, "moderate_negative")

	_, err = coping.NewSelector(nil, nil)
	assert.Error(t, err)
}

func TestLockedRandConcurrentUse(t *testing.T) {
	r := coping.NewLockedRand(3)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				n := r.IntN(5)
				if n < 0 || n >= 5 {
					t.Errorf("IntN out of range: %d", n)
				}
			}
		}()
	}
	wg.Wait()
}
