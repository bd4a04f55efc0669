package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStrategies(t *testing.T) {
	all := AllStrategies()
	require.Len(t, all, len(RectChoices())*len(SplitRules()))

	seen := make(map[Strategy]bool)
	for _, s := range all {
		assert.False(t, seen[s], "duplicate strategy %s", s)
		seen[s] = true
	}
	assert.Equal(t, "best-area-fit/shorter-leftover-axis", all[0].String())
}

func TestCompareStrategies(t *testing.T) {
	strategies := AllStrategies()
	results := CompareStrategies(squareSprites(4, 101), smallOptions(), strategies)
	require.Len(t, results, len(strategies))

	for i, r := range results {
		assert.Equal(t, strategies[i], r.Strategy)
	}

	def := Strategy{RectChoice: BestShortSideFit, SplitRule: SplitShorterLeftoverAxis}
	for _, r := range results {
		if r.Strategy == def {
			require.NoError(t, r.Err)
			assert.Equal(t, 256, r.Width)
			assert.Equal(t, 256, r.Height)
			assert.Equal(t, 5, r.Attempts)
		}
	}

	best := BestStrategy(results)
	require.GreaterOrEqual(t, best, 0)
	// Four 101px squares cannot fit any power-of-two atlas smaller than 256x256.
	assert.Equal(t, 256*256, results[best].Area())
}

func TestCompareStrategies_ReportsFailures(t *testing.T) {
	opts := smallOptions()
	opts.MaxWidth = 64
	opts.MaxHeight = 64

	results := CompareStrategies(squareSprites(1, 100), opts, AllStrategies()[:3])
	require.Len(t, results, 3)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, ErrAtlasTooLarge)
		assert.Zero(t, r.Area())
	}
	assert.Equal(t, -1, BestStrategy(results))
}

func TestBestStrategy(t *testing.T) {
	results := []StrategyResult{
		{Err: errors.New("boom")},
		{Width: 128, Height: 128, Occupancy: 0.5},
		{Width: 64, Height: 256, Occupancy: 0.6},
		{Width: 128, Height: 128, Occupancy: 0.7},
		{Width: 256, Height: 256, Occupancy: 0.9},
		{Width: 128, Height: 128, Occupancy: 0.7},
	}
	assert.Equal(t, 3, BestStrategy(results))

	assert.Equal(t, -1, BestStrategy(nil))
}
