package progression_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

func TestUpgradeThreshold(t *testing.T) {
	assert.Equal(t, 3, progression.UpgradeThreshold(0))
	assert.Equal(t, 5, progression.UpgradeThreshold(1))
	assert.Equal(t, 7, progression.UpgradeThreshold(2))

	for level := 0; level < 20; level++ {
		assert.Less(t, progression.UpgradeThreshold(level), progression.UpgradeThreshold(level+1))
	}
}

func TestCumulativeBonus(t *testing.T) {
	testCases := []struct {
		level    int
		expected float64
	}{
		{level: 0, expected: 0},
		{level: 1, expected: 0.10},
		{level: 2, expected: 0.17},
		{level: 6, expected: 0.31},
		{level: 7, expected: 0.33},
		{level: 10, expected: 0.39},
	}

	for _, tc := range testCases {
		assert.InDelta(t, tc.expected, progression.CumulativeBonus(tc.level), 1e-9, "level %d", tc.level)
	}

	for level := 0; level < 30; level++ {
		assert.GreaterOrEqual(t, progression.CumulativeBonus(level+1), progression.CumulativeBonus(level))
	}
}

func TestComputeEffectiveStats(t *testing.T) {
	squirrel := &entities.SpeciesTemplate{
		ID:        "grey-squirrel",
		BaseStats: entities.StatBlock{Speed: 72, Resilience: 55, Energy: 82, Intelligence: 60, Harmony: 58},
	}

	t.Run("level zero is base stats", func(t *testing.T) {
		assert.Equal(t, squirrel.BaseStats, progression.ComputeEffectiveStats(squirrel, 0))
	})

	t.Run("level one rounds half away from zero", func(t *testing.T) {
		assert.Equal(t,
			entities.StatBlock{Speed: 79, Resilience: 61, Energy: 90, Intelligence: 66, Harmony: 64},
			progression.ComputeEffectiveStats(squirrel, 1))
	})

	t.Run("stats cap independently", func(t *testing.T) {
		strong := &entities.SpeciesTemplate{
			ID:        "strong",
			BaseStats: entities.StatBlock{Speed: 140, Resilience: 10, Energy: 150, Intelligence: 100, Harmony: 1},
		}
		stats := progression.ComputeEffectiveStats(strong, 10)
		assert.Equal(t, progression.MaxStatValue, stats.Speed)
		assert.Equal(t, progression.MaxStatValue, stats.Energy)
		assert.Equal(t, 14, stats.Resilience)
		assert.Equal(t, 139, stats.Intelligence)
		assert.Equal(t, 1, stats.Harmony)
	})

	t.Run("effective stats never decrease with level", func(t *testing.T) {
		prev := progression.ComputeEffectiveStats(squirrel, 0)
		for level := 1; level < 40; level++ {
			next := progression.ComputeEffectiveStats(squirrel, level)
			for _, key := range entities.StatKeys {
				assert.GreaterOrEqual(t, next.Get(key), prev.Get(key))
				assert.LessOrEqual(t, next.Get(key), progression.MaxStatValue)
			}
			prev = next
		}
	})
}

func TestDescribeStats(t *testing.T) {
	robin := &entities.SpeciesTemplate{
		ID:        "european-robin",
		BaseStats: entities.StatBlock{Speed: 65, Resilience: 48, Energy: 70, Intelligence: 57, Harmony: 62},
	}

	stats, bonus := progression.DescribeStats(robin, entities.CardInstance{Level: 2})
	assert.Equal(t, 17, bonus)
	assert.Equal(t, progression.ComputeEffectiveStats(robin, 2), stats)

	_, bonus = progression.DescribeStats(robin, entities.CardInstance{Level: 0})
	assert.Equal(t, 0, bonus)
}

func TestNeededForNextUpgrade(t *testing.T) {
	assert.Equal(t, 3, progression.NeededForNextUpgrade(entities.CardInstance{Level: 0, CopiesOwned: 0}))
	assert.Equal(t, 1, progression.NeededForNextUpgrade(entities.CardInstance{Level: 0, CopiesOwned: 2}))
	assert.Equal(t, 5, progression.NeededForNextUpgrade(entities.CardInstance{Level: 1, CopiesOwned: 0}))
}
