package progression

import (
	"math"
	"time"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

const (
	// Cooldown is the minimum time between two counted captures of a species
	Cooldown = 5 * time.Minute

	// UpgradeBaseThreshold is the number of copies needed to leave level 0
	UpgradeBaseThreshold = 3

	// UpgradeIncrement is how many more copies each further level needs
	UpgradeIncrement = 2

	// PartyLimit is the maximum number of cards in the party
	PartyLimit = 6

	// MaxStatValue caps every effective stat
	MaxStatValue = 150
)

// levelBonusSteps is the bonus gained for each level; levels past the end of
// the table keep gaining the last step
var levelBonusSteps = []float64{0.10, 0.07, 0.05, 0.04, 0.03, 0.02}

// UpgradeThreshold returns the copies required to advance from level
func UpgradeThreshold(level int) int {
	return UpgradeBaseThreshold + UpgradeIncrement*level
}

// CumulativeBonus returns the total stat bonus earned at level
func CumulativeBonus(level int) float64 {
	bonus := 0.0
	for i := 0; i < level; i++ {
		if i < len(levelBonusSteps) {
			bonus += levelBonusSteps[i]
		} else {
			bonus += levelBonusSteps[len(levelBonusSteps)-1]
		}
	}
	return bonus
}

// ComputeEffectiveStats scales a template's base stats by the bonus for
// level, rounding half away from zero and capping at MaxStatValue
func ComputeEffectiveStats(template *entities.SpeciesTemplate, level int) entities.StatBlock {
	multiplier := 1 + CumulativeBonus(level)
	return template.BaseStats.Map(func(_ entities.StatKey, base int) int {
		return min(MaxStatValue, int(math.Round(float64(base)*multiplier)))
	})
}

// NeededForNextUpgrade returns how many more copies the card needs to level up
func NeededForNextUpgrade(card entities.CardInstance) int {
	return UpgradeThreshold(card.Level) - card.CopiesOwned
}

// DescribeStats returns the card's effective stats and its bonus as a whole
// percentage
func DescribeStats(template *entities.SpeciesTemplate, card entities.CardInstance) (entities.StatBlock, int) {
	bonus := CumulativeBonus(card.Level)
	return ComputeEffectiveStats(template, card.Level), int(math.Round(bonus * 100))
}
