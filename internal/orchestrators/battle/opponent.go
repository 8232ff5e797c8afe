package battle

import (
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

// ChooseOpponentStat picks the stat where the opponent's front card leads the
// player's front card by the most. Ties go to the earliest stat in
// entities.StatKeys, which is also the answer when either deck is empty.
func ChooseOpponentStat(state *State) entities.StatKey {
	best := entities.StatKeys[0]
	if state == nil {
		return best
	}

	mine, ok := state.Opponent.Front()
	if !ok {
		return best
	}
	theirs, ok := state.Player.Front()
	if !ok {
		return best
	}

	bestDelta := mine.Stats.Get(best) - theirs.Stats.Get(best)
	for _, key := range entities.StatKeys[1:] {
		if delta := mine.Stats.Get(key) - theirs.Stats.Get(key); delta > bestDelta {
			best, bestDelta = key, delta
		}
	}
	return best
}
