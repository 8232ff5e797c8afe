package battle_test

import (
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/battle"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

// scriptedRoller returns queued rolls, then 1 forever
type scriptedRoller struct {
	rolls []int
	sizes []int
}

func (r *scriptedRoller) Roll(size int) (int, error) {
	r.sizes = append(r.sizes, size)
	if len(r.rolls) == 0 {
		return 1, nil
	}
	next := r.rolls[0]
	r.rolls = r.rolls[1:]
	return next, nil
}

func (r *scriptedRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i], _ = r.Roll(size)
	}
	return out, nil
}

func template(id, name string, stats entities.StatBlock) *entities.SpeciesTemplate {
	return &entities.SpeciesTemplate{
		ID:         entities.SpeciesID(id),
		CommonName: name,
		BaseStats:  stats,
	}
}

func uniform(v int) entities.StatBlock {
	return entities.StatBlock{Speed: v, Resilience: v, Energy: v, Intelligence: v, Harmony: v}
}

func card(side battle.Side, t *entities.SpeciesTemplate) *battle.Card {
	return &battle.Card{
		ID:       string(side) + ":" + string(t.ID),
		Template: t,
		Stats:    t.BaseStats,
		Owner:    side,
		Source:   entities.CardInstance{TemplateID: t.ID},
	}
}

func partyCard(t *entities.SpeciesTemplate, level int) progression.PartyCard {
	return progression.PartyCard{
		Template: t,
		Card:     entities.CardInstance{TemplateID: t.ID, Level: level, TotalCaptured: 1},
		Stats:    progression.ComputeEffectiveStats(t, level),
	}
}

// newState builds a battle directly from decks, player to move
func newState(player, opponent []*entities.SpeciesTemplate) *battle.State {
	p := make([]*battle.Card, 0, len(player))
	for _, t := range player {
		p = append(p, card(battle.SidePlayer, t))
	}
	o := make([]*battle.Card, 0, len(opponent))
	for _, t := range opponent {
		o = append(o, card(battle.SideOpponent, t))
	}
	return &battle.State{
		ID:       "battle_test",
		Player:   battle.NewDeck(p...),
		Opponent: battle.NewDeck(o...),
		Turn:     battle.SidePlayer,
	}
}

func ids(d *battle.Deck) []entities.SpeciesID {
	out := make([]entities.SpeciesID, 0, d.Len())
	for _, c := range d.Cards() {
		out = append(out, c.Template.ID)
	}
	return out
}
