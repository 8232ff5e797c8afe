// Package battle implements the deck capture battle: setup, turn resolution,
// the scripted opponent and a session that paces the opponent's moves.
package battle

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/samber/lo"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

// TurnOutcome describes how a stat comparison went for the attacker
type TurnOutcome string

// Turn outcomes
const (
	TurnOutcomeNone      TurnOutcome = ""
	TurnOutcomeCapture   TurnOutcome = "capture"
	TurnOutcomeCaptured  TurnOutcome = "captured"
	TurnOutcomeStalemate TurnOutcome = "stalemate"
)

// StartInput defines the input for starting a battle
type StartInput struct {
	BattleID string
	Party    []progression.PartyCard
	Catalog  *catalog.Catalog
	Roller   dice.Roller
	Now      time.Time
}

// TurnResult reports what ResolveTurn did. Applied is false when the move
// was ignored.
type TurnResult struct {
	Applied       bool
	Attacker      Side
	Stat          entities.StatKey
	AttackerValue int
	DefenderValue int
	Outcome       TurnOutcome

	// Captured is the card that changed sides, if any
	Captured *Card
	LogEntry string
	Finished bool
}

// StartBattle builds a battle from the party, in party order, against
// OpponentDeckSize random catalog species at level 0. The player moves first.
func StartBattle(input *StartInput) (*State, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if input.Roller == nil {
		vb.RequiredField("Roller")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if len(input.Party) == 0 {
		return nil, errors.FailedPrecondition("add at least one card to your party before starting a battle")
	}

	player := NewDeck()
	for _, pc := range input.Party {
		player.pushBack(&Card{
			ID:       newCardID(SidePlayer, pc.Template.ID),
			Template: pc.Template,
			Stats:    pc.Stats,
			Owner:    SidePlayer,
			Source:   pc.Card,
		})
	}

	templates, err := sampleTemplates(input.Catalog.All(), OpponentDeckSize, input.Roller)
	if err != nil {
		return nil, err
	}
	if len(templates) == 0 && input.Catalog.Len() > 0 {
		templates = []*entities.SpeciesTemplate{input.Catalog.First()}
	}

	opponent := NewDeck()
	for _, t := range templates {
		opponent.pushBack(&Card{
			ID:       newCardID(SideOpponent, t.ID),
			Template: t,
			Stats:    progression.ComputeEffectiveStats(t, 0),
			Owner:    SideOpponent,
			Source: entities.CardInstance{
				TemplateID:      t.ID,
				TotalCaptured:   1,
				FirstCapturedAt: input.Now,
				LastCapturedAt:  input.Now,
			},
		})
	}

	state := &State{
		ID:       input.BattleID,
		Player:   player,
		Opponent: opponent,
		Turn:     SidePlayer,
	}
	state.pushLog(fmt.Sprintf("%s appeared!", OpponentName))

	return state, nil
}

// sampleTemplates draws up to n distinct templates with a partial
// Fisher-Yates shuffle
func sampleTemplates(pool []*entities.SpeciesTemplate, n int, roller dice.Roller) ([]*entities.SpeciesTemplate, error) {
	k := min(n, len(pool))
	for i := 0; i < k; i++ {
		roll, err := roller.Roll(len(pool) - i)
		if err != nil {
			return nil, errors.Wrap(err, "failed to draw opponent card")
		}
		j := i + roll - 1
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k], nil
}

// ResolveTurn plays attacker's front card against the defender's front card
// on stat. The state is changed in place. Moves out of turn, after the end
// or with an empty deck are ignored.
func ResolveTurn(state *State, attacker Side, stat entities.StatKey) TurnResult {
	if state == nil || state.Finished || attacker != state.Turn || !stat.Valid() {
		return TurnResult{}
	}

	attackDeck := state.Deck(attacker)
	defendDeck := state.Deck(attacker.Other())

	attackCard, ok := attackDeck.Front()
	if !ok {
		return TurnResult{}
	}
	defendCard, ok := defendDeck.Front()
	if !ok {
		return TurnResult{}
	}

	result := TurnResult{
		Applied:       true,
		Attacker:      attacker,
		Stat:          stat,
		AttackerValue: attackCard.Stats.Get(stat),
		DefenderValue: defendCard.Stats.Get(stat),
	}

	switch {
	case result.AttackerValue > result.DefenderValue:
		result.Outcome = TurnOutcomeCapture
		result.Captured = capture(attackDeck, defendDeck, attacker)
	case result.AttackerValue < result.DefenderValue:
		result.Outcome = TurnOutcomeCaptured
		result.Captured = capture(defendDeck, attackDeck, attacker.Other())
	default:
		result.Outcome = TurnOutcomeStalemate
		attackDeck.rotate()
		defendDeck.rotate()
	}

	result.LogEntry = describeTurn(attacker, stat, attackCard, defendCard, result)
	state.pushLog(result.LogEntry)
	state.Turns++

	if state.Player.Len() == 0 || state.Opponent.Len() == 0 {
		state.Finished = true
		state.Turn = SidePlayer
		if state.Player.Len() == 0 {
			state.Result = ResultLose
			state.pushLog(fmt.Sprintf("Defeat! %s claimed your last card.", OpponentName))
		} else {
			state.Result = ResultWin
			state.pushLog(fmt.Sprintf("Victory! You cleared %s's deck.", OpponentName))
		}
		result.Finished = true
		return result
	}

	state.Turn = attacker.Other()
	return result
}

// capture moves the winner's front card to its tail and takes the loser's
// front card
func capture(winner, loser *Deck, winnerSide Side) *Card {
	winner.rotate()
	taken, _ := loser.popFront()
	taken.Owner = winnerSide
	winner.pushBack(taken)
	return taken
}

func describeTurn(attacker Side, stat entities.StatKey, attackCard, defendCard *Card, result TurnResult) string {
	actor := "You"
	if attacker == SideOpponent {
		actor = OpponentName
	}
	line := fmt.Sprintf("%s used %s (%d vs %d).", actor, stat.Label(), result.AttackerValue, result.DefenderValue)

	switch result.Outcome {
	case TurnOutcomeCapture:
		if attacker == SidePlayer {
			return line + fmt.Sprintf(" Attack was super effective! You captured %s.", defendCard.Template.CommonName)
		}
		return line + fmt.Sprintf(" Attack was super effective! %s captured your %s.", OpponentName, defendCard.Template.CommonName)
	case TurnOutcomeCaptured:
		if attacker == SidePlayer {
			return line + fmt.Sprintf(" Not very effective! %s captured your %s.", OpponentName, attackCard.Template.CommonName)
		}
		return line + fmt.Sprintf(" Not very effective! You turned the tables and captured %s.", attackCard.Template.CommonName)
	default:
		return line + " It's a stalemate! Both cards return to their decks."
	}
}

// Summary returns the common names in each deck, front first
func Summary(state *State) (player, opponent []string) {
	name := func(c *Card, _ int) string { return c.Template.CommonName }
	return lo.Map(state.Player.Cards(), name), lo.Map(state.Opponent.Cards(), name)
}
