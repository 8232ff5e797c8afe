package battle

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

const (
	// OpponentName is the scripted rival every battle is fought against
	OpponentName = "Eco Snapper Gustavo"

	// OpponentDeckSize is the number of cards the opponent brings, whatever
	// the size of the player's party
	OpponentDeckSize = 2

	// MaxLogEntries caps the battle log; older entries fall off
	MaxLogEntries = 8
)

// Entity types used on the event bus
const (
	EntityTypeBattle = "battle"
	EntityTypeCard   = "battle_card"
)

// Side identifies a deck owner
type Side string

// Sides
const (
	SidePlayer   Side = "player"
	SideOpponent Side = "opponent"
)

// Other returns the opposing side
func (s Side) Other() Side {
	if s == SidePlayer {
		return SideOpponent
	}
	return SidePlayer
}

// Result is the outcome of a finished battle, from the player's view
type Result string

// Results
const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultLose Result = "lose"
)

// Card is one card in play. Stats are fixed when the battle starts.
type Card struct {
	ID       string
	Template *entities.SpeciesTemplate
	Stats    entities.StatBlock
	Owner    Side
	Source   entities.CardInstance
}

// GetID implements core.Entity
func (c *Card) GetID() string { return c.ID }

// GetType implements core.Entity
func (c *Card) GetType() string { return EntityTypeCard }

func newCardID(side Side, id entities.SpeciesID) string {
	return fmt.Sprintf("%s:%s", side, id)
}

// State is a single battle. The front of each deck is the card in play.
type State struct {
	ID       string
	Player   *Deck
	Opponent *Deck

	// Log holds the most recent entries first
	Log      []string
	Turn     Side
	Finished bool
	Result   Result

	// Turns counts resolved turns
	Turns int
}

// GetID implements core.Entity
func (s *State) GetID() string { return s.ID }

// GetType implements core.Entity
func (s *State) GetType() string { return EntityTypeBattle }

// Deck returns the deck owned by side
func (s *State) Deck(side Side) *Deck {
	if side == SidePlayer {
		return s.Player
	}
	return s.Opponent
}

// CardCount returns the number of cards across both decks
func (s *State) CardCount() int {
	return s.Player.Len() + s.Opponent.Len()
}

// Clone returns a deep copy that shares nothing mutable with s
func (s *State) Clone() *State {
	clone := *s
	clone.Player = s.Player.clone()
	clone.Opponent = s.Opponent.clone()
	clone.Log = append([]string(nil), s.Log...)
	return &clone
}

func (s *State) pushLog(line string) {
	s.Log = append([]string{line}, s.Log...)
	if len(s.Log) > MaxLogEntries {
		s.Log = s.Log[:MaxLogEntries]
	}
}

var (
	_ core.Entity = (*Card)(nil)
	_ core.Entity = (*State)(nil)
)
