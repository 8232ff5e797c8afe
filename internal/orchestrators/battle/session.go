package battle

//go:generate mockgen -destination=mock/mock_party_source.go -package=battlemock github.com/KirkDiggler/ecosnap-api/internal/orchestrators/battle PartySource

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/clock"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/idgen"
)

// Event types published on the bus
const (
	EventBattleStarted = "battle.started"
	EventTurnResolved  = "battle.turn_resolved"
	EventBattleEnded   = "battle.finished"
)

// DefaultOpponentDelay is the pause before the opponent answers
const DefaultOpponentDelay = 900 * time.Millisecond

// PartySource supplies the player's party when a battle starts
type PartySource interface {
	PartyCards() []progression.PartyCard
}

// Config holds the dependencies for a Session
type Config struct {
	Party       PartySource
	Catalog     *catalog.Catalog
	Roller      dice.Roller
	EventBus    events.EventBus
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// OpponentDelay defaults to DefaultOpponentDelay; negative means no pause
	OpponentDelay time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Party == nil {
		vb.RequiredField("Party")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Roller == nil {
		vb.RequiredField("Roller")
	}
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

// Session owns the live battle. The player moves through PlayerMove; the
// opponent answers on a timer after OpponentDelay.
type Session struct {
	party   PartySource
	catalog *catalog.Catalog
	roller  dice.Roller
	bus     events.EventBus
	idGen   idgen.Generator
	clock   clock.Clock
	delay   time.Duration

	mu         sync.Mutex
	state      *State
	generation uint64
	timer      *time.Timer
}

// NewSession creates a session with no battle in progress
func NewSession(cfg *Config) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	delay := cfg.OpponentDelay
	if delay == 0 {
		delay = DefaultOpponentDelay
	}
	if delay < 0 {
		delay = 0
	}

	return &Session{
		party:   cfg.Party,
		catalog: cfg.Catalog,
		roller:  cfg.Roller,
		bus:     cfg.EventBus,
		idGen:   cfg.IDGenerator,
		clock:   cfg.Clock,
		delay:   delay,
	}, nil
}

type pendingEvent struct {
	eventType string
	source    core.Entity
	target    core.Entity
}

// Start begins a new battle from the current party, abandoning any battle in
// progress. It returns a copy of the initial state.
func (s *Session) Start(ctx context.Context) (*State, error) {
	state, err := StartBattle(&StartInput{
		BattleID: s.idGen.Generate(),
		Party:    s.party.PartyCards(),
		Catalog:  s.catalog,
		Roller:   s.roller,
		Now:      s.clock.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.stopTimerLocked()
	s.generation++
	s.state = state
	snapshot := state.Clone()
	s.mu.Unlock()

	slog.Info("Battle started",
		"battle_id", state.ID,
		"player_cards", snapshot.Player.Len(),
		"opponent_cards", snapshot.Opponent.Len(),
	)
	s.publish(ctx, pendingEvent{eventType: EventBattleStarted, source: snapshot})

	return snapshot, nil
}

// PlayerMove resolves the player's turn with stat. An ignored move (wrong
// turn, finished battle) returns a result with Applied false and no error.
func (s *Session) PlayerMove(ctx context.Context, stat entities.StatKey) (TurnResult, error) {
	if !stat.Valid() {
		return TurnResult{}, errors.InvalidArgumentf("unknown stat %q", stat)
	}

	s.mu.Lock()
	if s.state == nil {
		s.mu.Unlock()
		return TurnResult{}, errors.FailedPrecondition("no battle in progress")
	}

	result, pending := s.resolveLocked(SidePlayer, stat)
	if result.Applied && !s.state.Finished && s.state.Turn == SideOpponent {
		s.scheduleOpponentLocked()
	}
	s.mu.Unlock()

	s.publish(ctx, pending...)
	return result, nil
}

// resolveLocked applies a turn and returns the events to publish once the
// lock is released
func (s *Session) resolveLocked(side Side, stat entities.StatKey) (TurnResult, []pendingEvent) {
	// Events carry copies taken before the turn; the live cards keep changing
	var attacker, defender core.Entity
	if card, ok := s.state.Deck(side).Front(); ok {
		c := *card
		attacker = &c
	}
	if card, ok := s.state.Deck(side.Other()).Front(); ok {
		c := *card
		defender = &c
	}

	result := ResolveTurn(s.state, side, stat)
	if !result.Applied {
		slog.Debug("Ignored battle move", "battle_id", s.state.ID, "side", side, "turn", s.state.Turn)
		return result, nil
	}

	slog.Debug("Battle turn resolved",
		"battle_id", s.state.ID,
		"attacker", side,
		"stat", stat,
		"outcome", result.Outcome,
	)

	pending := []pendingEvent{{eventType: EventTurnResolved, source: attacker, target: defender}}
	if result.Finished {
		slog.Info("Battle finished", "battle_id", s.state.ID, "result", s.state.Result, "turns", s.state.Turns)
		pending = append(pending, pendingEvent{eventType: EventBattleEnded, source: s.state.Clone()})
	}
	return result, pending
}

func (s *Session) scheduleOpponentLocked() {
	s.stopTimerLocked()

	generation := s.generation
	turns := s.state.Turns
	s.timer = time.AfterFunc(s.delay, func() {
		s.opponentMove(generation, turns)
	})
}

// opponentMove runs on the timer. Anything that happened since scheduling
// (a new battle, Close, another resolved turn) makes it a no-op.
func (s *Session) opponentMove(generation uint64, turns int) {
	s.mu.Lock()
	if s.generation != generation || s.state == nil || s.state.Finished ||
		s.state.Turn != SideOpponent || s.state.Turns != turns {
		s.mu.Unlock()
		return
	}

	stat := ChooseOpponentStat(s.state)
	_, pending := s.resolveLocked(SideOpponent, stat)
	s.mu.Unlock()

	s.publish(context.Background(), pending...)
}

// Snapshot returns a copy of the current battle, if any
func (s *Session) Snapshot() (*State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == nil {
		return nil, false
	}
	return s.state.Clone(), true
}

// Close abandons the current battle and cancels any pending opponent move
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.generation++
	s.state = nil
}

func (s *Session) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) publish(ctx context.Context, pending ...pendingEvent) {
	for _, p := range pending {
		if err := s.bus.Publish(ctx, events.NewGameEvent(p.eventType, p.source, p.target)); err != nil {
			slog.Warn("Failed to publish battle event", "event", p.eventType, "error", err)
		}
	}
}
