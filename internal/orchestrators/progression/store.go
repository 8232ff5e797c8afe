// Package progression owns a player's card collection and party: captures,
// cooldowns, upgrades and the stat scaling derived from card levels.
package progression

//go:generate mockgen -destination=mock/mock_persister.go -package=progressionmock github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression Persister

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/repositories/collection"
)

// Persister receives a full snapshot after every change to the store.
// Implementations must not block.
type Persister interface {
	Persist(doc *collection.Document)
}

// Config holds the dependencies for a Store
type Config struct {
	Catalog *catalog.Catalog

	// Persister is optional; without one the store is memory only
	Persister Persister

	// Document restores previously saved progress
	Document *collection.Document
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// PartyCard is a party member with its template and current effective stats
type PartyCard struct {
	Template *entities.SpeciesTemplate
	Card     entities.CardInstance
	Stats    entities.StatBlock
}

// Store is the single owner of collection and party state. All methods are
// safe for concurrent use.
type Store struct {
	catalog   *catalog.Catalog
	persister Persister

	mu         sync.RWMutex
	collection map[entities.SpeciesID]entities.CardInstance
	party      []entities.SpeciesID
}

// NewStore creates a store, restoring cfg.Document when present
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	s := &Store{
		catalog:    cfg.Catalog,
		persister:  cfg.Persister,
		collection: make(map[entities.SpeciesID]entities.CardInstance),
		party:      []entities.SpeciesID{},
	}
	if cfg.Document != nil {
		s.restore(cfg.Document)
	}

	return s, nil
}

// restore loads a saved document, dropping anything the catalog no longer
// knows and party entries that break the party rules
func (s *Store) restore(doc *collection.Document) {
	for id, card := range doc.Collection {
		if _, ok := s.catalog.Get(id); !ok {
			slog.Warn("Dropping card for unknown species", "species_id", id)
			continue
		}
		card.TemplateID = id
		s.collection[id] = settleCard(card)
	}

	for _, id := range doc.Party {
		if len(s.party) >= PartyLimit {
			slog.Warn("Dropping party entries past the limit", "limit", PartyLimit)
			break
		}
		if _, owned := s.collection[id]; !owned || slices.Contains(s.party, id) {
			slog.Warn("Dropping invalid party entry", "species_id", id)
			continue
		}
		s.party = append(s.party, id)
	}

	slog.Info("Restored collection",
		"cards", len(s.collection),
		"party_size", len(s.party),
	)
}

// settleCard repairs counters a saved document may carry out of range:
// negative values are clamped and surplus copies are converted into levels
func settleCard(card entities.CardInstance) entities.CardInstance {
	settled := card
	settled.Level = max(settled.Level, 0)
	settled.CopiesOwned = max(settled.CopiesOwned, 0)
	settled.TotalCaptured = max(settled.TotalCaptured, 1)
	for settled.CopiesOwned >= UpgradeThreshold(settled.Level) {
		settled.CopiesOwned -= UpgradeThreshold(settled.Level)
		settled.Level++
	}

	if settled != card {
		slog.Warn("Settled saved card",
			"species_id", card.TemplateID,
			"level", settled.Level,
			"copies_owned", settled.CopiesOwned,
		)
	}
	return settled
}

// UnlockSpecies applies one capture of template at now
func (s *Store) UnlockSpecies(template *entities.SpeciesTemplate, now time.Time) UnlockOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	card, exists := s.collection[template.ID]
	if !exists {
		card = entities.CardInstance{
			TemplateID:      template.ID,
			Level:           0,
			CopiesOwned:     0,
			TotalCaptured:   1,
			FirstCapturedAt: now,
			LastCapturedAt:  now,
		}
		s.collection[template.ID] = card
		if len(s.party) < PartyLimit && !slices.Contains(s.party, template.ID) {
			s.party = append(s.party, template.ID)
		}
		s.persistLocked()

		slog.Info("Species unlocked", "species_id", template.ID, "party_size", len(s.party))
		return &NewOutcome{
			OutcomeBase:   OutcomeBase{Species: template, Card: card},
			NextThreshold: UpgradeThreshold(0),
		}
	}

	remaining := Cooldown - now.Sub(card.LastCapturedAt)
	if remaining > 0 {
		slog.Debug("Species on cooldown", "species_id", template.ID, "remaining", remaining)
		return &CooldownOutcome{
			OutcomeBase: OutcomeBase{Species: template, Card: card},
			Remaining:   remaining,
		}
	}

	card.CopiesOwned++
	card.TotalCaptured++
	card.LastCapturedAt = now

	levelsGained := 0
	for card.CopiesOwned >= UpgradeThreshold(card.Level) {
		card.CopiesOwned -= UpgradeThreshold(card.Level)
		card.Level++
		levelsGained++
	}

	s.collection[template.ID] = card
	s.persistLocked()

	base := OutcomeBase{Species: template, Card: card}
	if levelsGained > 0 {
		slog.Info("Card upgraded",
			"species_id", template.ID,
			"level", card.Level,
			"levels_gained", levelsGained,
		)
		return &UpgradedOutcome{
			OutcomeBase:   base,
			LevelsGained:  levelsGained,
			NeededForNext: NeededForNextUpgrade(card),
		}
	}

	return &DuplicateOutcome{
		OutcomeBase:   base,
		NeededForNext: NeededForNextUpgrade(card),
	}
}

// AddToParty appends an owned card to the party. It reports whether the party
// changed; a card already present, a full party or an unowned species leave
// it untouched.
func (s *Store) AddToParty(id entities.SpeciesID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, owned := s.collection[id]; !owned {
		return false
	}
	if len(s.party) >= PartyLimit || slices.Contains(s.party, id) {
		return false
	}

	s.party = append(s.party, id)
	s.persistLocked()
	return true
}

// RemoveFromParty removes id from the party and reports whether it was there
func (s *Store) RemoveFromParty(id entities.SpeciesID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := lo.Without(s.party, id)
	if len(filtered) == len(s.party) {
		return false
	}

	s.party = filtered
	s.persistLocked()
	return true
}

// IsInParty reports whether id is in the party
func (s *Store) IsInParty(id entities.SpeciesID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.party, id)
}

// Party returns the party in order
func (s *Store) Party() []entities.SpeciesID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.party)
}

// PartyCards returns each party member with its template and effective
// stats, in party order
func (s *Store) PartyCards() []PartyCard {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cards := make([]PartyCard, 0, len(s.party))
	for _, id := range s.party {
		template, ok := s.catalog.Get(id)
		if !ok {
			continue
		}
		card := s.collection[id]
		cards = append(cards, PartyCard{
			Template: template,
			Card:     card,
			Stats:    ComputeEffectiveStats(template, card.Level),
		})
	}
	return cards
}

// Card returns the instance for id, if owned
func (s *Store) Card(id entities.SpeciesID) (entities.CardInstance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.collection[id]
	return card, ok
}

// Collection returns a copy of every owned card
func (s *Store) Collection() map[entities.SpeciesID]entities.CardInstance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.collection)
}

// CooldownRemaining returns how long until id can be captured again; zero
// when it is ready or not owned
func (s *Store) CooldownRemaining(id entities.SpeciesID, now time.Time) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	card, ok := s.collection[id]
	if !ok {
		return 0
	}
	return max(0, Cooldown-now.Sub(card.LastCapturedAt))
}

// ResetAll clears the collection and the party
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.collection = make(map[entities.SpeciesID]entities.CardInstance)
	s.party = []entities.SpeciesID{}
	s.persistLocked()

	slog.Info("Collection reset")
}

// Snapshot returns the store contents as a persistable document
func (s *Store) Snapshot() *collection.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() *collection.Document {
	doc := collection.NewDocument()
	maps.Copy(doc.Collection, s.collection)
	doc.Party = append(doc.Party, s.party...)
	return doc
}

// persistLocked hands a snapshot to the persister while the write lock is
// held, so snapshots reach it in mutation order
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	s.persister.Persist(s.snapshotLocked())
}
