// Package species answers read-only questions about the catalog and the
// player's collection, optionally enriched with iNaturalist data
package species

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/lo"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/clients/inat"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/clock"
)

// Service defines the species and collection queries
type Service interface {
	ListSpecies(ctx context.Context, input *ListSpeciesInput) (*ListSpeciesOutput, error)
	GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error)
	GetOverview(ctx context.Context, input *GetOverviewInput) (*GetOverviewOutput, error)
}

// Entry is one species with the player's progress on it, if any
type Entry struct {
	Template *entities.SpeciesTemplate
	Card     *entities.CardInstance
	Stats    entities.StatBlock

	// BonusPercent is the level bonus as a whole percentage
	BonusPercent      int
	NeededForNext     int
	CooldownRemaining time.Duration
	InParty           bool
}

// Owned reports whether the player has captured the species
func (e *Entry) Owned() bool {
	return e.Card != nil
}

// ListSpeciesInput defines the input for listing species
type ListSpeciesInput struct {
	// OwnedOnly limits the list to captured species
	OwnedOnly bool
}

// ListSpeciesOutput lists entries in catalog order
type ListSpeciesOutput struct {
	Entries []*Entry
}

// GetSpeciesInput defines the input for one species
type GetSpeciesInput struct {
	ID entities.SpeciesID

	// Online adds the iNaturalist taxon
	Online bool
}

// GetSpeciesOutput defines the output for one species
type GetSpeciesOutput struct {
	Entry *Entry
	Taxon *inat.Taxon
}

// GetOverviewInput defines the input for the collection overview
type GetOverviewInput struct{}

// GetOverviewOutput summarizes the collection
type GetOverviewOutput struct {
	UniqueCards  int
	TotalSpecies int
	PartySize    int
	PartyLimit   int
	Party        []*Entry
}

// Config holds the dependencies for the species orchestrator
type Config struct {
	Catalog *catalog.Catalog
	Store   *progression.Store
	Clock   clock.Clock

	// Taxa is optional; without it online lookups fail with Unavailable
	Taxa inat.Client
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Store == nil {
		vb.RequiredField("Store")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	return vb.Build()
}

type orchestrator struct {
	catalog *catalog.Catalog
	store   *progression.Store
	clock   clock.Clock
	taxa    inat.Client
}

// NewOrchestrator creates a new species orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		catalog: cfg.Catalog,
		store:   cfg.Store,
		clock:   cfg.Clock,
		taxa:    cfg.Taxa,
	}, nil
}

func (o *orchestrator) ListSpecies(_ context.Context, input *ListSpeciesInput) (*ListSpeciesOutput, error) {
	if input == nil {
		input = &ListSpeciesInput{}
	}

	now := o.clock.Now()
	entries := lo.Map(o.catalog.All(), func(t *entities.SpeciesTemplate, _ int) *Entry {
		return o.entry(t, now)
	})
	if input.OwnedOnly {
		entries = lo.Filter(entries, func(e *Entry, _ int) bool { return e.Owned() })
	}

	return &ListSpeciesOutput{Entries: entries}, nil
}

func (o *orchestrator) GetSpecies(ctx context.Context, input *GetSpeciesInput) (*GetSpeciesOutput, error) {
	if input == nil || input.ID == "" {
		return nil, errors.InvalidArgument("species ID is required")
	}

	template, ok := o.catalog.Get(input.ID)
	if !ok {
		return nil, errors.NotFoundf("species %s not found", input.ID)
	}

	output := &GetSpeciesOutput{Entry: o.entry(template, o.clock.Now())}
	if !input.Online {
		return output, nil
	}

	if o.taxa == nil {
		return nil, errors.Unavailable("online lookups are not configured")
	}

	taxon, err := o.taxa.SearchTaxon(ctx, template.ScientificName)
	if err != nil {
		slog.Warn("Taxon lookup failed", "species_id", template.ID, "error", err)
		return nil, errors.Wrapf(err, "failed to look up %s", template.CommonName)
	}
	output.Taxon = taxon

	return output, nil
}

func (o *orchestrator) GetOverview(_ context.Context, _ *GetOverviewInput) (*GetOverviewOutput, error) {
	now := o.clock.Now()

	party := make([]*Entry, 0, progression.PartyLimit)
	for _, id := range o.store.Party() {
		if template, ok := o.catalog.Get(id); ok {
			party = append(party, o.entry(template, now))
		}
	}

	return &GetOverviewOutput{
		UniqueCards:  len(o.store.Collection()),
		TotalSpecies: o.catalog.Len(),
		PartySize:    len(party),
		PartyLimit:   progression.PartyLimit,
		Party:        party,
	}, nil
}

func (o *orchestrator) entry(template *entities.SpeciesTemplate, now time.Time) *Entry {
	e := &Entry{Template: template}

	card, owned := o.store.Card(template.ID)
	if !owned {
		e.Stats = progression.ComputeEffectiveStats(template, 0)
		return e
	}

	e.Card = &card
	e.Stats, e.BonusPercent = progression.DescribeStats(template, card)
	e.NeededForNext = progression.NeededForNextUpgrade(card)
	e.CooldownRemaining = o.store.CooldownRemaining(template.ID, now)
	e.InParty = o.store.IsInParty(template.ID)
	return e
}
