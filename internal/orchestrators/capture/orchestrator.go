// Package capture turns a captured image into card progress: classify,
// match against the catalog, then unlock the species
package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/KirkDiggler/ecosnap-api/internal/catalog"
	"github.com/KirkDiggler/ecosnap-api/internal/clients/classifier"
	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
	"github.com/KirkDiggler/ecosnap-api/internal/pkg/clock"
)

// bypassMargin is how far past the cooldown a bypassed capture lands
const bypassMargin = time.Second

// Service defines the capture operations
type Service interface {
	Capture(ctx context.Context, input *CaptureInput) (*CaptureOutput, error)
}

// CaptureInput defines the input for a capture
type CaptureInput struct {
	Image []byte

	// BypassCooldown treats the capture as if the cooldown had just ended
	BypassCooldown bool
}

// CaptureOutput defines the output of a capture. Outcome is nil when no
// label matched a species.
type CaptureOutput struct {
	Labels  []entities.Label
	Species *entities.SpeciesTemplate
	Outcome progression.UnlockOutcome
}

// Matched reports whether the image matched a species
func (o *CaptureOutput) Matched() bool {
	return o.Outcome != nil
}

// Config holds the dependencies for the capture orchestrator
type Config struct {
	Classifier classifier.Classifier
	Catalog    *catalog.Catalog
	Store      *progression.Store
	Clock      clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Classifier == nil {
		vb.RequiredField("Classifier")
	}
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
	classifier classifier.Classifier
	catalog    *catalog.Catalog
	store      *progression.Store
	clock      clock.Clock
}

// NewOrchestrator creates a new capture orchestrator
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		classifier: cfg.Classifier,
		catalog:    cfg.Catalog,
		store:      cfg.Store,
		clock:      cfg.Clock,
	}, nil
}

func (o *orchestrator) Capture(ctx context.Context, input *CaptureInput) (*CaptureOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	labels, err := o.classifier.Classify(ctx, input.Image)
	if err != nil {
		return nil, errors.Wrap(err, "failed to classify image")
	}

	output := &CaptureOutput{Labels: labels}

	template, ok := o.catalog.MatchLabels(labels)
	if !ok {
		slog.Info("No species matched capture", "labels", len(labels))
		return output, nil
	}
	output.Species = template

	now := o.clock.Now()
	if input.BypassCooldown {
		if card, owned := o.store.Card(template.ID); owned {
			now = card.LastCapturedAt.Add(progression.Cooldown + bypassMargin)
		}
	}

	output.Outcome = o.store.UnlockSpecies(template, now)

	slog.Info("Capture applied",
		"species_id", template.ID,
		"outcome", output.Outcome.Kind(),
		"bypass_cooldown", input.BypassCooldown,
	)

	return output, nil
}
