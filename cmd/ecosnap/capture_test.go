package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

func TestPrintCaptureCard(t *testing.T) {
	squirrel := &entities.SpeciesTemplate{
		ID:             "grey-squirrel",
		CommonName:     "Grey Squirrel",
		ScientificName: "Sciurus carolinensis",
		BaseStats:      entities.StatBlock{Speed: 72, Resilience: 55, Energy: 82, Intelligence: 60, Harmony: 58},
		FunFact:        "Grey squirrels bury more acorns than they find.",
	}

	t.Run("upgraded card shows its new stats", func(t *testing.T) {
		card := entities.CardInstance{TemplateID: "grey-squirrel", Level: 1, CopiesOwned: 0, TotalCaptured: 4}
		out := &capture.CaptureOutput{
			Species: squirrel,
			Outcome: &progression.UpgradedOutcome{
				OutcomeBase:   progression.OutcomeBase{Species: squirrel, Card: card},
				LevelsGained:  1,
				NeededForNext: 5,
			},
		}

		var buf bytes.Buffer
		printCaptureCard(&buf, out)

		got := buf.String()
		assert.Contains(t, got, "Grey Squirrel (Sciurus carolinensis)")
		assert.Contains(t, got, "Lv 1 (+10%)")
		assert.Contains(t, got, "SPD  79  RES  61  ENG  90  INT  66  HAR  64")
		assert.Contains(t, got, "Copies 0, 5 more for the next level")
		assert.Contains(t, got, squirrel.FunFact)
	})

	t.Run("new card starts at base stats", func(t *testing.T) {
		card := entities.CardInstance{TemplateID: "grey-squirrel", TotalCaptured: 1}
		out := &capture.CaptureOutput{
			Species: squirrel,
			Outcome: &progression.NewOutcome{
				OutcomeBase:   progression.OutcomeBase{Species: squirrel, Card: card},
				NextThreshold: 3,
			},
		}

		var buf bytes.Buffer
		printCaptureCard(&buf, out)
		assert.Contains(t, buf.String(), "Lv 0 (+0%)")
		assert.Contains(t, buf.String(), "Copies 0, 3 more for the next level")
	})

	t.Run("no match prints nothing", func(t *testing.T) {
		var buf bytes.Buffer
		printCaptureCard(&buf, &capture.CaptureOutput{})
		assert.Empty(t, buf.String())
	})
}
