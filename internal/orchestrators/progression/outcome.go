package progression

import (
	"time"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
)

// Outcome kinds, used for logging and events
const (
	OutcomeKindCooldown  = "cooldown"
	OutcomeKindNew       = "new"
	OutcomeKindDuplicate = "duplicate"
	OutcomeKindUpgraded  = "upgraded"
)

// UnlockOutcome is the result of UnlockSpecies. It is one of
// *CooldownOutcome, *NewOutcome, *DuplicateOutcome or *UpgradedOutcome.
type UnlockOutcome interface {
	Kind() string
	Base() OutcomeBase
	isUnlockOutcome()
}

// OutcomeBase is carried by every outcome. Card is a copy of the instance
// after the capture was applied.
type OutcomeBase struct {
	Species *entities.SpeciesTemplate
	Card    entities.CardInstance
}

// Base returns the shared outcome fields
func (b OutcomeBase) Base() OutcomeBase { return b }

func (OutcomeBase) isUnlockOutcome() {}

// CooldownOutcome means the species was captured too recently; nothing changed
type CooldownOutcome struct {
	OutcomeBase
	Remaining time.Duration
}

// Kind implements UnlockOutcome
func (*CooldownOutcome) Kind() string { return OutcomeKindCooldown }

// NewOutcome means the species was captured for the first time
type NewOutcome struct {
	OutcomeBase
	NextThreshold int
}

// Kind implements UnlockOutcome
func (*NewOutcome) Kind() string { return OutcomeKindNew }

// DuplicateOutcome means a copy was added without reaching the next level
type DuplicateOutcome struct {
	OutcomeBase
	NeededForNext int
}

// Kind implements UnlockOutcome
func (*DuplicateOutcome) Kind() string { return OutcomeKindDuplicate }

// UpgradedOutcome means the capture raised the card by one or more levels
type UpgradedOutcome struct {
	OutcomeBase
	LevelsGained  int
	NeededForNext int
}

// Kind implements UnlockOutcome
func (*UpgradedOutcome) Kind() string { return OutcomeKindUpgraded }
