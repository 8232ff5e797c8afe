package capture

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

// NoMatchBanner is shown when the image matched no species
const NoMatchBanner = "No matching species card found. Try a clearer shot or different angle."

// Banner returns the message shown to the player after a capture
func Banner(output *CaptureOutput) string {
	if output == nil || !output.Matched() {
		return NoMatchBanner
	}

	switch outcome := output.Outcome.(type) {
	case *progression.CooldownOutcome:
		return fmt.Sprintf("%s is resting. Try again in %s.", outcome.Species.CommonName, FormatRemaining(outcome.Remaining))
	case *progression.NewOutcome:
		return fmt.Sprintf("Unlocked the %s card!", outcome.Species.CommonName)
	case *progression.DuplicateOutcome:
		return fmt.Sprintf("Captured another %s. %d more to upgrade.", outcome.Species.CommonName, outcome.NeededForNext)
	case *progression.UpgradedOutcome:
		unit := "level"
		if outcome.LevelsGained > 1 {
			unit = "levels"
		}
		return fmt.Sprintf("%s leveled up! +%d %s applied.", outcome.Species.CommonName, outcome.LevelsGained, unit)
	default:
		return NoMatchBanner
	}
}

// FormatRemaining renders a wait as "4m 05s", or "42s" under a minute.
// Partial seconds round up.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int((d + time.Second - 1) / time.Second)
	minutes, seconds := total/60, total%60
	if minutes > 0 {
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
