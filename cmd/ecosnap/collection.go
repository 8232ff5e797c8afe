package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/capture"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/species"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Show captured cards and the party",
	Args:  cobra.NoArgs,
	RunE:  runCollection,
}

func runCollection(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		svc, err := a.speciesService()
		if err != nil {
			return err
		}

		overview, err := svc.GetOverview(cmd.Context(), &species.GetOverviewInput{})
		if err != nil {
			return err
		}
		owned, err := svc.ListSpecies(cmd.Context(), &species.ListSpeciesInput{OwnedOnly: true})
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Unique cards: %d/%d    Party: %d/%d\n\n",
			overview.UniqueCards, overview.TotalSpecies, overview.PartySize, overview.PartyLimit)

		if len(owned.Entries) == 0 {
			fmt.Fprintln(w, "No cards yet. Capture a species to start your collection.")
			return nil
		}
		for _, e := range owned.Entries {
			printEntry(cmd, e)
		}
		return nil
	})
}

func printEntry(cmd *cobra.Command, e *species.Entry) {
	w := cmd.OutOrStdout()

	marker := " "
	if e.InParty {
		marker = "*"
	}
	fmt.Fprintf(w, "%s %-24s %-20s %s\n", marker, e.Template.CommonName, e.Template.ID, formatStats(e.Stats))
	if !e.Owned() {
		return
	}

	fmt.Fprintf(w, "    Lv %d (+%d%%)  copies %d  total %d  next upgrade in %d",
		e.Card.Level, e.BonusPercent, e.Card.CopiesOwned, e.Card.TotalCaptured, e.NeededForNext)
	if e.CooldownRemaining > 0 {
		fmt.Fprintf(w, "  resting %s", capture.FormatRemaining(e.CooldownRemaining))
	}
	fmt.Fprintln(w)
}
