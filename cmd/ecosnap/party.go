package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/errors"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/progression"
)

var partyCmd = &cobra.Command{
	Use:   "party",
	Short: "Manage the battle party",
}

var partyListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the party in battle order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			printParty(cmd, a.store.PartyCards())
			return nil
		})
	},
}

var partyAddCmd = &cobra.Command{
	Use:   "add <species-id>",
	Short: "Add an owned card to the end of the party",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			id, err := ownedSpecies(a, args[0])
			if err != nil {
				return err
			}
			if !a.store.AddToParty(id) {
				if a.store.IsInParty(id) {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in your party.\n", id)
					return nil
				}
				return errors.FailedPreconditionf("party is full (%d cards)", progression.PartyLimit)
			}
			printParty(cmd, a.store.PartyCards())
			return nil
		})
	},
}

var partyRemoveCmd = &cobra.Command{
	Use:   "remove <species-id>",
	Short: "Remove a card from the party",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			id := entities.SpeciesID(args[0])
			if !a.store.RemoveFromParty(id) {
				return errors.NotFoundf("%s is not in your party", id)
			}
			printParty(cmd, a.store.PartyCards())
			return nil
		})
	},
}

func init() {
	partyCmd.AddCommand(partyListCmd)
	partyCmd.AddCommand(partyAddCmd)
	partyCmd.AddCommand(partyRemoveCmd)
}

func ownedSpecies(a *app, raw string) (entities.SpeciesID, error) {
	id := entities.SpeciesID(raw)
	if _, ok := a.catalog.Get(id); !ok {
		return "", errors.NotFoundf("unknown species %q", raw)
	}
	if _, ok := a.store.Card(id); !ok {
		return "", errors.FailedPreconditionf("you have not captured %s yet", id)
	}
	return id, nil
}

func printParty(cmd *cobra.Command, cards []progression.PartyCard) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Party (%d/%d)\n", len(cards), progression.PartyLimit)
	for i, pc := range cards {
		fmt.Fprintf(w, "  %d. %-24s Lv %-2d %s\n", i+1, pc.Template.CommonName, pc.Card.Level, formatStats(pc.Stats))
	}
}

func formatStats(stats entities.StatBlock) string {
	return fmt.Sprintf("SPD %3d  RES %3d  ENG %3d  INT %3d  HAR %3d",
		stats.Speed, stats.Resilience, stats.Energy, stats.Intelligence, stats.Harmony)
}
