package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/entities"
	"github.com/KirkDiggler/ecosnap-api/internal/orchestrators/species"
)

var speciesOnline bool

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Browse the species catalog",
}

var speciesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every species in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			svc, err := a.speciesService()
			if err != nil {
				return err
			}
			out, err := svc.ListSpecies(cmd.Context(), &species.ListSpeciesInput{})
			if err != nil {
				return err
			}
			for _, e := range out.Entries {
				printEntry(cmd, e)
			}
			return nil
		})
	},
}

var speciesInfoCmd = &cobra.Command{
	Use:   "info <species-id>",
	Short: "Show one species card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			svc, err := a.speciesService()
			if err != nil {
				return err
			}
			out, err := svc.GetSpecies(cmd.Context(), &species.GetSpeciesInput{
				ID:     entities.SpeciesID(args[0]),
				Online: speciesOnline,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			t := out.Entry.Template
			fmt.Fprintf(w, "%s (%s)\n", t.CommonName, t.ScientificName)
			fmt.Fprintf(w, "Type: %s    Rarity: %d\n", t.Type, t.Rarity)
			fmt.Fprintln(w, t.FunFact)
			printEntry(cmd, out.Entry)

			if out.Taxon != nil {
				fmt.Fprintf(w, "iNaturalist taxon %d: %s", out.Taxon.ID, out.Taxon.Name)
				if out.Taxon.PreferredCommonName != "" {
					fmt.Fprintf(w, " (%s)", out.Taxon.PreferredCommonName)
				}
				fmt.Fprintln(w)
				if out.Taxon.WikipediaURL != "" {
					fmt.Fprintln(w, out.Taxon.WikipediaURL)
				}
				if out.Taxon.DefaultPhoto != nil {
					fmt.Fprintln(w, out.Taxon.DefaultPhoto.MediumURL)
				}
			}
			return nil
		})
	},
}

func init() {
	speciesInfoCmd.Flags().BoolVar(&speciesOnline, "online", false, "look the species up on iNaturalist")
	speciesCmd.AddCommand(speciesListCmd)
	speciesCmd.AddCommand(speciesInfoCmd)
}
