package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ecosnap-api/internal/errors"
)

var resetConfirm bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the collection and party",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !resetConfirm {
			return errors.FailedPrecondition("reset erases every card; pass --yes to confirm")
		}
		return withApp(cmd.Context(), func(a *app) error {
			a.store.ResetAll()
			fmt.Fprintf(cmd.OutOrStdout(), "Collection for %s has been reset.\n", a.cfg.PlayerID)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetConfirm, "yes", false, "confirm the reset")
}
