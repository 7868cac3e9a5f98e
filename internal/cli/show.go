package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <league-id>",
		Short: "Print a league and its roster with edit indexes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, rootOpts, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, opts *RootOptions, leagueID string) error {
	snap, err := opts.newClient().LoadLeague(cmd.Context(), leagueID)
	if err != nil {
		return fmt.Errorf("load league: %w", err)
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), snapshotOutput(snap))
	}
	printSnapshot(cmd.OutOrStdout(), snap)
	return nil
}
