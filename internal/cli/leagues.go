package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewLeaguesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List the leagues you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLeagues(cmd, rootOpts)
		},
	}
}

func runLeagues(cmd *cobra.Command, opts *RootOptions) error {
	leagues, err := opts.newClient().ListMyLeagues(cmd.Context())
	if err != nil {
		return fmt.Errorf("list leagues: %w", err)
	}

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		items := make([]leagueSummaryOutput, 0, len(leagues))
		for _, l := range leagues {
			items = append(items, leagueSummaryOutput{ID: l.ID, Name: l.Name, UpdatedAt: l.UpdatedAt})
		}
		return writeJSON(out, items)
	}

	if len(leagues) == 0 {
		fmt.Fprintln(out, "no leagues")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tUPDATED")
	for _, l := range leagues {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", l.ID, l.Name, l.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}
