package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-manager/internal/domain/roster"
)

type teamOutput struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

type leagueOutput struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Teams []teamOutput `json:"teams"`
}

type leagueSummaryOutput struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

func writeJSON(w io.Writer, v any) error {
	enc := sonic.ConfigDefault.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func snapshotOutput(s roster.Snapshot) leagueOutput {
	out := leagueOutput{ID: s.LeagueID, Name: s.Name, Teams: make([]teamOutput, 0, len(s.Teams))}
	for i, t := range s.Teams {
		out.Teams = append(out.Teams, teamOutput{Index: i, ID: t.ID, Name: t.Name})
	}
	return out
}

func printSnapshot(w io.Writer, s roster.Snapshot) {
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.LeagueID)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, t := range s.Teams {
		fmt.Fprintf(tw, "  [%d]\t%s\t%s\n", i, t.Name, t.ID)
	}
	_ = tw.Flush()
}

// printChangeSet renders the confirmation view. Deleted teams are named from
// baseline since a deletion only carries the team id.
func printChangeSet(w io.Writer, baseline roster.Snapshot, changes roster.ChangeSet) {
	fmt.Fprintln(w, "Pending changes:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if changes.League != nil {
		fmt.Fprintf(tw, "  league\t%q -> %q\n", changes.League.Old, changes.League.New)
	}
	for _, r := range changes.Renamed {
		fmt.Fprintf(tw, "  rename\t%s\t%q -> %q\n", r.TeamID, r.OldName, r.NewName)
	}
	for _, a := range changes.Added {
		fmt.Fprintf(tw, "  add\t%q\n", a.Name)
	}
	for _, d := range changes.Deleted {
		name := ""
		if i := baseline.Teams.IndexOf(d.TeamID); i >= 0 {
			name = baseline.Teams[i].Name
		}
		fmt.Fprintf(tw, "  delete\t%s\t%q\n", d.TeamID, name)
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "%d operation(s) will be sent.\n", changes.Size())
}
