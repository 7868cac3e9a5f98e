package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/riskibarqy/league-manager/internal/infrastructure/notify"
	"github.com/riskibarqy/league-manager/internal/observability"
	"github.com/riskibarqy/league-manager/internal/usecase"
	"github.com/spf13/cobra"
)

type editOptions struct {
	ScriptPath string
	Yes        bool
}

func NewEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <league-id> -f <edits.yaml>",
		Short: "Apply a roster edit script and save it as one batch",
		Long: `Load the league, apply the edit script to a working copy, show the
pending changes and, once confirmed, send every change concurrently.

If any change fails the session is stale: nothing is retried and the
command exits non-zero. Run "leaguectl show" to see what was applied.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, rootOpts, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.ScriptPath, "file", "f", "", "YAML edit script")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runEdit(cmd *cobra.Command, rootOpts *RootOptions, opts *editOptions, leagueID string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	logger := rootOpts.logger

	script, err := LoadEditScript(opts.ScriptPath)
	if err != nil {
		return err
	}

	client := rootOpts.newClient()
	metrics := observability.NewMetrics("leaguectl")
	editor, err := usecase.OpenRosterEditor(ctx, leagueID, usecase.RosterEditorDeps{
		Loader:   client,
		Executor: usecase.NewBatchExecutor(client, rootOpts.cfg.BatchMaxWorker, metrics, logger.Named("batch")),
		Notifier: notify.Fanout{notify.NewWriterNotifier(out), notify.NewLogNotifier(logger)},
		Logger:   logger.Named("editor"),
	})
	if err != nil {
		return err
	}

	if err := script.Apply(editor); err != nil {
		return err
	}
	changes, err := editor.RequestSave()
	if err != nil {
		return err
	}

	printChangeSet(out, editor.Baseline(), changes)
	if !opts.Yes {
		ok, err := confirm(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if !ok {
			_ = editor.CancelConfirmation()
			fmt.Fprintln(out, "aborted, nothing was sent")
			return nil
		}
	}

	outcome, err := editor.ConfirmSave(ctx)
	if err != nil {
		return err
	}
	pushMetrics(ctx, rootOpts, metrics)

	if editor.State() == usecase.StateStale {
		return fmt.Errorf("%w: %d of %d changes failed", usecase.ErrStaleSession, len(outcome.Failed()), len(outcome.Outcomes))
	}

	printSnapshot(out, editor.Baseline())
	return nil
}

func confirm(in io.Reader, out io.Writer) (bool, error) {
	fmt.Fprint(out, "Apply these changes? [y/N]: ")
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("read confirmation: %w", err)
		}
		return false, nil
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func pushMetrics(ctx context.Context, opts *RootOptions, metrics *observability.Metrics) {
	if opts.cfg.PushgatewayURL == "" {
		return
	}
	if err := metrics.Push(ctx, opts.cfg.PushgatewayURL, "leaguectl"); err != nil {
		opts.logger.WarnContext(ctx, "push roster metrics failed", "error", err)
	}
}
