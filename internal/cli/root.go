package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/riskibarqy/league-manager/internal/config"
	"github.com/riskibarqy/league-manager/internal/infrastructure/leagueapi"
	"github.com/riskibarqy/league-manager/internal/platform/logging"
	"github.com/riskibarqy/league-manager/internal/platform/resilience"
	"github.com/spf13/cobra"
)

var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags plus the client configuration resolved before each command.
type RootOptions struct {
	Verbose bool
	Format  string
	BaseURL string
	Token   string

	cfg    config.ClientConfig
	logger *logging.Logger
}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "leaguectl",
		Short:         "Manage leagues and edit rosters against the league API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests to stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.BaseURL, "base-url", "", "league API base URL (overrides LEAGUE_API_BASE_URL)")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "bearer token (overrides LEAGUE_API_TOKEN)")

	cmd.AddCommand(NewLeaguesCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))

	return cmd
}

func (o *RootOptions) resolve(cmd *cobra.Command) error {
	if !slices.Contains(ValidFormats, o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	if v := strings.TrimRight(strings.TrimSpace(o.BaseURL), "/"); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(o.Token); v != "" {
		cfg.Token = v
	}
	level := cfg.LogLevel
	if o.Verbose {
		level = logging.LevelDebug
	}

	o.cfg = cfg
	o.logger = logging.NewConsole(cmd.ErrOrStderr(), level).Named("leaguectl")
	return nil
}

func (o *RootOptions) newClient() *leagueapi.Client {
	return leagueapi.NewClient(leagueapi.Config{
		BaseURL: o.cfg.BaseURL,
		Token:   o.cfg.Token,
		Timeout: o.cfg.Timeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          o.cfg.Circuit.Enabled,
			FailureThreshold: o.cfg.Circuit.FailureCount,
			OpenTimeout:      o.cfg.Circuit.OpenTimeout,
			HalfOpenMaxReq:   o.cfg.Circuit.HalfOpenMaxReq,
		},
		Logger: o.logger.Named("leagueapi"),
	})
}
