package main

import (
	"fmt"
	"io"

	"ScoreSync/internal/config"
	"ScoreSync/internal/service"

	"github.com/spf13/cobra"
)

type syncOptions struct {
	scoresDir  string
	aliasesDir string
	dryRun     bool
}

func newSyncCmd(configPath *string) *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Load score sheets and aliases once and push players and relations to the graph store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if opts.scoresDir != "" {
				cfg.Sources.ScoresDir = opts.scoresDir
			}
			if opts.aliasesDir != "" {
				cfg.Sources.AliasesDir = opts.aliasesDir
			}

			a, err := newApp(cfg, !opts.dryRun)
			if err != nil {
				return err
			}
			defer a.close(cmd.Context())

			report, err := a.sync.Run(cmd.Context(), service.SyncOptions{DryRun: opts.dryRun})
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&opts.scoresDir, "scores", "", "Score sheet directory (overrides sources.scores_dir)")
	cmd.Flags().StringVar(&opts.aliasesDir, "aliases", "", "Alias directory (overrides sources.aliases_dir)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Load and derive only, push nothing")
	return cmd
}

func printReport(w io.Writer, r *service.SyncReport) {
	fmt.Fprintf(w, "run %s: %s\n", r.RunID, r.Status)
	if r.Backend != "" {
		fmt.Fprintf(w, "backend:        %s\n", r.Backend)
	}
	fmt.Fprintf(w, "games:          %d (%s)\n", r.GamesLoaded, r.GamesStatus)
	if r.RowErrors > 0 {
		fmt.Fprintf(w, "skipped rows:   %d\n", r.RowErrors)
	}
	fmt.Fprintf(w, "alias entries:  %d (%s)\n", r.AliasEntries, r.AliasesStatus)
	fmt.Fprintf(w, "players:        %d\n", r.Players)
	fmt.Fprintf(w, "teamed with:    %d\n", r.TeamedWith)
	fmt.Fprintf(w, "played against: %d\n", r.PlayedAgainst)
	for _, c := range r.Conflicts {
		fmt.Fprintf(w, "conflict: alias %q claimed by %v, kept %s\n", c.Alias, c.Candidates, c.Winner)
	}
	for _, p := range r.Overwritten {
		fmt.Fprintf(w, "overwritten: %s\n", p)
	}
	for _, p := range r.FailedSources {
		fmt.Fprintf(w, "failed: %s\n", p)
	}
	fmt.Fprintf(w, "failed sources: %d\n", len(r.FailedSources))
	if r.Error != "" {
		fmt.Fprintf(w, "error: %s\n", r.Error)
	}
}
