package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/deps"
	"github.com/container-lab/liveness/pkg/startup"
)

func newCheckCmd() *cobra.Command {
	var verbose bool
	c := &cobra.Command{
		Use:   "check",
		Short: "Run the cache and database startup checks once",
		Long: `check loads the same environment as the liveness server, connects to
redis and then postgres, and prints one line per step. It stops at the first
failure and exits non-zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var logOut io.Writer = io.Discard
			if verbose {
				logOut = cmd.ErrOrStderr()
			}
			logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.LogLevel}))

			pipeline, set := deps.Pipeline(cfg, logger)
			defer func() {
				if err := set.Close(context.Background()); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "closing dependencies: %v\n", err)
				}
			}()

			report, runErr := pipeline.Run(cmd.Context())
			printReport(cmd.OutOrStdout(), report)
			return runErr
		},
	}
	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "log step progress to stderr")
	return c
}

func printReport(w io.Writer, report *startup.Report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tSTATE\tDURATION\tERROR")
	for _, res := range report.Results {
		errText := ""
		if res.Err != nil {
			errText = res.Err.Error()
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", res.Name, res.State, res.Duration.Round(time.Millisecond), errText)
	}
	_ = tw.Flush()
}
