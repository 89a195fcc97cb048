package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/container-lab/liveness/pkg/probe"
)

func newProbeCmd() *cobra.Command {
	var (
		url     string
		timeout time.Duration
		quiet   bool
	)
	c := &cobra.Command{
		Use:   "probe",
		Short: "Exit non-zero unless the health route answers 200",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := probe.Check(cmd.Context(), url, timeout); err != nil {
				return err
			}
			if !quiet {
				fmt.Fprintf(cmd.OutOrStdout(), "ok %s\n", url)
			}
			return nil
		},
	}
	c.Flags().StringVar(&url, "url", defaultHealthURL(), "health endpoint to probe (default from HEALTH_URL or PORT)")
	c.Flags().DurationVar(&timeout, "timeout", probe.DefaultTimeout, "request timeout")
	c.Flags().BoolVarP(&quiet, "quiet", "q", false, "print nothing on success")
	return c
}
