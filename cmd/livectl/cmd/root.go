package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/probe"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "livectl",
		Short: "Operate the liveness service from the command line",
		Long: `livectl probes a running liveness service and runs its dependency
startup checks on demand. The probe subcommand is meant to be used as a
container HEALTHCHECK.`,
		SilenceUsage: true,
	}
	root.AddCommand(newProbeCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

// defaultHealthURL prefers HEALTH_URL and otherwise follows PORT, so the
// probe targets the same port the server binds.
func defaultHealthURL() string {
	if v := os.Getenv("HEALTH_URL"); v != "" {
		return v
	}
	return probe.URLForPort(config.ParsePort(os.Getenv("PORT")))
}
