package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kl",
		Short: "Kitlog — scale-model build tracker",
		Long:  "Kitlog tracks model kit builds from backlog to showcase through six workflow stages.",
	}

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAddCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newAdvanceCmd())
	cmd.AddCommand(newBackCmd())
	cmd.AddCommand(newDeleteCmd())
	cmd.AddCommand(newResetCmd())
	cmd.AddCommand(newSamplesCmd())
	cmd.AddCommand(newSummaryCmd())
	cmd.AddCommand(newStagesCmd())
	cmd.AddCommand(newDashboardCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kl %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}

func execute(cmd *cobra.Command) int {
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(newRootCmd()))
}
