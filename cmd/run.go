package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dryRunFlag bool

// runCmd performs a single reconciliation run.
var runCmd = &cobra.Command{
	Use:   "run [handle]",
	Short: "Reconcile the followers of an account once",
	Long: `Fetches the current followers of the account, compares them with the
stored set and records a joined or left event for every change.

Examples:
  # Track the configured target
  run

  # Track a specific account without writing anything
  run jack --dry-run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOnce,
}

func init() {
	runCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compute and report the changes without writing them")
	RootCmd.AddCommand(runCmd)
}

func runOnce(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, dryRunFlag, true)
	if err != nil {
		return err
	}
	defer a.close()

	target, err := a.target(args)
	if err != nil {
		return err
	}

	result, err := a.runner.Run(ctx, target)
	a.pushMetrics()
	if err != nil {
		return err
	}

	if len(result.EventFailures) > 0 {
		a.logger.Warn("Some events were not recorded",
			zap.String("target", target),
			zap.Int("failed", len(result.EventFailures)),
		)
	}
	return nil
}
