package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchInterval time.Duration

// watchCmd runs reconciliations on a fixed interval until interrupted.
var watchCmd = &cobra.Command{
	Use:   "watch [handle]",
	Short: "Reconcile the followers of an account periodically",
	Long: `Runs a reconciliation immediately and then once per interval until
interrupted. A failed run is logged and retried at the next interval.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "Pause between runs (defaults to tracker.interval_seconds)")
	watchCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compute and report the changes without writing them")
	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx, dryRunFlag, false)
	if err != nil {
		return err
	}
	defer a.close()

	target, err := a.target(args)
	if err != nil {
		return err
	}

	interval := watchInterval
	if interval <= 0 {
		interval = time.Duration(a.cfg.Tracker.IntervalSeconds) * time.Second
	}

	a.logger.Info("Watching followers", zap.String("target", target), zap.Duration("interval", interval))
	defer a.pushMetrics()
	return a.runner.Watch(ctx, target, interval)
}
