package cmd

import (
	"context"
	"errors"

	"follower-tracker/feature/followers"
	"follower-tracker/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag       bool
	onlyServer    bool
	onlyStorage   bool
	errCheckFails = errors.New("integrity checks failed")
)

// checkCmd verifies the database schema and the report bucket.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check database and report storage integrity",
	Long: `Verifies that every tracker table has the expected columns and that the
report archive bucket exists. Use --fix with --storage to create the bucket.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the report bucket when missing")
	checkCmd.Flags().BoolVar(&onlyServer, "server", false, "Only check the database schema")
	checkCmd.Flags().BoolVar(&onlyStorage, "storage", false, "Only check the report bucket")
	RootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := bootstrap(ctx, true, false)
	if err != nil {
		return err
	}
	defer a.close()

	svc := integrity.NewService(a.db, followers.Models(), a.store, a.cfg.Storage, a.cfg.Tracker.ReportPrefix, a.logger)
	logg := a.logger
	failed := false

	if !onlyStorage {
		logg.Info("Checking database schema...", zap.String("driver", a.cfg.Database.Driver))
		report, err := svc.CheckServer()
		if err != nil {
			return err
		}
		if report.Matched {
			logg.Info("Database schema matches the models.")
		} else {
			failed = true
			logg.Warn("Database schema mismatches found")
			for table, tbl := range report.Tables {
				if tbl.Status == "ok" {
					continue
				}
				if tbl.Status == "missing" {
					logg.Warn("Missing table", zap.String("table", table))
				}
				if len(tbl.MissingColumns) > 0 {
					logg.Warn("Missing Columns", zap.String("table", table), zap.Strings("columns", tbl.MissingColumns))
				}
				if len(tbl.TypeMismatches) > 0 {
					logg.Warn("Type Mismatches", zap.String("table", table), zap.Strings("mismatches", tbl.TypeMismatches))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if !onlyServer {
		check := svc.CheckStorage
		if fixFlag {
			check = svc.FixStorage
		}
		report, err := check(ctx)
		switch {
		case errors.Is(err, integrity.ErrStorageDisabled):
			logg.Info("Report storage is disabled, skipping bucket check.")
		case err != nil:
			return err
		case !report.Exists:
			failed = true
			logg.Warn("Report bucket is missing", zap.String("bucket", report.Bucket))
			logg.Info("Run with --fix to create it.")
		default:
			logg.Info("Report bucket is present",
				zap.String("bucket", report.Bucket),
				zap.String("status", report.Status),
				zap.Int("reports", report.Reports),
			)
		}
	}

	if failed {
		return errCheckFails
	}
	return nil
}
