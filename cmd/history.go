package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"follower-tracker/feature/followers"

	"github.com/spf13/cobra"
)

var (
	historyKind  string
	historySince string
	historyLimit int
	historyJSON  bool
)

// historyCmd prints recorded follow events.
var historyCmd = &cobra.Command{
	Use:   "history [handle]",
	Short: "Show recorded follow events",
	Long: `Lists joined and left events newest first.

Examples:
  # Everything that happened to jack during the last week
  history jack --since 168h

  # Only unfollows, as JSON
  history jack --kind left --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Only show events of this kind (joined or left)")
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only show events after this RFC 3339 time or duration ago")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "Maximum number of events")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print events as JSON")
	RootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	kind := followers.EventKind(historyKind)
	if kind != "" && !kind.Valid() {
		return fmt.Errorf("invalid event kind %q", historyKind)
	}
	since, err := followers.ParseSince(historySince, time.Now())
	if err != nil {
		return fmt.Errorf("invalid --since value: %w", err)
	}

	a, err := bootstrap(ctx, true, false)
	if err != nil {
		return err
	}
	defer a.close()

	filter := followers.EventFilter{Kind: kind, Since: since, Limit: historyLimit}
	if len(args) > 0 {
		filter.Target = args[0]
	} else {
		filter.Target = a.cfg.Tracker.Target
	}

	events, err := a.events.List(ctx, filter)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}
	return printEvents(cmd, events)
}

func printEvents(cmd *cobra.Command, events []followers.FollowEvent) error {
	out := cmd.OutOrStdout()
	if out == nil {
		out = os.Stdout
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tTARGET\tKIND\tPLATFORM ID\tHANDLE")
	for _, e := range events {
		var platformID int64
		handle := "-"
		if e.Account != nil {
			platformID = e.Account.PlatformID
			if e.Account.Handle != "" {
				handle = "@" + e.Account.Handle
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.RunTimestamp.UTC().Format(time.RFC3339), e.Target, e.Kind, platformID, handle)
	}
	return w.Flush()
}
