package followers

// Config holds configuration for the tracker itself.
type Config struct {
	// Target is the handle tracked when a command is given none.
	Target string `mapstructure:"target" default:""`
	// IntervalSeconds is the pause between runs in watch mode.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"3600"`
	// DryRun computes and reports deltas without writing anything.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ReportSample caps how many accounts per kind the log reporter prints.
	ReportSample int `mapstructure:"report_sample" default:"20"`
	// ReportPrefix is the object key prefix for archived run reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports"`
}
