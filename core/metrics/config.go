package metrics

// Config holds configuration for run metrics.
type Config struct {
	// PushgatewayURL receives metrics after one-shot runs. Empty disables pushing.
	PushgatewayURL string `mapstructure:"pushgateway_url" default:""`
	// Job is the Pushgateway job label.
	Job string `mapstructure:"job" default:"follower_tracker"`
}
