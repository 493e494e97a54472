package lock

// Config holds configuration for the cross-process run lock.
type Config struct {
	// URL is the Redis connection URL. Empty disables the distributed lock.
	URL string `mapstructure:"url" default:""`
	// Prefix namespaces lock keys.
	Prefix string `mapstructure:"prefix" default:"follower-tracker:run:"`
	// TTLSeconds bounds how long a crashed run can hold the lock.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"900"`
}
