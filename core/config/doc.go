// Package config loads the follower tracker configuration.
//
// Values come from environment variables, optionally seeded from a .env file.
// Every field carries a `default` struct tag which is registered with Viper so
// that AutomaticEnv can resolve it.
//
// # Sections
//
//   - Server: HTTP API listen address and API key (SERVER_*)
//   - Log: level and format (LOG_*)
//   - Database: driver, DSN parts and pool size (DATABASE_*)
//   - Storage: MinIO report archive (STORAGE_*)
//   - Twitter: OAuth 2.0 client and API pacing (TWITTER_*)
//   - Tracker: default target, watch interval, dry run (TRACKER_*)
//   - Redis: distributed run lock (REDIS_*)
//   - Metrics: Pushgateway (METRICS_*)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Tracker.Target)
package config
