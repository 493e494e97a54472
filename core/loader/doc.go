// Package loader registers HTTP features with the Fiber application.
//
// Each feature implements Feature and is added to a Manager. LoadAll mounts
// the routes of every enabled feature in registration order.
//
//	mgr := loader.NewManager(logger)
//	mgr.Register(followers.NewFeature(...))
//	mgr.Register(integrity.NewFeature(...))
//	if err := mgr.LoadAll(app); err != nil {
//	    logger.Fatal("Failed to load features", zap.Error(err))
//	}
package loader
