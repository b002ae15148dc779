// Package redis connects the optional course read cache to a Redis server.
//
// Unlike the MongoDB supervisor, Connect is bounded: it pings up to
// Config.RetryAttempts times and then gives up, so the service can start
// without a cache.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	if cfg.Enabled() {
//		client, err := redis.Connect(ctx, cfg)
//		...
//	}
package redis
