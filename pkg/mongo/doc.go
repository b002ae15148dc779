// Package mongo manages the process-wide MongoDB connection.
//
// The Supervisor connects in the background so the HTTP server can start
// listening before the database is reachable. Each attempt dials and pings the
// server; a failed attempt is logged and retried after a fixed delay (five
// seconds by default) for as long as the process runs. Errors are never
// classified: an authentication failure is retried exactly like a refused TCP
// connection. Attempts never overlap.
//
// # Usage
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	sup := mongo.NewSupervisor(cfg, mongo.WithLogger(log))
//	sup.ConnectWithRetry(ctx) // returns immediately
//
//	db, err := sup.Database(r.Context()) // waits up to cfg.BufferTimeout
//	if errors.Is(err, mongo.ErrNotConnected) {
//		// respond 503
//	}
//
// # Retry policy
//
// BackoffStrategy is a pure function from the failed-attempt count to the
// next delay. FixedBackoff is the default; LinearBackoff and
// ExponentialBackoff are available through WithBackoff. Config.RetryAttempts
// caps the number of attempts, with zero meaning no cap.
//
// # Configuration
//
// Config is populated from MONGODB_* environment variables. MONGODB_URI is
// required; Validate reports a missing or malformed URI before the supervisor
// is started.
package mongo
