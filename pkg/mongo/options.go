package mongo

import "log/slog"

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithLogger sets the logger for connection events. Nil selects a noop logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Supervisor) {
		if l != nil {
			s.log = l
		}
	}
}

// WithConnector replaces the attempt body. Defaults to Dial.
func WithConnector(fn ConnectFunc) Option {
	if fn == nil {
		panic("WithConnector: nil connector")
	}
	return func(s *Supervisor) { s.connect = fn }
}

// WithBackoff replaces the retry policy.
// Defaults to FixedBackoff with the configured RetryInterval.
func WithBackoff(b BackoffStrategy) Option {
	if b == nil {
		panic("WithBackoff: nil strategy")
	}
	return func(s *Supervisor) { s.backoff = b }
}

// WithAttemptHook registers a callback invoked after every attempt with the
// 1-based attempt number and its error (nil on success).
func WithAttemptHook(h func(attempt int, err error)) Option {
	if h == nil {
		panic("WithAttemptHook: nil hook")
	}
	return func(s *Supervisor) { s.attemptHooks = append(s.attemptHooks, h) }
}
