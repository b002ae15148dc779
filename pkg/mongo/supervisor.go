package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/courseapi/pkg/async"
	"github.com/dmitrymomot/courseapi/pkg/logger"
)

// Supervisor establishes the process-wide MongoDB connection in the
// background, retrying failed attempts until one succeeds.
//
// A Supervisor is created once at startup and passed to whatever needs the
// database. It only drives the initial connection; reconnects after that are
// the driver's job.
type Supervisor struct {
	cfg          Config
	connect      ConnectFunc
	backoff      BackoffStrategy
	log          *slog.Logger
	attemptHooks []func(attempt int, err error)

	startOnce sync.Once
	future    *async.Future[*mongo.Client]

	mu     sync.RWMutex
	client *mongo.Client
	ready  chan struct{}
}

// NewSupervisor returns a Supervisor for cfg. Call ConnectWithRetry to start it.
func NewSupervisor(cfg Config, opts ...Option) *Supervisor {
	s := &Supervisor{
		cfg:     cfg,
		connect: Dial,
		backoff: FixedBackoff{Interval: cfg.RetryInterval},
		log:     logger.Noop(),
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("mongo"))
	return s
}

// ConnectWithRetry starts connecting and returns without blocking.
//
// Attempts run one at a time on a single goroutine. After a failure the error
// is logged and the same attempt runs again once the backoff delay has passed;
// there is no limit unless Config.RetryAttempts is set. The first success is
// logged and ends the loop.
//
// The returned future resolves with the connected client. It resolves with an
// error only if ctx is cancelled or the attempt budget runs out. Later calls
// return the same future and never start a second loop.
func (s *Supervisor) ConnectWithRetry(ctx context.Context) *async.Future[*mongo.Client] {
	s.startOnce.Do(func() {
		s.future = async.Async(ctx, s.cfg, s.run)
	})
	return s.future
}

func (s *Supervisor) run(ctx context.Context, cfg Config) (*mongo.Client, error) {
	for attempt := 1; ; attempt++ {
		client, err := s.connect(ctx, cfg)
		if err == nil && client == nil {
			err = ErrFailedToConnectToMongo
		}
		s.notify(attempt, err)

		if err == nil {
			s.setClient(client)
			s.log.InfoContext(ctx, "Connected to MongoDB", logger.Attempt(attempt))
			return client, nil
		}

		if ctx.Err() != nil {
			s.log.DebugContext(ctx, "MongoDB connection cancelled", logger.Error(err), logger.Attempt(attempt))
			return nil, errors.Join(ErrFailedToConnectToMongo, ctx.Err())
		}
		s.log.ErrorContext(ctx, "MongoDB connection error", logger.Error(err), logger.Attempt(attempt))

		if cfg.RetryAttempts > 0 && attempt >= cfg.RetryAttempts {
			return nil, errors.Join(ErrMaxAttemptsExceeded, err)
		}

		delay := s.backoff.NextInterval(attempt)
		s.log.InfoContext(ctx, retryMessage(delay), logger.Delay(delay), logger.Attempt(attempt))

		if err := sleep(ctx, delay); err != nil {
			s.log.DebugContext(ctx, "MongoDB connection cancelled", logger.Error(err), logger.Attempt(attempt))
			return nil, errors.Join(ErrFailedToConnectToMongo, err)
		}
	}
}

func (s *Supervisor) notify(attempt int, err error) {
	for _, h := range s.attemptHooks {
		h(attempt, err)
	}
}

func (s *Supervisor) setClient(c *mongo.Client) {
	s.mu.Lock()
	s.client = c
	s.mu.Unlock()
	close(s.ready)
}

// Connected reports whether an attempt has succeeded.
func (s *Supervisor) Connected() bool {
	select {
	case <-s.ready:
		return true
	default:
		return false
	}
}

// Client returns the connected client, if any.
func (s *Supervisor) Client() (*mongo.Client, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.client, s.client != nil
}

// Wait returns the client, waiting for the first successful attempt for at
// most Config.BufferTimeout. It returns ErrNotConnected if none arrives in time.
func (s *Supervisor) Wait(ctx context.Context) (*mongo.Client, error) {
	if c, ok := s.Client(); ok {
		return c, nil
	}

	if s.cfg.BufferTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BufferTimeout)
		defer cancel()
	}

	select {
	case <-s.ready:
		c, _ := s.Client()
		return c, nil
	case <-ctx.Done():
		return nil, errors.Join(ErrNotConnected, ctx.Err())
	}
}

// Database returns the configured database once connected. See Wait.
func (s *Supervisor) Database(ctx context.Context) (*mongo.Database, error) {
	c, err := s.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(s.cfg.DatabaseName()), nil
}

// Healthcheck returns a readiness probe: it fails while no attempt has
// succeeded and pings the server afterwards.
func (s *Supervisor) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		c, ok := s.Client()
		if !ok {
			return errors.Join(ErrHealthcheckFailed, ErrNotConnected)
		}
		return Healthcheck(c)(ctx)
	}
}

// Close disconnects the client if one was established.
func (s *Supervisor) Close(ctx context.Context) error {
	c, ok := s.Client()
	if !ok {
		return nil
	}
	return c.Disconnect(ctx)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func retryMessage(d time.Duration) string {
	switch {
	case d == time.Second:
		return "Retrying in 1 second..."
	case d > 0 && d%time.Second == 0:
		return fmt.Sprintf("Retrying in %d seconds...", int(d/time.Second))
	default:
		return fmt.Sprintf("Retrying in %s...", d)
	}
}
