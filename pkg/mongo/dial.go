package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ConnectFunc performs one connection attempt.
// It returns a client that has answered a ping, or an error.
type ConnectFunc func(ctx context.Context, cfg Config) (*mongo.Client, error)

// Dial creates a client and pings the primary, bounded by cfg.ConnectTimeout.
// The driver connects lazily, so the ping is what turns an unreachable server
// into an error. A client that fails the ping is disconnected before returning.
func Dial(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(cfg.clientOptions())
	if err != nil {
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, errors.Join(ErrFailedToConnectToMongo, err)
	}

	return client, nil
}
