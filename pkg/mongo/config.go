package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

// DefaultDatabase is used when neither MONGODB_DATABASE nor the URI path names a database.
const DefaultDatabase = "test"

// Config represents the configuration for the MongoDB connection.
type Config struct {
	ConnectionURL   string        `env:"MONGODB_URI,required"`                         // ConnectionURL is the MongoDB connection string.
	Database        string        `env:"MONGODB_DATABASE"`                             // Database overrides the database named in the URI path.
	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`     // ConnectTimeout bounds a single connect-and-ping attempt.
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`       // MaxPoolSize is the maximum number of connections in the connection pool.
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"0"`         // MinPoolSize is the minimum number of connections in the connection pool.
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"` // MaxConnIdleTime is how long a pooled connection may stay idle.
	RetryInterval   time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`       // RetryInterval is the fixed delay between failed attempts.
	RetryAttempts   int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"0"`        // RetryAttempts caps the number of attempts. Zero retries forever.
	BufferTimeout   time.Duration `env:"MONGODB_BUFFER_TIMEOUT" envDefault:"10s"`      // BufferTimeout is how long a store call waits for the first connection.
}

// Validate checks the settings the driver cannot default. A malformed URL is
// not rejected here: Dial reports it and the supervisor retries it like any
// other failed attempt.
func (c Config) Validate() error {
	if c.ConnectionURL == "" {
		return ErrMissingConnectionURL
	}
	if c.RetryAttempts < 0 {
		return ErrInvalidRetryAttempts
	}
	return nil
}

// DatabaseName resolves the database to use: the explicit Database field,
// then the path of the connection string, then DefaultDatabase.
func (c Config) DatabaseName() string {
	if c.Database != "" {
		return c.Database
	}
	if cs, err := connstring.Parse(c.ConnectionURL); err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultDatabase
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().
		ApplyURI(c.ConnectionURL).
		SetMaxPoolSize(c.MaxPoolSize).
		SetMinPoolSize(c.MinPoolSize)

	if c.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.ConnectTimeout).
			SetServerSelectionTimeout(c.ConnectTimeout)
	}
	if c.MaxConnIdleTime > 0 {
		opts.SetMaxConnIdleTime(c.MaxConnIdleTime)
	}
	return opts
}
