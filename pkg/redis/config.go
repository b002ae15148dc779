package redis

import "time"

// Config describes the optional Redis cache connection. An empty URL
// disables the cache.
type Config struct {
	URL            string        `env:"REDIS_URL"`                             // URL in the form "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`   // RetryAttempts is the number of ping attempts before Connect gives up.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"1s"`  // RetryInterval is the pause between attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"5s"` // ConnectTimeout bounds each ping attempt.
}

// Enabled reports whether a Redis URL has been configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}
