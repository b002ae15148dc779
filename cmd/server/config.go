package main

import "time"

// appConfig holds process level settings. Component settings live next to
// their packages (mongo.Config, httpserver.Config, redis.Config).
type appConfig struct {
	Name           string        `env:"APP_NAME" envDefault:"course-api"`
	Env            string        `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	CourseCacheTTL time.Duration `env:"COURSE_CACHE_TTL" envDefault:"1m"`
}
