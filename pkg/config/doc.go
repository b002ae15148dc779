// Package config loads application configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11:
//
//   - LoadEnv reads one or more .env files into the process environment
//     (defaulting to ".env" in the working directory).
//   - Load parses the environment into any struct annotated with `env` tags and
//     caches the result per type, so each configuration is parsed once.
//   - MustLoadEnv and MustLoad panic on failure for configuration the process
//     cannot start without.
//   - ResetCache and ForceReloadConfig drop cached values, which tests use after
//     changing the environment.
//
// # Usage
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"5000"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatalf("parsing env: %v", err)
//	}
//
// # Error Handling
//
// Errors wrap the sentinels ErrParsingConfig, ErrLoadingEnvFile,
// ErrConfigNotLoaded and ErrNilPointer; compare them with errors.Is. A failed
// parse is not cached, so a later Load can succeed once the variable is set.
package config
