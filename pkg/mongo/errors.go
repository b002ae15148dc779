package mongo

import "errors"

var (
	ErrMissingConnectionURL   = errors.New("mongo connection URL is not set")
	ErrInvalidRetryAttempts   = errors.New("mongo retry attempts must not be negative")
	ErrFailedToConnectToMongo = errors.New("failed to connect to mongo")
	ErrMaxAttemptsExceeded    = errors.New("mongo connection attempts exhausted")
	ErrNotConnected           = errors.New("mongo is not connected")
	ErrHealthcheckFailed      = errors.New("mongo healthcheck failed")
)
