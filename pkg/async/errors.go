package async

import "errors"

// ErrTimeout is returned by AwaitWithTimeout when the result is not ready in time.
var ErrTimeout = errors.New("async: operation timed out waiting for future completion")
